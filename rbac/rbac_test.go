package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		can   []Permission
		cant  []Permission
	}{
		{
			name:  "fan has nothing",
			roles: []string{"fan"},
			cant:  []Permission{PermModerate, PermBanUsers, PermAdmin},
		},
		{
			name:  "artist has nothing",
			roles: []string{"artist"},
			cant:  []Permission{PermModerate, PermBanUsers, PermAdmin},
		},
		{
			name:  "community moderator can moderate but not ban",
			roles: []string{"community_moderator"},
			can:   []Permission{PermModerate},
			cant:  []Permission{PermBanUsers, PermAdmin},
		},
		{
			name:  "admin has everything",
			roles: []string{"admin"},
			can:   []Permission{PermModerate, PermBanUsers, PermAdmin},
		},
		{
			name:  "super admin has everything",
			roles: []string{"super_admin"},
			can:   []Permission{PermModerate, PermBanUsers, PermAdmin},
		},
		{
			name:  "roles union",
			roles: []string{"fan", "community_moderator"},
			can:   []Permission{PermModerate},
			cant:  []Permission{PermBanUsers},
		},
		{
			name:  "empty role list",
			roles: nil,
			cant:  []Permission{PermModerate, PermBanUsers, PermAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Resolve(tt.roles)
			for _, p := range tt.can {
				assert.True(t, set.Has(p))
			}
			for _, p := range tt.cant {
				assert.False(t, set.Has(p))
			}
		})
	}
}
