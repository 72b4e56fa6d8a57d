package rbac

// Permission is a single capability a request may exercise.
type Permission uint8

const (
	PermModerate Permission = 1 << iota // release moderation actions
	PermBanUsers                        // ban / unban
	PermAdmin                           // admin surfaces
)

// PermissionSet is resolved once per request from the caller's roles and
// consulted instead of ad hoc role-string checks in handlers.
type PermissionSet uint8

var rolePerms = map[string]PermissionSet{
	"community_moderator": PermissionSet(PermModerate),
	"admin":               PermissionSet(PermModerate | PermBanUsers | PermAdmin),
	"super_admin":         PermissionSet(PermModerate | PermBanUsers | PermAdmin),
}

// Resolve folds a user's role list into a PermissionSet. Unknown roles
// (fan, artist, venue, ...) contribute no elevated permissions.
func Resolve(roles []string) PermissionSet {
	var set PermissionSet
	for _, r := range roles {
		set |= rolePerms[r]
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	return s&PermissionSet(p) != 0
}
