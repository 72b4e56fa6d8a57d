package gigs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"encore/globals"

	"github.com/stretchr/testify/assert"
)

// Gig creation is artist-side; a fan session is refused before any write
// is attempted.
func TestCreateGigRequiresArtistRole(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/gigs", strings.NewReader(`{"title":"Show","date":"2026-06-01"}`))
	ctx := context.WithValue(r.Context(), globals.UserIDKey, "u1")
	ctx = context.WithValue(ctx, globals.RoleKey, []string{"fan"})
	w := httptest.NewRecorder()

	CreateGig(w, r.WithContext(ctx), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
