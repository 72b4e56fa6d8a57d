package routes

import (
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httprouter rejects conflicting patterns (a static segment alongside an
// existing wildcard) by panicking at registration time, which would take the
// whole server down at boot. Registering every route group on one router
// guards against that.
func TestRouteRegistration(t *testing.T) {
	router := httprouter.New()

	require.NotPanics(t, func() {
		AddStaticRoutes(router)
		AddAuthRoutes(router)
		AddModerationRoutes(router)
		AddRosterRoutes(router)
		AddGigRoutes(router)
		AddFanCommRoutes(router)
		AddOnboardingRoutes(router)
		AddProfileRoutes(router)
		AddTicketRoutes(router)
		AddUploadRoutes(router)
	})

	// The token-addressed invite response lives outside the /invites/:id
	// subtree and must still resolve.
	handle, _, _ := router.Lookup("POST", "/api/roster/respond")
	assert.NotNil(t, handle)

	handle, ps, _ := router.Lookup("POST", "/api/roster/invites/inv123/resend")
	require.NotNil(t, handle)
	assert.Equal(t, "inv123", ps.ByName("id"))
}
