package routes

import (
	"net/http"

	"encore/auth"
	"encore/fancomms"
	"encore/filemgr"
	"encore/genres"
	"encore/gigs"
	"encore/middleware"
	"encore/moderation"
	"encore/onboarding"
	"encore/profiles"
	"encore/ratelim"
	"encore/rbac"
	"encore/roster"
	"encore/tickets"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.POST("/api/auth/verify-email", ratelim.RateLimit(auth.VerifyEmail))
}

func AddModerationRoutes(router *httprouter.Router) {
	router.POST("/api/moderation/actions", ratelim.RateLimit(middleware.Authenticate(moderation.ApplyAction)))
	router.GET("/api/moderation/actions", middleware.Authenticate(middleware.RequirePerm(rbac.PermModerate, moderation.GetActions)))
}

func AddRosterRoutes(router *httprouter.Router) {
	router.GET("/api/roster", middleware.Authenticate(roster.GetRoster))
	router.POST("/api/roster/invites", ratelim.RateLimit(middleware.Authenticate(roster.CreateInvite)))
	router.POST("/api/roster/invites/:id/resend", ratelim.RateLimit(middleware.Authenticate(roster.ResendInvite)))
	router.DELETE("/api/roster/invites/:id", middleware.Authenticate(roster.DeleteInvite))
	router.PUT("/api/roster/invites/:id/split", middleware.Authenticate(roster.UpdateSplit))
	router.POST("/api/roster/publish", middleware.Authenticate(roster.PublishMembers))

	// Token-addressed, reachable from the invite email without an account.
	// Lives outside the /invites/:id subtree: httprouter rejects a static
	// segment alongside an existing wildcard.
	router.POST("/api/roster/respond", ratelim.RateLimit(roster.RespondToInvite))
}

func AddGigRoutes(router *httprouter.Router) {
	router.GET("/api/gigs", middleware.Authenticate(gigs.GetGigs))
	router.POST("/api/gigs", ratelim.RateLimit(middleware.Authenticate(gigs.CreateGig)))
	router.PUT("/api/gigs/:id", middleware.Authenticate(gigs.UpdateGig))
	router.PATCH("/api/gigs/:id/action", ratelim.RateLimit(middleware.Authenticate(gigs.GigAction)))
}

func AddFanCommRoutes(router *httprouter.Router) {
	router.POST("/api/fancomms", ratelim.RateLimit(middleware.Authenticate(fancomms.ScheduleComm)))
	router.GET("/api/fancomms", middleware.Authenticate(fancomms.GetComms))
	router.POST("/api/fancomms/:id/cancel", middleware.Authenticate(fancomms.CancelComm))
}

func AddOnboardingRoutes(router *httprouter.Router) {
	router.POST("/api/onboarding/start", ratelim.RateLimit(onboarding.StartSession))
	router.GET("/api/onboarding/session/:id", middleware.OptionalAuth(onboarding.GetSession))
	router.POST("/api/onboarding/session/:id/advance", ratelim.RateLimit(onboarding.Advance))
	router.POST("/api/onboarding/session/:id/back", onboarding.Back)
	router.POST("/api/onboarding/resume", ratelim.RateLimit(onboarding.Resume))

	router.GET("/api/genres", genres.GetGenres)
	router.GET("/api/location-search", ratelim.RateLimit(genres.SearchLocations))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.POST("/api/fan-profile", middleware.Authenticate(profiles.UpsertFanProfile))
	router.GET("/api/fan-profile", middleware.Authenticate(profiles.GetFanProfile))
	router.POST("/api/artist-profile", middleware.Authenticate(profiles.UpsertArtistProfile))
	router.GET("/api/artist-profile", middleware.Authenticate(profiles.GetArtistProfile))
}

func AddTicketRoutes(router *httprouter.Router) {
	router.POST("/api/ticket/gig/:gigid", ratelim.RateLimit(middleware.Authenticate(tickets.CreateTicketOption)))
	router.GET("/api/ticket/gig/:gigid", ratelim.RateLimit(middleware.OptionalAuth(tickets.GetTicketOptions)))
	router.DELETE("/api/ticket/gig/:gigid/:ticketid", middleware.Authenticate(tickets.DeleteTicketOption))
	router.POST("/api/ticket/gig/:gigid/:ticketid/buy", ratelim.RateLimit(middleware.Authenticate(tickets.BuyTicket)))
	router.POST("/api/ticket/verify/:gigid", ratelim.RateLimit(middleware.Authenticate(tickets.VerifyTicket)))
	router.GET("/api/ticket/print/:gigid", ratelim.RateLimit(middleware.Authenticate(tickets.PrintTicket)))
}

func AddUploadRoutes(router *httprouter.Router) {
	router.POST("/api/uploads/:entity/:pictype", ratelim.RateLimit(middleware.Authenticate(filemgr.UploadImage)))
}
