package gigs

import (
	"errors"
	"time"

	"encore/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Gig action verbs
const (
	VerbAcceptInvite  = "accept_invite"
	VerbDeclineInvite = "decline_invite"
	VerbCancelRequest = "cancel_request"
	VerbMarkCompleted = "mark_completed"
	VerbPublishNow    = "publish_now"
)

// applyVerb validates an action verb against the gig's current state and
// returns the field changes. Errors carry the human-readable message shown
// to the user verbatim.
func applyVerb(g models.Gig, verb string, now time.Time) (bson.M, error) {
	switch verb {
	case VerbAcceptInvite:
		if g.Direction != "inbound" {
			return nil, errors.New("Only venue invites can be accepted")
		}
		if g.BookingStatus != models.GigPending {
			return nil, errors.New("This invite is no longer pending")
		}
		return bson.M{"booking_status": models.GigConfirmed, "updated_at": now}, nil

	case VerbDeclineInvite:
		if g.Direction != "inbound" {
			return nil, errors.New("Only venue invites can be declined")
		}
		if g.BookingStatus != models.GigPending {
			return nil, errors.New("This invite is no longer pending")
		}
		return bson.M{"booking_status": models.GigCancelled, "updated_at": now}, nil

	case VerbCancelRequest:
		if g.Direction != "outbound" {
			return nil, errors.New("Only outbound requests can be cancelled")
		}
		if g.BookingStatus != models.GigPending {
			return nil, errors.New("This request is no longer pending")
		}
		return bson.M{"booking_status": models.GigCancelled, "updated_at": now}, nil

	case VerbMarkCompleted:
		if g.BookingStatus != models.GigConfirmed {
			return nil, errors.New("Only confirmed gigs can be completed")
		}
		return bson.M{"booking_status": models.GigCompleted, "updated_at": now}, nil

	case VerbPublishNow:
		if g.PublishStatus == models.GigPublished {
			return nil, errors.New("Gig is already published")
		}
		if g.BookingStatus == models.GigCancelled {
			return nil, errors.New("Cancelled gigs cannot be published")
		}
		return bson.M{"publish_status": models.GigPublished, "updated_at": now}, nil
	}
	return nil, errors.New("Unknown action: " + verb)
}

// mergeWarning returns a non-fatal warning when any gig in the list carries
// unresolved venue-sourced merge data. The merge itself is computed by an
// external service; we only surface its status.
func mergeWarning(list []models.Gig) string {
	for _, g := range list {
		if g.MergeStatus == "unresolved" || g.MergeStatus == "conflict" {
			return "Some gigs have venue data that could not be merged; venue details may be incomplete"
		}
	}
	return ""
}
