package fancomms

import (
	"errors"
	"time"
	"unicode/utf8"

	"encore/models"
)

const (
	maxMessageLen = 500
	maxTitleLen   = 120
)

type commInput struct {
	GigID    string     `json:"gigId"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	SendMode string     `json:"sendMode"` // now, scheduled
	SendAt   *time.Time `json:"sendAt"`
	Audience string     `json:"audience"` // all_followers, specific_regions
	Regions  []string   `json:"regions"`
	Artwork  string     `json:"artwork"` // artist, venue
}

// validate mirrors the client-side preconditions so a misbehaving caller
// cannot enqueue an unsendable communication.
func validate(in commInput, now time.Time) error {
	if in.GigID == "" {
		return errors.New("gigId is required")
	}
	if in.Message == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(in.Message) > maxMessageLen {
		return errors.New("message exceeds 500 characters")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return errors.New("title exceeds 120 characters")
	}

	switch in.SendMode {
	case "now":
	case "scheduled":
		if in.SendAt == nil {
			return errors.New("sendAt is required when scheduling")
		}
		if in.SendAt.Before(now) {
			return errors.New("sendAt must be in the future")
		}
	default:
		return errors.New("sendMode must be now or scheduled")
	}

	switch in.Audience {
	case "all_followers":
	case "specific_regions":
		if len(in.Regions) == 0 {
			return errors.New("at least one region is required for a region-scoped audience")
		}
	default:
		return errors.New("audience must be all_followers or specific_regions")
	}

	if in.Artwork != "artist" && in.Artwork != "venue" {
		return errors.New("artwork must be artist or venue")
	}
	return nil
}

// resolveArtwork picks the requested artwork, falling back once to the
// other side's artwork when the requested one is missing. Both missing is
// a refusal.
func resolveArtwork(gig models.Gig, choice string) (string, error) {
	chosen, fallback := gig.ArtistArtwork, gig.VenueArtwork
	if choice == "venue" {
		chosen, fallback = gig.VenueArtwork, gig.ArtistArtwork
	}
	if chosen != "" {
		return chosen, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", errors.New("no artwork available for this gig")
}
