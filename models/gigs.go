package models

import "time"

// Booking statuses
const (
	GigPending   = "pending"
	GigConfirmed = "confirmed"
	GigCancelled = "cancelled"
	GigCompleted = "completed"
)

// Publish statuses
const (
	GigDraft     = "draft"
	GigPublished = "published"
)

// Gig is a live or streaming performance record. A gig may be paired with a
// venue-submitted record; which side's data wins for public display is
// carried in SourceOfTruth. The merge itself is computed elsewhere — this
// service only surfaces MergeStatus.
type Gig struct {
	GigID         string    `json:"gigid" bson:"gigid"`
	ArtistUserID  string    `json:"artist_userid" bson:"artist_userid"`
	VenueUserID   string    `json:"venue_userid,omitempty" bson:"venue_userid,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Date          string    `json:"date" bson:"date"` // YYYY-MM-DD
	StartTime     string    `json:"start_time,omitempty" bson:"start_time,omitempty"`
	VenueName     string    `json:"venue_name,omitempty" bson:"venue_name,omitempty"`
	IsStreaming   bool      `json:"is_streaming" bson:"is_streaming"`
	BookingStatus string    `json:"booking_status" bson:"booking_status"`
	PublishStatus string    `json:"publish_status" bson:"publish_status"`
	SourceOfTruth string    `json:"source_of_truth" bson:"source_of_truth"` // artist, venue
	MergeStatus   string    `json:"merge_status,omitempty" bson:"merge_status,omitempty"`
	Direction     string    `json:"direction" bson:"direction"` // inbound (venue-initiated), outbound (artist-initiated)
	ArtistArtwork string    `json:"artist_artwork,omitempty" bson:"artist_artwork,omitempty"`
	VenueArtwork  string    `json:"venue_artwork,omitempty" bson:"venue_artwork,omitempty"`
	Ticketing     GigTicket `json:"ticketing,omitempty" bson:"ticketing,omitempty"`
	CommsSummary  string    `json:"comms_summary,omitempty" bson:"comms_summary,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

type GigTicket struct {
	Enabled  bool    `json:"enabled" bson:"enabled"`
	Price    float64 `json:"price,omitempty" bson:"price,omitempty"`
	Currency string  `json:"currency,omitempty" bson:"currency,omitempty"`
	Capacity int     `json:"capacity,omitempty" bson:"capacity,omitempty"`
	URL      string  `json:"url,omitempty" bson:"url,omitempty"`
}

// FanComm statuses
const (
	CommScheduled = "scheduled"
	CommSent      = "sent"
	CommFailed    = "failed"
	CommCancelled = "cancelled"
)

// FanComm is a scheduled or immediate promotional message tied to a gig.
type FanComm struct {
	CommID       string     `json:"commid" bson:"commid"`
	GigID        string     `json:"gigid" bson:"gigid"`
	ArtistUserID string     `json:"artist_userid" bson:"artist_userid"`
	Title        string     `json:"title,omitempty" bson:"title,omitempty"`
	Message      string     `json:"message" bson:"message"`
	SendMode     string     `json:"send_mode" bson:"send_mode"` // now, scheduled
	SendAt       *time.Time `json:"send_at,omitempty" bson:"send_at,omitempty"`
	Audience     string     `json:"audience" bson:"audience"` // all_followers, specific_regions
	Regions      []string   `json:"regions,omitempty" bson:"regions,omitempty"`
	Artwork      string     `json:"artwork" bson:"artwork"` // artist, venue
	Status       string     `json:"status" bson:"status"`
	Recipients   int        `json:"recipients" bson:"recipients"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	SentAt       *time.Time `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
}
