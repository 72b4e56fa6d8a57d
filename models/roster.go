package models

import "time"

// MemberInvite statuses
const (
	InviteStatusPending  = "pending"
	InviteStatusSent     = "sent"
	InviteStatusDeclined = "declined"
	InviteStatusAccepted = "accepted"
	InviteStatusActive   = "active"
)

// MemberInvite is a pending roster invitation. The token is single use and
// expires 7 days after (re)issue. An invite becomes "active" only after
// promotion into an ActiveMember.
type MemberInvite struct {
	InviteID     string         `json:"inviteid" bson:"inviteid"`
	ArtistUserID string         `json:"artist_userid" bson:"artist_userid"`
	Email        string         `json:"email" bson:"email"`
	Name         string         `json:"name" bson:"name"`
	Roles        []string       `json:"roles" bson:"roles"`
	Status       string         `json:"status" bson:"status"`
	Token        string         `json:"invitation_token" bson:"invitation_token"`
	TokenExpiry  time.Time      `json:"token_expiry" bson:"token_expiry"`
	Metadata     InviteMetadata `json:"metadata" bson:"metadata"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

type InviteMetadata struct {
	RoyaltyShare float64 `json:"royalty_share" bson:"royalty_share"`
	IsAdmin      bool    `json:"is_admin" bson:"is_admin"`
	Notes        string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// ActiveMember is a promoted invitation: a confirmed roster member.
// Never reverts to invitation state.
type ActiveMember struct {
	MemberID     string         `json:"memberid" bson:"memberid"`
	ArtistUserID string         `json:"artist_userid" bson:"artist_userid"`
	InviteID     string         `json:"inviteid" bson:"inviteid"`
	Email        string         `json:"email" bson:"email"`
	Name         string         `json:"name" bson:"name"`
	Roles        []string       `json:"roles" bson:"roles"`
	Metadata     InviteMetadata `json:"metadata" bson:"metadata"`
	JoinedAt     time.Time      `json:"joined_at" bson:"joined_at"`
}
