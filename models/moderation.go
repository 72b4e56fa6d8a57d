package models

import "time"

// Release is a moderation target carrying denormalized moderation flags.
// The flags are independent booleans, not mutually exclusive.
type Release struct {
	ReleaseID        string     `json:"releaseid" bson:"releaseid"`
	ArtistUserID     string     `json:"artist_userid" bson:"artist_userid"`
	Title            string     `json:"title" bson:"title"`
	PublishStatus    string     `json:"publish_status" bson:"publish_status"` // published, draft
	FlaggedForReview bool       `json:"flagged_for_review" bson:"flagged_for_review"`
	IsOffensive      bool       `json:"is_offensive" bson:"is_offensive"`
	DoNotRecommend   bool       `json:"do_not_recommend" bson:"do_not_recommend"`
	RemovedBy        string     `json:"removed_by,omitempty" bson:"removed_by,omitempty"`
	RemovedAt        *time.Time `json:"removed_at,omitempty" bson:"removed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" bson:"updated_at"`
}

// ModerationAction is an immutable audit row. Append only.
type ModerationAction struct {
	ActionID       string    `json:"actionid" bson:"actionid"`
	ActionType     string    `json:"action_type" bson:"action_type"`
	ModeratorID    string    `json:"moderator_id" bson:"moderator_id"`
	ReleaseID      string    `json:"releaseid,omitempty" bson:"releaseid,omitempty"`
	TargetUserID   string    `json:"target_userid,omitempty" bson:"target_userid,omitempty"`
	Reason         string    `json:"reason,omitempty" bson:"reason,omitempty"`
	ModeratorNotes string    `json:"moderator_notes,omitempty" bson:"moderator_notes,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
