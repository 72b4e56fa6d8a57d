package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          []string  `json:"role" bson:"role"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Avatar        string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsVerified    bool      `json:"is_verified" bson:"is_verified"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refreshexp,omitempty"`
}

// UserBan is an active or lifted suspension. At most one active ban per
// user; enforced by a read-then-insert check in the moderation handler.
type UserBan struct {
	BanID      string     `json:"banid" bson:"banid"`
	UserID     string     `json:"userid" bson:"userid"`
	Reason     string     `json:"reason" bson:"reason"`
	BanType    string     `json:"ban_type" bson:"ban_type"` // permanent, temporary
	IsActive   bool       `json:"is_active" bson:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	BannedBy   string     `json:"banned_by" bson:"banned_by"`
	BannedAt   time.Time  `json:"banned_at" bson:"banned_at"`
	UnbannedBy string     `json:"unbanned_by,omitempty" bson:"unbanned_by,omitempty"`
	UnbannedAt *time.Time `json:"unbanned_at,omitempty" bson:"unbanned_at,omitempty"`
}
