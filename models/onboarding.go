package models

import "time"

// OnboardingSession holds a sign-up wizard's form state between requests so
// the flow survives the email-verification round trip.
type OnboardingSession struct {
	SessionID   string           `json:"sessionid" bson:"sessionid"`
	UserID      string           `json:"userid,omitempty" bson:"userid,omitempty"`
	MemberType  string           `json:"member_type,omitempty" bson:"member_type,omitempty"` // guest, fan
	Personas    []string         `json:"personas,omitempty" bson:"personas,omitempty"`       // artist, venue, service, professional
	ArtistType  string           `json:"artist_type,omitempty" bson:"artist_type,omitempty"`
	StepIndex   int              `json:"step_index" bson:"step_index"`
	Completed   []string         `json:"completed" bson:"completed"`
	Forms       OnboardingForms  `json:"forms" bson:"forms"`
	AuthPending bool             `json:"auth_pending" bson:"auth_pending"` // waiting on email verification
	Done        bool             `json:"done" bson:"done"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
}

// OnboardingForms is the collection of independent named form records the
// wizard accumulates. Each record maps to one step's inputs.
type OnboardingForms struct {
	Account     AccountForm       `json:"account" bson:"account"`
	Profile     ProfileForm       `json:"profile" bson:"profile"`
	Music       MusicForm         `json:"music" bson:"music"`
	Payment     PaymentForm       `json:"payment" bson:"payment"`
	Media       MediaForm         `json:"media" bson:"media"`
	ArtistSetup ArtistSetupForm   `json:"artist_setup" bson:"artist_setup"`
	Extra       map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
}

type AccountForm struct {
	Email           string `json:"email" bson:"email"`
	ConfirmEmail    string `json:"confirm_email" bson:"confirm_email"`
	Password        string `json:"password,omitempty" bson:"-"`
	ConfirmPassword string `json:"confirm_password,omitempty" bson:"-"`
	Username        string `json:"username" bson:"username"`
}

type ProfileForm struct {
	DisplayName string `json:"display_name" bson:"display_name"`
	Bio         string `json:"bio" bson:"bio"`
	Location    string `json:"location" bson:"location"`
}

type MusicForm struct {
	GenreFamilies []string `json:"genre_families" bson:"genre_families"`
	MainGenres    []string `json:"main_genres" bson:"main_genres"`
	SubGenres     []string `json:"sub_genres" bson:"sub_genres"`
}

type PaymentForm struct {
	Method string `json:"method" bson:"method"`
}

type MediaForm struct {
	ProfilePicture string   `json:"profile_picture" bson:"profile_picture"`
	Photos         []string `json:"photos" bson:"photos"`
	Videos         []string `json:"videos" bson:"videos"`
}

type ArtistSetupForm struct {
	StageName string `json:"stage_name" bson:"stage_name"`
	Label     string `json:"label" bson:"label"`
	Publisher string `json:"publisher" bson:"publisher"`
	Manager   string `json:"manager" bson:"manager"`
	Agent     string `json:"agent" bson:"agent"`
}
