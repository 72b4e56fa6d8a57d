package models

import "time"

// FanProfile is the one-to-one extension of a user created by the sign-up
// wizard. Updated cumulatively step by step; never deleted.
type FanProfile struct {
	UserID             string            `json:"userid" bson:"userid"`
	DisplayName        string            `json:"display_name,omitempty" bson:"display_name,omitempty"`
	Bio                string            `json:"bio,omitempty" bson:"bio,omitempty"`
	Location           string            `json:"location,omitempty" bson:"location,omitempty"`
	GenreFamilies      []string          `json:"genre_families" bson:"genre_families"`
	MainGenres         []string          `json:"main_genres" bson:"main_genres"`
	SubGenres          []string          `json:"sub_genres,omitempty" bson:"sub_genres,omitempty"`
	MediaLinks         map[string]string `json:"media_links,omitempty" bson:"media_links,omitempty"`
	ProfilePicture     string            `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	Photos             []string          `json:"photos,omitempty" bson:"photos,omitempty"`
	Videos             []string          `json:"videos,omitempty" bson:"videos,omitempty"`
	PaymentMethod      string            `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	OnboardingComplete bool              `json:"onboarding_complete" bson:"onboarding_complete"`
	CreatedAt          time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" bson:"updated_at"`
}

// ArtistProfile extends a user once the artist persona is added.
type ArtistProfile struct {
	UserID     string            `json:"userid" bson:"userid"`
	StageName  string            `json:"stage_name" bson:"stage_name"`
	ArtistType string            `json:"artist_type" bson:"artist_type"` // solo, band, dj, producer
	Bio        string            `json:"bio,omitempty" bson:"bio,omitempty"`
	Label      string            `json:"label,omitempty" bson:"label,omitempty"`
	Publisher  string            `json:"publisher,omitempty" bson:"publisher,omitempty"`
	Manager    string            `json:"manager,omitempty" bson:"manager,omitempty"`
	Agent      string            `json:"agent,omitempty" bson:"agent,omitempty"`
	Genres     []string          `json:"genres,omitempty" bson:"genres,omitempty"`
	Socials    map[string]string `json:"socials,omitempty" bson:"socials,omitempty"`
	Photo      string            `json:"photo,omitempty" bson:"photo,omitempty"`
	Banner     string            `json:"banner,omitempty" bson:"banner,omitempty"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" bson:"updated_at"`
}

// GenreFamily groups main genres, which in turn carry sub-genres.
type GenreFamily struct {
	FamilyID string      `json:"familyid" bson:"familyid"`
	Name     string      `json:"name" bson:"name"`
	Genres   []MainGenre `json:"genres" bson:"genres"`
}

type MainGenre struct {
	GenreID   string   `json:"genreid" bson:"genreid"`
	Name      string   `json:"name" bson:"name"`
	SubGenres []string `json:"sub_genres,omitempty" bson:"sub_genres,omitempty"`
}
