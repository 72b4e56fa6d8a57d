package fancomms

import (
	"strings"
	"testing"
	"time"

	"encore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(mutate func(*commInput)) commInput {
	in := commInput{
		GigID:    "g1",
		Title:    "Tour kickoff",
		Message:  "We are playing Friday!",
		SendMode: "now",
		Audience: "all_followers",
		Artwork:  "artist",
	}
	if mutate != nil {
		mutate(&in)
	}
	return in
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	tests := []struct {
		name    string
		mutate  func(*commInput)
		wantErr string
	}{
		{"valid immediate send", nil, ""},
		{"missing gig", func(in *commInput) { in.GigID = "" }, "gigId is required"},
		{"missing message", func(in *commInput) { in.Message = "" }, "message is required"},
		{
			"message too long",
			func(in *commInput) { in.Message = strings.Repeat("x", 501) },
			"message exceeds 500 characters",
		},
		{
			"message at the limit",
			func(in *commInput) { in.Message = strings.Repeat("x", 500) },
			"",
		},
		{
			// limits count characters, not bytes
			"multibyte message at the limit",
			func(in *commInput) { in.Message = strings.Repeat("ü", 500) },
			"",
		},
		{
			"multibyte message over the limit",
			func(in *commInput) { in.Message = strings.Repeat("ü", 501) },
			"message exceeds 500 characters",
		},
		{
			"title too long",
			func(in *commInput) { in.Title = strings.Repeat("t", 121) },
			"title exceeds 120 characters",
		},
		{
			"scheduled without sendAt",
			func(in *commInput) { in.SendMode = "scheduled" },
			"sendAt is required when scheduling",
		},
		{
			"scheduled in the past",
			func(in *commInput) { in.SendMode = "scheduled"; in.SendAt = &past },
			"sendAt must be in the future",
		},
		{
			"scheduled in the future",
			func(in *commInput) { in.SendMode = "scheduled"; in.SendAt = &future },
			"",
		},
		{
			"bad send mode",
			func(in *commInput) { in.SendMode = "later" },
			"sendMode must be now or scheduled",
		},
		{
			"region audience without regions",
			func(in *commInput) { in.Audience = "specific_regions" },
			"at least one region is required for a region-scoped audience",
		},
		{
			"region audience with regions",
			func(in *commInput) { in.Audience = "specific_regions"; in.Regions = []string{"Berlin"} },
			"",
		},
		{
			"bad audience",
			func(in *commInput) { in.Audience = "everyone" },
			"audience must be all_followers or specific_regions",
		},
		{
			"bad artwork choice",
			func(in *commInput) { in.Artwork = "label" },
			"artwork must be artist or venue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(validInput(tt.mutate), now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestResolveArtwork(t *testing.T) {
	both := models.Gig{ArtistArtwork: "a.jpg", VenueArtwork: "v.jpg"}
	artistOnly := models.Gig{ArtistArtwork: "a.jpg"}
	venueOnly := models.Gig{VenueArtwork: "v.jpg"}
	neither := models.Gig{}

	got, err := resolveArtwork(both, "artist")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", got)

	got, err = resolveArtwork(both, "venue")
	require.NoError(t, err)
	assert.Equal(t, "v.jpg", got)

	// requested side missing falls back to the other once
	got, err = resolveArtwork(artistOnly, "venue")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", got)

	got, err = resolveArtwork(venueOnly, "artist")
	require.NoError(t, err)
	assert.Equal(t, "v.jpg", got)

	_, err = resolveArtwork(neither, "artist")
	assert.Error(t, err)
}
