package onboarding

import (
	"testing"

	"encore/models"

	"github.com/stretchr/testify/assert"
)

func fanSession(mutate func(*models.OnboardingSession)) models.OnboardingSession {
	s := models.OnboardingSession{
		MemberType: "fan",
		Forms: models.OnboardingForms{
			Account: models.AccountForm{
				Username:        "sam",
				Email:           "sam@example.com",
				ConfirmEmail:    "sam@example.com",
				Password:        "Str0ngPass!",
				ConfirmPassword: "Str0ngPass!",
			},
			Profile: models.ProfileForm{DisplayName: "Sam"},
			Music: models.MusicForm{
				GenreFamilies: []string{"rock"},
				MainGenres:    []string{"metal", "punk", "alt-rock"},
			},
		},
	}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestCanAdvanceMembership(t *testing.T) {
	ok, reason := CanAdvance(models.OnboardingSession{}, StepMembership)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	ok, _ = CanAdvance(models.OnboardingSession{MemberType: "guest"}, StepMembership)
	assert.True(t, ok)
	ok, _ = CanAdvance(models.OnboardingSession{MemberType: "fan"}, StepMembership)
	assert.True(t, ok)
}

func TestCanAdvanceAccountBasics(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.OnboardingSession)
		ok     bool
		reason string
	}{
		{"complete form", nil, true, ""},
		{
			"missing username",
			func(s *models.OnboardingSession) { s.Forms.Account.Username = "" },
			false, "Username is required",
		},
		{
			"invalid email",
			func(s *models.OnboardingSession) { s.Forms.Account.Email = "not-an-email" },
			false, "A valid email is required",
		},
		{
			"email mismatch",
			func(s *models.OnboardingSession) { s.Forms.Account.ConfirmEmail = "other@example.com" },
			false, "Email addresses do not match",
		},
		{
			"password mismatch",
			func(s *models.OnboardingSession) { s.Forms.Account.ConfirmPassword = "Different1!" },
			false, "Passwords do not match",
		},
		{
			"weak password",
			func(s *models.OnboardingSession) {
				s.Forms.Account.Password = "weakpassword"
				s.Forms.Account.ConfirmPassword = "weakpassword"
			},
			false, "Password must be at least 9 characters with an uppercase letter, a digit, and a special character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CanAdvance(fanSession(tt.mutate), StepFanAccount)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestCanAdvanceMusicPreferences(t *testing.T) {
	ok, _ := CanAdvance(fanSession(nil), StepFanMusic)
	assert.True(t, ok)

	ok, reason := CanAdvance(fanSession(func(s *models.OnboardingSession) {
		s.Forms.Music.GenreFamilies = nil
	}), StepFanMusic)
	assert.False(t, ok)
	assert.Equal(t, "Select at least one genre family", reason)

	ok, reason = CanAdvance(fanSession(func(s *models.OnboardingSession) {
		s.Forms.Music.MainGenres = []string{"metal", "punk"}
	}), StepFanMusic)
	assert.False(t, ok)
	assert.Equal(t, "Select at least three genres", reason)
}

func TestCanAdvanceTypeSteps(t *testing.T) {
	ok, _ := CanAdvance(models.OnboardingSession{}, StepArtistType)
	assert.False(t, ok)
	ok, _ = CanAdvance(models.OnboardingSession{ArtistType: "band"}, StepArtistType)
	assert.True(t, ok)

	ok, _ = CanAdvance(models.OnboardingSession{}, StepVenueType)
	assert.False(t, ok)
	ok, _ = CanAdvance(models.OnboardingSession{
		Forms: models.OnboardingForms{Extra: map[string]string{"venue_type": "club"}},
	}, StepVenueType)
	assert.True(t, ok)

	ok, _ = CanAdvance(models.OnboardingSession{
		Forms: models.OnboardingForms{ArtistSetup: models.ArtistSetupForm{StageName: "The Larks"}},
	}, StepArtistSetup)
	assert.True(t, ok)
	ok, _ = CanAdvance(models.OnboardingSession{}, StepArtistSetup)
	assert.False(t, ok)
}

func TestCanAdvanceSkippableSteps(t *testing.T) {
	empty := models.OnboardingSession{}
	for _, step := range []string{StepFanPayment, StepFanPicture, StepFanPhotos, StepFanVideos, StepGuestSummary, StepProfileAdd} {
		ok, reason := CanAdvance(empty, step)
		assert.True(t, ok, step)
		assert.Empty(t, reason)
	}
}
