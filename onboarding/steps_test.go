package onboarding

import (
	"testing"

	"encore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsFor(t *testing.T) {
	t.Run("no membership chosen", func(t *testing.T) {
		steps := StepsFor(models.OnboardingSession{})
		assert.Equal(t, []string{StepMemberSelector, StepMembership}, steps)
	})

	t.Run("guest terminates at summary", func(t *testing.T) {
		steps := StepsFor(models.OnboardingSession{MemberType: "guest"})
		assert.Equal(t, []string{StepMemberSelector, StepMembership, StepGuestSummary}, steps)
	})

	t.Run("fan walks the full flow", func(t *testing.T) {
		steps := StepsFor(models.OnboardingSession{MemberType: "fan"})
		assert.Equal(t, []string{
			StepMemberSelector, StepMembership,
			StepFanAccount, StepFanProfile, StepFanMusic, StepFanPayment,
			StepFanPicture, StepFanPhotos, StepFanVideos, StepProfileAdd,
		}, steps)
	})

	t.Run("personas insert their type steps in canonical order", func(t *testing.T) {
		steps := StepsFor(models.OnboardingSession{
			MemberType: "fan",
			Personas:   []string{"professional", "venue", "artist"},
		})
		n := len(steps)
		require.GreaterOrEqual(t, n, 3)
		assert.Equal(t, []string{StepArtistType, StepVenueType, StepProType}, steps[n-3:])
	})

	t.Run("artist type unlocks the setup step", func(t *testing.T) {
		without := StepsFor(models.OnboardingSession{MemberType: "fan", Personas: []string{"artist"}})
		assert.NotContains(t, without, StepArtistSetup)

		with := StepsFor(models.OnboardingSession{
			MemberType: "fan",
			Personas:   []string{"artist"},
			ArtistType: "band",
		})
		assert.Equal(t, StepArtistSetup, with[len(with)-1])
	})
}

func TestClampIndex(t *testing.T) {
	steps := []string{"a", "b", "c"}
	assert.Equal(t, 0, clampIndex(-1, steps))
	assert.Equal(t, 1, clampIndex(1, steps))
	assert.Equal(t, 2, clampIndex(7, steps))
}

func TestResumeStep(t *testing.T) {
	base := models.OnboardingSession{MemberType: "fan"}

	t.Run("nothing completed resumes after account basics", func(t *testing.T) {
		assert.Equal(t, StepFanProfile, ResumeStep(base))
	})

	t.Run("skips completed steps", func(t *testing.T) {
		s := base
		s.Completed = []string{StepFanAccount, StepFanProfile, StepFanMusic}
		assert.Equal(t, StepFanPayment, ResumeStep(s))
	})

	t.Run("everything completed lands on the final step", func(t *testing.T) {
		s := base
		s.Completed = StepsFor(base)
		assert.Equal(t, StepProfileAdd, ResumeStep(s))
	})

	t.Run("persona selection changes the resume target", func(t *testing.T) {
		s := models.OnboardingSession{
			MemberType: "fan",
			Personas:   []string{"artist"},
			ArtistType: "solo",
		}
		s.Completed = StepsFor(s)[:len(StepsFor(s))-1]
		assert.Equal(t, StepArtistSetup, ResumeStep(s))
	})
}
