package onboarding

import "encore/models"

// Step identifiers. The active ordered list is computed from the session's
// selections, not stored, so persona changes re-derive it deterministically.
const (
	StepMemberSelector = "member-selector"
	StepMembership     = "membership"
	StepGuestSummary   = "guest-summary"
	StepFanAccount     = "fan-account-basics"
	StepFanProfile     = "fan-profile-details"
	StepFanMusic       = "fan-music-preferences"
	StepFanPayment     = "fan-payment"
	StepFanPicture     = "fan-profile-picture"
	StepFanPhotos      = "fan-photos"
	StepFanVideos      = "fan-videos"
	StepProfileAdd     = "profile-add"
	StepArtistType     = "artist-type"
	StepVenueType      = "venue-type"
	StepServiceType    = "service-type"
	StepProType        = "pro-type"
	StepArtistSetup    = "artist-profile-setup"
)

// Labels shown by clients next to the progress indicator.
var StepLabels = map[string]string{
	StepMemberSelector: "Welcome",
	StepMembership:     "Membership",
	StepGuestSummary:   "Summary",
	StepFanAccount:     "Account",
	StepFanProfile:     "About you",
	StepFanMusic:       "Music preferences",
	StepFanPayment:     "Payment",
	StepFanPicture:     "Profile picture",
	StepFanPhotos:      "Photos",
	StepFanVideos:      "Videos",
	StepProfileAdd:     "Add a profile",
	StepArtistType:     "Artist type",
	StepVenueType:      "Venue type",
	StepServiceType:    "Service type",
	StepProType:        "Professional type",
	StepArtistSetup:    "Artist setup",
}

var personaSteps = map[string]string{
	"artist":       StepArtistType,
	"venue":        StepVenueType,
	"service":      StepServiceType,
	"professional": StepProType,
}

// Ordering of persona steps when several personas are selected.
var personaOrder = []string{"artist", "venue", "service", "professional"}

// StepsFor computes the active ordered step list purely from the session's
// selections. Guests terminate at a summary; fans walk the full profile
// flow; each selected persona inserts its type step, and a chosen artist
// type additionally unlocks the artist setup step.
func StepsFor(s models.OnboardingSession) []string {
	steps := []string{StepMemberSelector, StepMembership}

	switch s.MemberType {
	case "guest":
		return append(steps, StepGuestSummary)
	case "fan":
		steps = append(steps,
			StepFanAccount,
			StepFanProfile,
			StepFanMusic,
			StepFanPayment,
			StepFanPicture,
			StepFanPhotos,
			StepFanVideos,
			StepProfileAdd,
		)
	default:
		// No membership chosen yet; only the opening steps are known.
		return steps
	}

	selected := make(map[string]bool, len(s.Personas))
	for _, p := range s.Personas {
		selected[p] = true
	}
	for _, p := range personaOrder {
		if selected[p] {
			steps = append(steps, personaSteps[p])
		}
	}

	if selected["artist"] && s.ArtistType != "" {
		steps = append(steps, StepArtistSetup)
	}

	return steps
}

// indexOf returns the position of step in steps, or -1.
func indexOf(steps []string, step string) int {
	for i, s := range steps {
		if s == step {
			return i
		}
	}
	return -1
}

// clampIndex keeps a stored index valid after the step list is recomputed;
// a shrinking list must not strand the cursor past the end.
func clampIndex(idx int, steps []string) int {
	if idx < 0 {
		return 0
	}
	if idx >= len(steps) {
		return len(steps) - 1
	}
	return idx
}

// ResumeStep picks the persona-appropriate step to land on after the email
// verification round trip: the first step after account basics that has not
// been completed.
func ResumeStep(s models.OnboardingSession) string {
	steps := StepsFor(s)
	completed := make(map[string]bool, len(s.Completed))
	for _, c := range s.Completed {
		completed[c] = true
	}

	start := indexOf(steps, StepFanAccount)
	if start < 0 {
		start = 0
	}
	for i := start + 1; i < len(steps); i++ {
		if !completed[steps[i]] {
			return steps[i]
		}
	}
	return steps[len(steps)-1]
}
