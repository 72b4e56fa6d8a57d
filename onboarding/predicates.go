package onboarding

import (
	"encore/models"
	"encore/utils"
)

// CanAdvance is the per-step gate on the "Next" control. It never blocks
// backward navigation. The returned reason is shown next to the disabled
// control.
func CanAdvance(s models.OnboardingSession, step string) (bool, string) {
	f := s.Forms

	switch step {
	case StepMemberSelector:
		return true, ""

	case StepMembership:
		if s.MemberType != "guest" && s.MemberType != "fan" {
			return false, "Choose guest or fan membership"
		}
		return true, ""

	case StepFanAccount:
		a := f.Account
		switch {
		case a.Username == "":
			return false, "Username is required"
		case !utils.IsValidEmail(a.Email):
			return false, "A valid email is required"
		case a.Email != a.ConfirmEmail:
			return false, "Email addresses do not match"
		case a.Password != a.ConfirmPassword:
			return false, "Passwords do not match"
		case !utils.IsStrongPassword(a.Password):
			return false, "Password must be at least 9 characters with an uppercase letter, a digit, and a special character"
		}
		return true, ""

	case StepFanProfile:
		if f.Profile.DisplayName == "" {
			return false, "Display name is required"
		}
		return true, ""

	case StepFanMusic:
		if len(f.Music.GenreFamilies) < 1 {
			return false, "Select at least one genre family"
		}
		if len(f.Music.MainGenres) < 3 {
			return false, "Select at least three genres"
		}
		return true, ""

	case StepArtistType:
		if s.ArtistType == "" {
			return false, "Choose an artist type"
		}
		return true, ""

	case StepVenueType:
		if f.Extra["venue_type"] == "" {
			return false, "Choose a venue type"
		}
		return true, ""

	case StepServiceType:
		if f.Extra["service_type"] == "" {
			return false, "Choose a service type"
		}
		return true, ""

	case StepProType:
		if f.Extra["pro_type"] == "" {
			return false, "Choose a professional type"
		}
		return true, ""

	case StepArtistSetup:
		if f.ArtistSetup.StageName == "" {
			return false, "Stage name is required"
		}
		return true, ""
	}

	// Payment, media, and summary steps are skippable.
	return true, ""
}
