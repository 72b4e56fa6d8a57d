package roster

import (
	"time"

	"encore/models"
	"encore/utils"
)

const inviteTTL = 7 * 24 * time.Hour

// CanResend reports whether an invitation in the given status may be
// re-sent. Accepted and active invitations are past the point of resending.
func CanResend(status string) bool {
	switch status {
	case models.InviteStatusPending, models.InviteStatusSent, models.InviteStatusDeclined:
		return true
	}
	return false
}

// CanRespond reports whether the invitee may still accept or decline.
func CanRespond(status string) bool {
	return status == models.InviteStatusPending || status == models.InviteStatusSent
}

// NewExpiry returns the token expiry for an invitation (re)issued at now.
func NewExpiry(now time.Time) time.Time {
	return now.Add(inviteTTL)
}

// FilterAccepted returns the subset of invites eligible for promotion.
// Promotion only ever touches accepted invitations.
func FilterAccepted(invites []models.MemberInvite) []models.MemberInvite {
	var accepted []models.MemberInvite
	for _, inv := range invites {
		if inv.Status == models.InviteStatusAccepted {
			accepted = append(accepted, inv)
		}
	}
	return accepted
}

// FilterRoster narrows an invitation list by exact status and a
// case-insensitive name/email search. Empty arguments pass everything.
func FilterRoster(invites []models.MemberInvite, status, search string) []models.MemberInvite {
	out := make([]models.MemberInvite, 0, len(invites))
	for _, inv := range invites {
		if status != "" && inv.Status != status {
			continue
		}
		if search != "" && !utils.ContainsIgnoreCase(inv.Name, search) && !utils.ContainsIgnoreCase(inv.Email, search) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// PromoteInvite materializes an accepted invitation as a roster member,
// copying identity, roles, and royalty metadata.
func PromoteInvite(inv models.MemberInvite, memberID string, now time.Time) models.ActiveMember {
	return models.ActiveMember{
		MemberID:     memberID,
		ArtistUserID: inv.ArtistUserID,
		InviteID:     inv.InviteID,
		Email:        inv.Email,
		Name:         inv.Name,
		Roles:        inv.Roles,
		Metadata:     inv.Metadata,
		JoinedAt:     now,
	}
}
