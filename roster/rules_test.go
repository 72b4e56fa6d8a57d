package roster

import (
	"testing"
	"time"

	"encore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanResend(t *testing.T) {
	assert.True(t, CanResend(models.InviteStatusPending))
	assert.True(t, CanResend(models.InviteStatusSent))
	assert.True(t, CanResend(models.InviteStatusDeclined))
	assert.False(t, CanResend(models.InviteStatusAccepted))
	assert.False(t, CanResend(models.InviteStatusActive))
	assert.False(t, CanResend(""))
}

func TestCanRespond(t *testing.T) {
	assert.True(t, CanRespond(models.InviteStatusPending))
	assert.True(t, CanRespond(models.InviteStatusSent))
	assert.False(t, CanRespond(models.InviteStatusAccepted))
	assert.False(t, CanRespond(models.InviteStatusDeclined))
	assert.False(t, CanRespond(models.InviteStatusActive))
}

func TestNewExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, 7), NewExpiry(now))
}

func TestFilterAccepted(t *testing.T) {
	invites := []models.MemberInvite{
		{InviteID: "i1", Status: models.InviteStatusPending},
		{InviteID: "i2", Status: models.InviteStatusAccepted},
		{InviteID: "i3", Status: models.InviteStatusDeclined},
		{InviteID: "i4", Status: models.InviteStatusAccepted},
		{InviteID: "i5", Status: models.InviteStatusActive},
	}

	accepted := FilterAccepted(invites)
	require.Len(t, accepted, 2)
	assert.Equal(t, "i2", accepted[0].InviteID)
	assert.Equal(t, "i4", accepted[1].InviteID)

	assert.Empty(t, FilterAccepted(nil))
	assert.Empty(t, FilterAccepted([]models.MemberInvite{{Status: models.InviteStatusPending}}))
}

func TestFilterRoster(t *testing.T) {
	invites := []models.MemberInvite{
		{InviteID: "i1", Name: "Sam Carter", Email: "sam@example.com", Status: models.InviteStatusPending},
		{InviteID: "i2", Name: "Dana Reyes", Email: "dana@example.com", Status: models.InviteStatusAccepted},
		{InviteID: "i3", Name: "Sammy Ortiz", Email: "ortiz@example.com", Status: models.InviteStatusAccepted},
	}

	t.Run("empty arguments pass everything", func(t *testing.T) {
		assert.Len(t, FilterRoster(invites, "", ""), 3)
	})

	t.Run("status is an exact match", func(t *testing.T) {
		got := FilterRoster(invites, models.InviteStatusAccepted, "")
		require.Len(t, got, 2)
		assert.Equal(t, "i2", got[0].InviteID)
		assert.Equal(t, "i3", got[1].InviteID)
	})

	t.Run("search matches name or email, ignoring case", func(t *testing.T) {
		got := FilterRoster(invites, "", "SAM")
		require.Len(t, got, 2)
		assert.Equal(t, "i1", got[0].InviteID)
		assert.Equal(t, "i3", got[1].InviteID)

		got = FilterRoster(invites, "", "dana@")
		require.Len(t, got, 1)
		assert.Equal(t, "i2", got[0].InviteID)
	})

	t.Run("status and search combine", func(t *testing.T) {
		got := FilterRoster(invites, models.InviteStatusAccepted, "sam")
		require.Len(t, got, 1)
		assert.Equal(t, "i3", got[0].InviteID)
	})

	t.Run("no match yields an empty, non-nil list", func(t *testing.T) {
		got := FilterRoster(invites, models.InviteStatusDeclined, "")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestPromoteInvite(t *testing.T) {
	now := time.Now()
	inv := models.MemberInvite{
		InviteID:     "i1",
		ArtistUserID: "u9",
		Email:        "drummer@example.com",
		Name:         "Sam",
		Roles:        []string{"drummer", "backing vocals"},
		Status:       models.InviteStatusAccepted,
		Metadata:     models.InviteMetadata{RoyaltyShare: 25, IsAdmin: true},
	}

	m := PromoteInvite(inv, "m1", now)
	assert.Equal(t, "m1", m.MemberID)
	assert.Equal(t, "u9", m.ArtistUserID)
	assert.Equal(t, "i1", m.InviteID)
	assert.Equal(t, inv.Email, m.Email)
	assert.Equal(t, inv.Roles, m.Roles)
	assert.Equal(t, 25.0, m.Metadata.RoyaltyShare)
	assert.True(t, m.Metadata.IsAdmin)
	assert.Equal(t, now, m.JoinedAt)
}
