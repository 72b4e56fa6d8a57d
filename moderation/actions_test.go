package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestReleaseChangeFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("flag sets the review flag only", func(t *testing.T) {
		change, ok := releaseChangeFor(ActionFlag, "mod1", now)
		require.True(t, ok)
		assert.Equal(t, true, change.Set["flagged_for_review"])
		assert.NotContains(t, change.Set, "is_offensive")
		assert.NotContains(t, change.Set, "do_not_recommend")
		assert.Equal(t, "Release flagged for review", change.Message)
	})

	t.Run("each toggle pair is symmetric", func(t *testing.T) {
		pairs := []struct {
			on, off string
			field   string
		}{
			{ActionFlag, ActionUnflag, "flagged_for_review"},
			{ActionMarkOffensive, ActionUnmarkOffens, "is_offensive"},
			{ActionDoNotRecommend, ActionAllowRecommend, "do_not_recommend"},
		}
		for _, p := range pairs {
			on, ok := releaseChangeFor(p.on, "mod1", now)
			require.True(t, ok, p.on)
			assert.Equal(t, true, on.Set[p.field])

			off, ok := releaseChangeFor(p.off, "mod1", now)
			require.True(t, ok, p.off)
			assert.Equal(t, false, off.Set[p.field])
		}
	})

	t.Run("remove demotes to draft and records the moderator", func(t *testing.T) {
		change, ok := releaseChangeFor(ActionRemove, "mod1", now)
		require.True(t, ok)
		assert.Equal(t, "draft", change.Set["publish_status"])
		assert.Equal(t, "mod1", change.Set["removed_by"])
		assert.Equal(t, now, change.Set["removed_at"])
	})

	t.Run("restore republishes and clears removal fields", func(t *testing.T) {
		change, ok := releaseChangeFor(ActionRestore, "mod1", now)
		require.True(t, ok)
		assert.Equal(t, "published", change.Set["publish_status"])
		assert.Contains(t, change.Unset, "removed_by")
		assert.Contains(t, change.Unset, "removed_at")
	})

	t.Run("ban actions do not target releases", func(t *testing.T) {
		_, ok := releaseChangeFor(ActionBanUser, "mod1", now)
		assert.False(t, ok)
		_, ok = releaseChangeFor("bogus", "mod1", now)
		assert.False(t, ok)
	})
}

func TestIsKnownAction(t *testing.T) {
	for _, a := range []string{
		ActionFlag, ActionUnflag, ActionMarkOffensive, ActionUnmarkOffens,
		ActionDoNotRecommend, ActionAllowRecommend, ActionRemove, ActionRestore,
		ActionBanUser, ActionUnbanUser,
	} {
		assert.True(t, isKnownAction(a), a)
	}
	assert.False(t, isKnownAction("promote"))
	assert.False(t, isKnownAction(""))
}

func TestBanDecisions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active-ban filter scopes to the user's live ban", func(t *testing.T) {
		filter := activeBanFilter("u1")
		assert.Equal(t, "u1", filter["userid"])
		assert.Equal(t, true, filter["is_active"])
		assert.Len(t, filter, 2, "filter must not match inactive or foreign bans")
	})

	t.Run("new ban carries the request fields and starts active", func(t *testing.T) {
		exp := now.Add(48 * time.Hour)
		req := actionRequest{
			Action:       ActionBanUser,
			TargetUserID: "u1",
			Reason:       "spam",
			ExpiresAt:    &exp,
		}
		ban := newUserBan(req, "temporary", "ban123", "mod1", now)
		assert.Equal(t, "ban123", ban.BanID)
		assert.Equal(t, "u1", ban.UserID)
		assert.Equal(t, "spam", ban.Reason)
		assert.Equal(t, "temporary", ban.BanType)
		assert.True(t, ban.IsActive)
		require.NotNil(t, ban.ExpiresAt)
		assert.Equal(t, exp, *ban.ExpiresAt)
		assert.Equal(t, "mod1", ban.BannedBy)
		assert.Equal(t, now, ban.BannedAt)
	})

	t.Run("unban flips the most recent active ban only", func(t *testing.T) {
		update, sort := unbanChange("mod1", now)

		assert.Equal(t, -1, sort["banned_at"], "newest active ban wins")

		set, ok := update["$set"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, false, set["is_active"])
		assert.Equal(t, "mod1", set["unbanned_by"])
		assert.Equal(t, now, set["unbanned_at"])
		assert.NotContains(t, update, "$unset", "ban history stays intact")
	})
}

func TestNormalizeBanType(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour)

	banType, ok := normalizeBanType("", nil)
	assert.True(t, ok)
	assert.Equal(t, "permanent", banType)

	banType, ok = normalizeBanType("permanent", nil)
	assert.True(t, ok)
	assert.Equal(t, "permanent", banType)

	_, ok = normalizeBanType("temporary", nil)
	assert.False(t, ok, "temporary ban without an expiry must be rejected")

	banType, ok = normalizeBanType("temporary", &exp)
	assert.True(t, ok)
	assert.Equal(t, "temporary", banType)

	_, ok = normalizeBanType("forever", nil)
	assert.False(t, ok)
}
