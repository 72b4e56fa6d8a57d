package moderation

import (
	"time"

	"encore/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Release moderation actions
const (
	ActionFlag           = "flag"
	ActionUnflag         = "unflag"
	ActionMarkOffensive  = "mark_offensive"
	ActionUnmarkOffens   = "unmark_offensive"
	ActionDoNotRecommend = "do_not_recommend"
	ActionAllowRecommend = "allow_recommend"
	ActionRemove         = "remove"
	ActionRestore        = "restore"
	ActionBanUser        = "ban_user"
	ActionUnbanUser      = "unban_user"
)

// releaseChange is the persisted effect of one release-targeted action.
type releaseChange struct {
	Set     bson.M
	Unset   bson.M
	Message string
}

// releaseChangeFor maps a release action to its denormalized flag writes.
// The flags are independent booleans; actions toggle exactly one concern.
// Returns false for actions that do not target a release.
func releaseChangeFor(action, moderatorID string, now time.Time) (releaseChange, bool) {
	switch action {
	case ActionFlag:
		return releaseChange{Set: bson.M{"flagged_for_review": true}, Message: "Release flagged for review"}, true
	case ActionUnflag:
		return releaseChange{Set: bson.M{"flagged_for_review": false}, Message: "Release unflagged"}, true
	case ActionMarkOffensive:
		return releaseChange{Set: bson.M{"is_offensive": true}, Message: "Release marked offensive"}, true
	case ActionUnmarkOffens:
		return releaseChange{Set: bson.M{"is_offensive": false}, Message: "Release unmarked offensive"}, true
	case ActionDoNotRecommend:
		return releaseChange{Set: bson.M{"do_not_recommend": true}, Message: "Release excluded from recommendations"}, true
	case ActionAllowRecommend:
		return releaseChange{Set: bson.M{"do_not_recommend": false}, Message: "Release allowed in recommendations"}, true
	case ActionRemove:
		return releaseChange{
			Set:     bson.M{"publish_status": "draft", "removed_by": moderatorID, "removed_at": now},
			Message: "Release removed",
		}, true
	case ActionRestore:
		return releaseChange{
			Set:     bson.M{"publish_status": "published"},
			Unset:   bson.M{"removed_by": "", "removed_at": ""},
			Message: "Release restored",
		}, true
	}
	return releaseChange{}, false
}

func isBanAction(action string) bool {
	return action == ActionBanUser || action == ActionUnbanUser
}

func isKnownAction(action string) bool {
	if isBanAction(action) {
		return true
	}
	_, ok := releaseChangeFor(action, "", time.Time{})
	return ok
}

// activeBanFilter matches the one ban the single-active-ban rule allows.
// Guards both the pre-insert check and unban resolution.
func activeBanFilter(userID string) bson.M {
	return bson.M{"userid": userID, "is_active": true}
}

// newUserBan builds the ban row inserted once the active-ban check passes.
func newUserBan(req actionRequest, banType, banID, moderatorID string, now time.Time) models.UserBan {
	return models.UserBan{
		BanID:     banID,
		UserID:    req.TargetUserID,
		Reason:    req.Reason,
		BanType:   banType,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
		BannedBy:  moderatorID,
		BannedAt:  now,
	}
}

// unbanChange returns the update and sort that together flip exactly the
// most recent active ban; older inactive bans are never touched.
func unbanChange(moderatorID string, now time.Time) (update, sort bson.M) {
	return bson.M{"$set": bson.M{
		"is_active":   false,
		"unbanned_by": moderatorID,
		"unbanned_at": now,
	}}, bson.M{"banned_at": -1}
}

// normalizeBanType defaults to permanent; a temporary ban needs an expiry.
func normalizeBanType(banType string, expiresAt *time.Time) (string, bool) {
	switch banType {
	case "", "permanent":
		return "permanent", true
	case "temporary":
		return "temporary", expiresAt != nil
	}
	return "", false
}
