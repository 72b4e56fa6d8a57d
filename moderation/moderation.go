package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"encore/db"
	"encore/globals"
	"encore/middleware"
	"encore/models"
	"encore/mq"
	"encore/rbac"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type actionRequest struct {
	Action         string     `json:"action"`
	ReleaseID      string     `json:"releaseId,omitempty"`
	TargetUserID   string     `json:"targetUserId,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	ModeratorNotes string     `json:"moderatorNotes,omitempty"`
	BanType        string     `json:"banType,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// ApplyAction handles POST /api/moderation/actions. Every successful action
// appends an immutable audit row alongside its state write. The writes are
// sequential, not transactional; a failure between them leaves the audit
// trail short, never wrong.
func ApplyAction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	moderatorID := utils.GetUserIDFromRequest(r)
	if moderatorID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	perms := middleware.PermsFromRequest(r)
	if !perms.Has(rbac.PermModerate) {
		utils.RespondWithError(w, http.StatusForbidden, "Moderator role required")
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if !isKnownAction(req.Action) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown action: "+req.Action)
		return
	}

	if isBanAction(req.Action) {
		if !perms.Has(rbac.PermBanUsers) {
			utils.RespondWithError(w, http.StatusForbidden, "Admin role required for ban actions")
			return
		}
		handleBanAction(w, ctx, req, moderatorID)
		return
	}

	if req.ReleaseID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "releaseId is required")
		return
	}

	now := time.Now().UTC()
	change, _ := releaseChangeFor(req.Action, moderatorID, now)

	update := bson.M{"$set": change.Set}
	update["$set"].(bson.M)["updated_at"] = now
	if len(change.Unset) > 0 {
		update["$unset"] = change.Unset
	}

	res, err := db.ReleasesCollection.UpdateOne(ctx, bson.M{"releaseid": req.ReleaseID}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update release")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Release not found")
		return
	}

	if err := appendAudit(ctx, req, moderatorID, now); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record moderation action")
		return
	}

	go mq.Emit(globals.Ctx, "moderation-applied", models.Index{
		EntityType: "release", EntityId: req.ReleaseID, Method: "POST", ItemType: req.Action,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": change.Message})
}

func handleBanAction(w http.ResponseWriter, ctx context.Context, req actionRequest, moderatorID string) {
	if req.TargetUserID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "targetUserId is required")
		return
	}

	now := time.Now().UTC()

	switch req.Action {
	case ActionBanUser:
		banType, ok := normalizeBanType(req.BanType, req.ExpiresAt)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid banType or missing expiresAt for temporary ban")
			return
		}

		// Read-then-insert; no unique index backs this, so two concurrent
		// ban requests can race. Documented behaviour.
		err := db.BansCollection.FindOne(ctx, activeBanFilter(req.TargetUserID)).Err()
		if err == nil {
			utils.RespondWithError(w, http.StatusBadRequest, "User already has an active ban")
			return
		}
		if err != mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing bans")
			return
		}

		ban := newUserBan(req, banType, "ban"+utils.GenerateRandomString(12), moderatorID, now)
		if _, err := db.BansCollection.InsertOne(ctx, ban); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to ban user")
			return
		}

		if err := appendAudit(ctx, req, moderatorID, now); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record moderation action")
			return
		}

		go mq.Emit(globals.Ctx, "user-banned", models.Index{
			EntityType: "user", EntityId: req.TargetUserID, Method: "POST",
		})
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "User banned"})

	case ActionUnbanUser:
		update, sort := unbanChange(moderatorID, now)
		opts := options.FindOneAndUpdate().SetSort(sort)
		res := db.BansCollection.FindOneAndUpdate(ctx,
			activeBanFilter(req.TargetUserID),
			update,
			opts,
		)
		if res.Err() == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "No active ban for user")
			return
		}
		if res.Err() != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unban user")
			return
		}

		if err := appendAudit(ctx, req, moderatorID, now); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record moderation action")
			return
		}

		go mq.Emit(globals.Ctx, "user-unbanned", models.Index{
			EntityType: "user", EntityId: req.TargetUserID, Method: "POST",
		})
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "User unbanned"})
	}
}

func appendAudit(ctx context.Context, req actionRequest, moderatorID string, now time.Time) error {
	action := models.ModerationAction{
		ActionID:       "mod" + utils.GenerateRandomString(12),
		ActionType:     req.Action,
		ModeratorID:    moderatorID,
		ReleaseID:      req.ReleaseID,
		TargetUserID:   req.TargetUserID,
		Reason:         req.Reason,
		ModeratorNotes: req.ModeratorNotes,
		CreatedAt:      now,
	}
	_, err := db.ModerationCollection.InsertOne(ctx, action)
	return err
}

// GetActions handles GET /api/moderation/actions — the audit list, newest
// first, filterable by release, user, and action type.
func GetActions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	perms := middleware.PermsFromRequest(r)
	if !perms.Has(rbac.PermModerate) {
		utils.RespondWithError(w, http.StatusForbidden, "Moderator role required")
		return
	}

	q := r.URL.Query()
	filter := bson.M{}
	if v := q.Get("releaseId"); v != "" {
		filter["releaseid"] = v
	}
	if v := q.Get("userId"); v != "" {
		filter["target_userid"] = v
	}
	if v := q.Get("actionType"); v != "" {
		filter["action_type"] = v
	}

	limit := int64(50)
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = int64(v)
	}
	if limit > 200 {
		limit = 200
	}

	findOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := db.ModerationCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch moderation actions")
		return
	}
	defer cursor.Close(ctx)

	var actions []models.ModerationAction
	if err := cursor.All(ctx, &actions); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing moderation actions")
		return
	}
	if len(actions) == 0 {
		actions = []models.ModerationAction{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"actions": actions})
}
