package roster

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"encore/db"
	"encore/globals"
	"encore/mailer"
	"encore/models"
	"encore/mq"
	"encore/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Mail is the outbound sender for invitation mail. Swapped in tests.
var Mail mailer.Sender = mailer.SMTPSender{Cfg: mailer.ConfigFromEnv()}

// artistName returns the caller's stage name when an artist profile exists.
func artistName(ctx context.Context, userID string) (string, error) {
	var profile models.ArtistProfile
	err := db.ArtistsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&profile)
	if err != nil {
		return "", err
	}
	if profile.StageName != "" {
		return profile.StageName, nil
	}
	return "An artist", nil
}

// CreateInvite handles POST /api/roster/invites. On mail failure the just
// inserted invitation is deleted again — a manual compensation, since the
// two steps share no transaction.
func CreateInvite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	stageName, err := artistName(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Artist profile required")
		return
	}

	var input struct {
		Email        string   `json:"email"`
		Name         string   `json:"name"`
		Roles        []string `json:"roles"`
		RoyaltyShare float64  `json:"royaltyShare"`
		IsAdmin      bool     `json:"isAdmin"`
		Notes        string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Email == "" || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email and name are required")
		return
	}
	if !utils.IsValidEmail(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	// Role tags arrive free-form from the invite dialog; trim, lowercase,
	// and dedupe before they are persisted.
	roles := utils.SplitTags(strings.Join(input.Roles, ","))
	if len(roles) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one role is required")
		return
	}

	now := time.Now().UTC()
	invite := models.MemberInvite{
		InviteID:     "inv" + utils.GenerateRandomString(12),
		ArtistUserID: userID,
		Email:        input.Email,
		Name:         input.Name,
		Roles:        roles,
		Status:       models.InviteStatusPending,
		Token:        uuid.NewString(),
		TokenExpiry:  NewExpiry(now),
		Metadata: models.InviteMetadata{
			RoyaltyShare: input.RoyaltyShare,
			IsAdmin:      input.IsAdmin,
			Notes:        input.Notes,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.InvitesCollection.InsertOne(ctx, invite); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create invitation")
		return
	}

	cfg := mailer.ConfigFromEnv()
	if err := Mail.Send(invite.Email, "You're invited to join "+stageName, mailer.InviteBody(cfg.AppURL, stageName, invite.Token)); err != nil {
		log.Printf("Invite mail failed, rolling back %s: %v", invite.InviteID, err)
		if _, derr := db.InvitesCollection.DeleteOne(ctx, bson.M{"inviteid": invite.InviteID}); derr != nil {
			log.Printf("Compensation delete failed for %s: %v", invite.InviteID, derr)
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send invitation email")
		return
	}

	go mq.Emit(globals.Ctx, "invite-created", models.Index{
		EntityType: "memberinvite", EntityId: invite.InviteID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusCreated, invite)
}

// ResendInvite handles POST /api/roster/invites/:id/resend. Regenerates
// token and expiry and marks the invite sent before mailing; a mail failure
// here does not roll the mutation back (asymmetric with create, kept as-is).
func ResendInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	inviteID := ps.ByName("id")

	var invite models.MemberInvite
	err := db.InvitesCollection.FindOne(ctx, bson.M{"inviteid": inviteID, "artist_userid": userID}).Decode(&invite)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	if !CanResend(invite.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invitation in status "+invite.Status+" cannot be resent")
		return
	}

	now := time.Now().UTC()
	newToken := uuid.NewString()
	_, err = db.InvitesCollection.UpdateOne(ctx,
		bson.M{"inviteid": inviteID},
		bson.M{"$set": bson.M{
			"invitation_token": newToken,
			"token_expiry":     NewExpiry(now),
			"status":           models.InviteStatusSent,
			"updated_at":       now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update invitation")
		return
	}

	stageName, _ := artistName(ctx, userID)
	cfg := mailer.ConfigFromEnv()
	if err := Mail.Send(invite.Email, "You're invited to join "+stageName, mailer.InviteBody(cfg.AppURL, stageName, newToken)); err != nil {
		log.Printf("Resend mail failed for %s: %v", inviteID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send invitation email")
		return
	}

	go mq.Emit(globals.Ctx, "invite-resent", models.Index{
		EntityType: "memberinvite", EntityId: inviteID, Method: "PATCH",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Invitation resent"})
}

// RespondToInvite handles POST /api/roster/respond — the invitee's
// accept/decline via the mailed single-use token.
func RespondToInvite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input struct {
		Token    string `json:"token"`
		Response string `json:"response"` // accept, decline
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing token")
		return
	}
	if input.Response != "accept" && input.Response != "decline" {
		utils.RespondWithError(w, http.StatusBadRequest, "response must be accept or decline")
		return
	}

	var invite models.MemberInvite
	err := db.InvitesCollection.FindOne(ctx, bson.M{"invitation_token": input.Token}).Decode(&invite)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	if !CanRespond(invite.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invitation already responded to")
		return
	}
	if time.Now().UTC().After(invite.TokenExpiry) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invitation has expired")
		return
	}

	status := models.InviteStatusAccepted
	if input.Response == "decline" {
		status = models.InviteStatusDeclined
	}

	_, err = db.InvitesCollection.UpdateOne(ctx,
		bson.M{"inviteid": invite.InviteID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update invitation")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Invitation " + status})
}

// PublishMembers handles POST /api/roster/publish. Promotes the
// accepted subset of the given invitations into active members, then flips
// those invitations to active. The second write has no rollback.
func PublishMembers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		InviteIDs []string `json:"inviteIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input.InviteIDs) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "inviteIds is required")
		return
	}

	cursor, err := db.InvitesCollection.Find(ctx, bson.M{
		"inviteid":      bson.M{"$in": input.InviteIDs},
		"artist_userid": userID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch invitations")
		return
	}
	defer cursor.Close(ctx)

	var invites []models.MemberInvite
	if err := cursor.All(ctx, &invites); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing invitations")
		return
	}

	accepted := FilterAccepted(invites)
	if len(accepted) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No accepted invitations to publish")
		return
	}

	now := time.Now().UTC()
	members := make([]interface{}, 0, len(accepted))
	promotedIDs := make([]string, 0, len(accepted))
	for _, inv := range accepted {
		members = append(members, PromoteInvite(inv, "mem"+utils.GenerateRandomString(12), now))
		promotedIDs = append(promotedIDs, inv.InviteID)
	}

	if _, err := db.ActiveMembersCollection.InsertMany(ctx, members); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create roster members")
		return
	}

	_, err = db.InvitesCollection.UpdateMany(ctx,
		bson.M{"inviteid": bson.M{"$in": promotedIDs}},
		bson.M{"$set": bson.M{"status": models.InviteStatusActive, "updated_at": now}},
	)
	if err != nil {
		// Members exist but invites still read accepted; surfaced, not unwound.
		utils.RespondWithError(w, http.StatusInternalServerError, "Members created but invitation update failed")
		return
	}

	go mq.Emit(globals.Ctx, "members-published", models.Index{
		EntityType: "activemember", EntityId: userID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"published": len(accepted)})
}

// DeleteInvite handles DELETE /api/roster/invites/:id. No status check;
// withdrawal is always allowed, scoped to the owner.
func DeleteInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	inviteID := ps.ByName("id")

	res, err := db.InvitesCollection.DeleteOne(ctx, bson.M{"inviteid": inviteID, "artist_userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete invitation")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	go mq.Emit(globals.Ctx, "invite-deleted", models.Index{
		EntityType: "memberinvite", EntityId: inviteID, Method: "DELETE",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Invitation deleted"})
}

// UpdateSplit handles PUT /api/roster/invites/:id/split. The id is looked up in
// invitations first, then active members; royalty and admin fields merge
// into the existing metadata.
func UpdateSplit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	id := ps.ByName("id")

	var input struct {
		RoyaltyShare *float64 `json:"royaltyShare"`
		IsAdmin      *bool    `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.RoyaltyShare == nil && input.IsAdmin == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}
	if input.RoyaltyShare != nil && (*input.RoyaltyShare < 0 || *input.RoyaltyShare > 100) {
		utils.RespondWithError(w, http.StatusBadRequest, "royaltyShare must be between 0 and 100")
		return
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if input.RoyaltyShare != nil {
		set["metadata.royalty_share"] = *input.RoyaltyShare
	}
	if input.IsAdmin != nil {
		set["metadata.is_admin"] = *input.IsAdmin
	}

	res, err := db.InvitesCollection.UpdateOne(ctx,
		bson.M{"inviteid": id, "artist_userid": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update invitation")
		return
	}
	if res.MatchedCount > 0 {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Invitation updated"})
		return
	}

	delete(set, "updated_at")
	res, err = db.ActiveMembersCollection.UpdateOne(ctx,
		bson.M{"memberid": id, "artist_userid": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update member")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No invitation or member with that id")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Member updated"})
}
