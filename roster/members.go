package roster

import (
	"net/http"

	"encore/db"
	"encore/models"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetRoster handles GET /api/roster — the owner's pending
// invitations alongside the confirmed roster.
func GetRoster(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	opts := utils.ParseQueryOptions(r)

	cursor, err := db.InvitesCollection.Find(ctx, bson.M{"artist_userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch invitations")
		return
	}
	var invites []models.MemberInvite
	if err := cursor.All(ctx, &invites); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing invitations")
		return
	}
	invites = FilterRoster(invites, opts.Status, opts.Search)

	cursor, err = db.ActiveMembersCollection.Find(ctx, bson.M{"artist_userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch members")
		return
	}
	var members []models.ActiveMember
	if err := cursor.All(ctx, &members); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing members")
		return
	}

	if len(invites) == 0 {
		invites = []models.MemberInvite{}
	}
	if len(members) == 0 {
		members = []models.ActiveMember{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"invitations": invites,
		"members":     members,
	})
}
