package profiles

import (
	"encoding/json"
	"net/http"
	"time"

	"encore/db"
	"encore/globals"
	"encore/models"
	"encore/mq"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertArtistProfile handles POST /api/artist-profile. Stage identity and
// representation contacts are mutated repeatedly during setup and later
// from the dashboard; the profile is created once and never deleted here.
func UpsertArtistProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var input models.ArtistProfile
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.StageName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "stage_name is required")
		return
	}

	now := time.Now().UTC()
	set := bson.M{
		"stage_name": input.StageName,
		"updated_at": now,
	}
	if input.ArtistType != "" {
		set["artist_type"] = input.ArtistType
	}
	if input.Bio != "" {
		set["bio"] = input.Bio
	}
	if input.Label != "" {
		set["label"] = input.Label
	}
	if input.Publisher != "" {
		set["publisher"] = input.Publisher
	}
	if input.Manager != "" {
		set["manager"] = input.Manager
	}
	if input.Agent != "" {
		set["agent"] = input.Agent
	}
	if len(input.Genres) > 0 {
		set["genres"] = input.Genres
	}
	if len(input.Socials) > 0 {
		set["socials"] = input.Socials
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := db.ArtistsCollection.UpdateOne(ctx, bson.M{"userid": userID}, update, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save artist profile")
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"role": "artist"}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to grant artist role")
		return
	}

	go mq.Emit(globals.Ctx, "artistprofile-updated", models.Index{
		EntityType: "artistprofile", EntityId: userID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Artist profile saved"})
}

// GetArtistProfile handles GET /api/artist-profile.
func GetArtistProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var profile models.ArtistProfile
	if err := db.ArtistsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&profile); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Artist profile not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}
