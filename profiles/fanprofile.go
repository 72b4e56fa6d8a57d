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

// UpsertFanProfile handles POST /api/fan-profile — the cumulative payload
// the wizard (and later the dashboard) sends. Only provided fields change.
func UpsertFanProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var input models.FanProfile
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if input.DisplayName != "" {
		set["display_name"] = input.DisplayName
	}
	if input.Bio != "" {
		set["bio"] = input.Bio
	}
	if input.Location != "" {
		set["location"] = input.Location
	}
	if len(input.GenreFamilies) > 0 {
		set["genre_families"] = input.GenreFamilies
	}
	if len(input.MainGenres) > 0 {
		set["main_genres"] = input.MainGenres
	}
	if len(input.SubGenres) > 0 {
		set["sub_genres"] = input.SubGenres
	}
	if len(input.MediaLinks) > 0 {
		set["media_links"] = input.MediaLinks
	}
	if input.ProfilePicture != "" {
		set["profile_picture"] = input.ProfilePicture
	}
	if len(input.Photos) > 0 {
		set["photos"] = input.Photos
	}
	if len(input.Videos) > 0 {
		set["videos"] = input.Videos
	}
	if input.PaymentMethod != "" {
		set["payment_method"] = input.PaymentMethod
	}
	if input.OnboardingComplete {
		set["onboarding_complete"] = true
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := db.FanProfilesCollection.UpdateOne(ctx, bson.M{"userid": userID}, update, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save fan profile")
		return
	}

	go mq.Emit(globals.Ctx, "fanprofile-updated", models.Index{
		EntityType: "fanprofile", EntityId: userID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Profile saved"})
}

// GetFanProfile handles GET /api/fan-profile.
func GetFanProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var profile models.FanProfile
	if err := db.FanProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&profile); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Fan profile not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}
