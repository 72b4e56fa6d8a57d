package fancomms

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

// ScheduleComm handles POST /api/fancomms. Returns the
// recipient count used by the client's success message.
func ScheduleComm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var input commInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	now := time.Now().UTC()
	if err := validate(input, now); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var gig models.Gig
	err := db.GigsCollection.FindOne(ctx, bson.M{"gigid": input.GigID, "artist_userid": userID}).Decode(&gig)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		return
	}

	if _, err := resolveArtwork(gig, input.Artwork); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	recipients, err := countRecipients(r, userID, input)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count recipients")
		return
	}

	comm := models.FanComm{
		CommID:       "comm" + utils.GenerateRandomString(12),
		GigID:        input.GigID,
		ArtistUserID: userID,
		Title:        input.Title,
		Message:      input.Message,
		SendMode:     input.SendMode,
		Audience:     input.Audience,
		Regions:      input.Regions,
		Artwork:      input.Artwork,
		Recipients:   int(recipients),
		CreatedAt:    now,
	}

	if input.SendMode == "now" {
		comm.Status = models.CommSent
		comm.SentAt = &now
	} else {
		comm.Status = models.CommScheduled
		comm.SendAt = input.SendAt
	}

	if _, err := db.FanCommsCollection.InsertOne(ctx, comm); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to enqueue communication")
		return
	}

	go mq.Emit(globals.Ctx, "comms-enqueued", models.Index{
		EntityType: "fancomm", EntityId: comm.CommID, Method: "POST", ItemId: comm.GigID, ItemType: "gig",
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"commId":     comm.CommID,
		"status":     comm.Status,
		"recipients": comm.Recipients,
	})
}

func countRecipients(r *http.Request, artistUserID string, input commInput) (int64, error) {
	filter := bson.M{"artist_userid": artistUserID}
	if input.Audience == "specific_regions" {
		filter["region"] = bson.M{"$in": input.Regions}
	}
	return db.FollowersCollection.CountDocuments(r.Context(), filter)
}

// GetComms handles GET /api/fancomms?gigId= — newest first.
func GetComms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	filter := bson.M{"artist_userid": userID}
	if gigID := r.URL.Query().Get("gigId"); gigID != "" {
		filter["gigid"] = gigID
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := db.FanCommsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch communications")
		return
	}
	defer cursor.Close(ctx)

	var comms []models.FanComm
	if err := cursor.All(ctx, &comms); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing communications")
		return
	}
	if len(comms) == 0 {
		comms = []models.FanComm{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"comms": comms})
}

// CancelComm handles POST /api/fancomms/:id/cancel. Only scheduled
// entries can be cancelled; sent ones are history.
func CancelComm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	commID := ps.ByName("id")

	res, err := db.FanCommsCollection.UpdateOne(ctx,
		bson.M{"commid": commID, "artist_userid": userID, "status": models.CommScheduled},
		bson.M{"$set": bson.M{"status": models.CommCancelled}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel communication")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Communication is not scheduled or does not exist")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Communication cancelled"})
}
