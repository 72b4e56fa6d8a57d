package gigs

import (
	"encoding/json"
	"net/http"
	"time"

	"encore/db"
	"encore/globals"
	"encore/models"
	"encore/mq"
	"encore/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetGigs handles GET /api/gigs?view=calendar|invites|requests.
// Every view returns an ordered list plus an optional non-fatal warning.
func GetGigs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	q := r.URL.Query()

	filter := bson.M{"artist_userid": userID}

	switch q.Get("view") {
	case "", "calendar":
		if from := q.Get("from"); from != "" {
			dateRange := bson.M{"$gte": from}
			if to := q.Get("to"); to != "" {
				dateRange["$lte"] = to
			}
			filter["date"] = dateRange
		}
		if status := q.Get("status"); status != "" {
			filter["booking_status"] = status
		}
	case "invites":
		filter["direction"] = "inbound"
		filter["booking_status"] = models.GigPending
	case "requests":
		filter["direction"] = "outbound"
		filter["booking_status"] = models.GigPending
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown view: "+q.Get("view"))
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := db.GigsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch gigs")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Gig
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing gigs")
		return
	}
	if len(list) == 0 {
		list = []models.Gig{}
	}

	resp := utils.M{"gigs": list}
	if warning := mergeWarning(list); warning != "" {
		resp["warning"] = warning
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// CreateGig handles POST /api/gigs. Artist-created gigs start as
// outbound pending drafts with the artist as source of truth.
func CreateGig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	if !utils.Contains(utils.GetRolesFromRequest(r), "artist") {
		utils.RespondWithError(w, http.StatusForbidden, "Artist role required")
		return
	}

	var gig models.Gig
	if err := json.NewDecoder(r.Body).Decode(&gig); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if gig.Title == "" || gig.Date == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "title and date are required")
		return
	}
	if _, err := time.Parse("2006-01-02", gig.Date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	now := time.Now().UTC()
	gig.GigID = uuid.NewString()
	gig.ArtistUserID = userID
	gig.BookingStatus = models.GigPending
	gig.PublishStatus = models.GigDraft
	gig.SourceOfTruth = "artist"
	gig.Direction = "outbound"
	gig.MergeStatus = ""
	gig.CreatedAt = now
	gig.UpdatedAt = now

	if _, err := db.GigsCollection.InsertOne(ctx, gig); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create gig")
		return
	}

	go mq.Emit(globals.Ctx, "gig-created", models.Index{
		EntityType: "gig", EntityId: gig.GigID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusCreated, gig)
}

// UpdateGig handles PUT /api/gigs/:id — a full update of the
// artist-owned fields. Status fields only move through action verbs.
func UpdateGig(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	gigID := ps.ByName("id")

	var input models.Gig
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Title == "" || input.Date == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "title and date are required")
		return
	}

	update := bson.M{"$set": bson.M{
		"title":          input.Title,
		"description":    input.Description,
		"date":           input.Date,
		"start_time":     input.StartTime,
		"venue_name":     input.VenueName,
		"is_streaming":   input.IsStreaming,
		"artist_artwork": input.ArtistArtwork,
		"ticketing":      input.Ticketing,
		"updated_at":     time.Now().UTC(),
	}}

	res, err := db.GigsCollection.UpdateOne(ctx, bson.M{"gigid": gigID, "artist_userid": userID}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update gig")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		return
	}

	go mq.Emit(globals.Ctx, "gig-updated", models.Index{
		EntityType: "gig", EntityId: gigID, Method: "PUT",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Gig updated"})
}

// GigAction handles PATCH /api/gigs/:id — action verbs. Invalid
// transitions return 400 with the message shown to the user verbatim.
func GigAction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	gigID := ps.ByName("id")

	var input struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Action == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "action is required")
		return
	}

	var gig models.Gig
	err := db.GigsCollection.FindOne(ctx, bson.M{"gigid": gigID, "artist_userid": userID}).Decode(&gig)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		return
	}

	changes, err := applyVerb(gig, input.Action, time.Now().UTC())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.GigsCollection.UpdateOne(ctx, bson.M{"gigid": gigID}, bson.M{"$set": changes}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to apply action")
		return
	}

	go mq.Emit(globals.Ctx, "gig-"+input.Action, models.Index{
		EntityType: "gig", EntityId: gigID, Method: "PATCH",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
