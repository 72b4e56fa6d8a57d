package tickets

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"encore/db"
	"encore/globals"
	"encore/models"
	"encore/mq"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTicketOption attaches a purchasable ticket class to a gig. Only the
// artist who owns the gig may add options.
func CreateTicketOption(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gigID := ps.ByName("gigid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := db.GigsCollection.CountDocuments(r.Context(), bson.M{"gigid": gigID, "artist_userid": userID})
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		return
	}

	name := r.FormValue("name")
	priceStr := r.FormValue("price")
	currency := r.FormValue("currency")
	quantityStr := r.FormValue("quantity")
	if name == "" || priceStr == "" || currency == "" || quantityStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name, price, currency and quantity are required")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price value")
		return
	}
	quantity, err := strconv.Atoi(quantityStr)
	if err != nil || quantity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid quantity value")
		return
	}

	tick := models.TicketOption{
		TicketID:  "t" + utils.GenerateRandomString(12),
		GigID:     gigID,
		Name:      name,
		Price:     price,
		Currency:  currency,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}

	if _, err := db.TicketsCollection.InsertOne(r.Context(), tick); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	go mq.Emit(globals.Ctx, "ticket-created", models.Index{EntityType: "ticket", EntityId: tick.TicketID, Method: "POST", ItemType: "gig", ItemId: gigID})

	utils.RespondWithJSON(w, http.StatusCreated, tick)
}

// GetTicketOptions lists the ticket classes of a gig.
func GetTicketOptions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gigID := ps.ByName("gigid")

	cursor, err := db.TicketsCollection.Find(r.Context(), bson.M{"gigid": gigID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tickets")
		return
	}
	defer cursor.Close(r.Context())

	ticks := []models.TicketOption{}
	if err := cursor.All(r.Context(), &ticks); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing tickets")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ticks)
}

// DeleteTicketOption removes a ticket class that has not sold yet.
func DeleteTicketOption(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gigID := ps.ByName("gigid")
	ticketID := ps.ByName("ticketid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := db.GigsCollection.CountDocuments(r.Context(), bson.M{"gigid": gigID, "artist_userid": userID})
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		return
	}

	res, err := db.TicketsCollection.DeleteOne(r.Context(), bson.M{"ticketid": ticketID, "gigid": gigID, "sold": 0})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete ticket")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Ticket not found or already sold")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

type buyRequest struct {
	Quantity int `json:"quantity"`
}

// BuyTicket purchases tickets of one class. The sold counter is incremented
// with a guarded update so overselling loses the race, not the buyer.
func BuyTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gigID := ps.ByName("gigid")
	ticketID := ps.ByName("ticketid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity <= 0 {
		req.Quantity = 1
	}

	var tick models.TicketOption
	err := db.TicketsCollection.FindOneAndUpdate(r.Context(),
		bson.M{
			"ticketid": ticketID,
			"gigid":    gigID,
			"$expr":    bson.M{"$lte": bson.A{bson.M{"$add": bson.A{"$sold", req.Quantity}}, "$quantity"}},
		},
		bson.M{"$inc": bson.M{"sold": req.Quantity}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tick)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusConflict, "Not enough tickets available")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to buy ticket")
		return
	}

	purchased := make([]models.PurchasedTicket, req.Quantity)
	docs := make([]interface{}, req.Quantity)
	now := time.Now()
	for i := range purchased {
		purchased[i] = models.PurchasedTicket{
			GigID:      gigID,
			TicketID:   ticketID,
			UserID:     userID,
			UniqueCode: utils.GenerateRandomDigitString(10),
			BoughtAt:   now,
		}
		docs[i] = purchased[i]
	}
	if _, err := db.PurchasedCollection.InsertMany(r.Context(), docs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Purchase could not be recorded")
		return
	}

	go mq.Emit(globals.Ctx, "ticket-bought", models.Index{EntityType: "ticket", EntityId: ticketID, Method: "POST", ItemType: "gig", ItemId: gigID})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"tickets":   purchased,
		"remaining": tick.Quantity - tick.Sold,
	})
}
