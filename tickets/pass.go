package tickets

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"encore/db"
	"encore/models"
	"encore/utils"

	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

const allowedDrift = 5 * 60 // seconds

var hmacSecret = func() []byte {
	if s := os.Getenv("TICKET_HMAC_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("encore-ticket-secret")
}()

// GenerateQRPayload returns gigID|ticketID|uniqueCode|timestamp|signature.
func GenerateQRPayload(gigID, ticketID, uniqueCode string) string {
	data := fmt.Sprintf("%s|%s|%s|%d", gigID, ticketID, uniqueCode, time.Now().Unix())

	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload checks format, timestamp drift and signature.
func VerifyQRPayload(payload string) (gigID, ticketID, uniqueCode string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 5 {
		return "", "", "", errors.New("invalid QR format")
	}
	gigID, ticketID, uniqueCode = parts[0], parts[1], parts[2]
	timestampStr, signature := parts[3], parts[4]

	ts, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return "", "", "", errors.New("invalid timestamp")
	}
	drift := time.Now().Unix() - ts
	if drift < 0 {
		drift = -drift
	}
	if drift > allowedDrift {
		return "", "", "", errors.New("ticket code expired")
	}

	data := fmt.Sprintf("%s|%s|%s|%s", gigID, ticketID, uniqueCode, timestampStr)
	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", "", "", errors.New("invalid signature")
	}

	return gigID, ticketID, uniqueCode, nil
}

// VerifyTicket handles POST /api/gigs/:gigid/tickets/verify at the door.
func VerifyTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	payload := r.FormValue("payload")
	if payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "payload is required")
		return
	}

	gigID, ticketID, uniqueCode, err := VerifyQRPayload(payload)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if gigID != ps.ByName("gigid") {
		utils.RespondWithError(w, http.StatusBadRequest, "Ticket is for a different gig")
		return
	}

	var purchased models.PurchasedTicket
	err = db.PurchasedCollection.FindOne(r.Context(), bson.M{
		"gigid":      gigID,
		"ticketid":   ticketID,
		"uniquecode": uniqueCode,
	}).Decode(&purchased)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": true, "ticket": purchased})
}

// PrintTicket handles GET /api/gigs/:gigid/tickets/print?uniqueCode=... and
// streams a printable PDF pass with an embedded QR code.
func PrintTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gigID := ps.ByName("gigid")
	uniqueCode := r.URL.Query().Get("uniqueCode")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if uniqueCode == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "uniqueCode is required")
		return
	}

	var purchased models.PurchasedTicket
	err := db.PurchasedCollection.FindOne(r.Context(), bson.M{
		"gigid":      gigID,
		"uniquecode": uniqueCode,
		"userid":     userID,
	}).Decode(&purchased)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
		return
	}

	var gig models.Gig
	db.GigsCollection.FindOne(r.Context(), bson.M{"gigid": gigID}).Decode(&gig)

	qrPNG, err := qrcode.Encode(GenerateQRPayload(gigID, purchased.TicketID, uniqueCode), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Gig Ticket")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Gig: %s", gig.Title))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s %s", gig.Date, gig.StartTime))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Code: %s", uniqueCode))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=ticket-"+uniqueCode+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
