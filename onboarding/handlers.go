package onboarding

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"encore/auth"
	"encore/db"
	"encore/models"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stateResponse is what every wizard endpoint returns: the session plus the
// derived step list and gate state, so clients never compute sequencing.
type stateResponse struct {
	Session    models.OnboardingSession `json:"session"`
	Steps      []string                 `json:"steps"`
	Labels     map[string]string        `json:"labels"`
	Current    string                   `json:"current"`
	CanAdvance bool                     `json:"canAdvance"`
	BlockedBy  string                   `json:"blockedBy,omitempty"`
}

func buildState(s models.OnboardingSession) stateResponse {
	steps := StepsFor(s)
	s.StepIndex = clampIndex(s.StepIndex, steps)
	current := steps[s.StepIndex]
	ok, reason := CanAdvance(s, current)
	return stateResponse{
		Session:    s,
		Steps:      steps,
		Labels:     StepLabels,
		Current:    current,
		CanAdvance: ok,
		BlockedBy:  reason,
	}
}

// StartSession handles POST /api/onboarding/start.
func StartSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	now := time.Now().UTC()

	session := models.OnboardingSession{
		SessionID: "ob" + utils.GenerateRandomString(14),
		StepIndex: 0,
		Completed: []string{},
		Forms:     models.OnboardingForms{Extra: map[string]string{}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.OnboardingCollection.InsertOne(ctx, session); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to start onboarding")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, buildState(session))
}

// GetSession handles GET /api/onboarding/session/:id.
func GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, ok := loadSession(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buildState(session))
}

type advanceInput struct {
	MemberType string                  `json:"memberType,omitempty"`
	Personas   []string                `json:"personas,omitempty"`
	ArtistType string                  `json:"artistType,omitempty"`
	Forms      *models.OnboardingForms `json:"forms,omitempty"`
	Extra      map[string]string       `json:"extra,omitempty"`
}

// Advance handles POST /api/onboarding/session/:id/advance. The request carries the
// active step's form data; the predicate gates the move, the per-step side
// effect runs before the index increments, and the step list is recomputed
// afterwards since selections may have changed it.
func Advance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	session, ok := loadSession(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	if session.Done {
		utils.RespondWithError(w, http.StatusBadRequest, "Onboarding is already complete")
		return
	}

	var input advanceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	mergeInput(&session, input)

	steps := StepsFor(session)
	session.StepIndex = clampIndex(session.StepIndex, steps)
	current := steps[session.StepIndex]

	if ok, reason := CanAdvance(session, current); !ok {
		utils.RespondWithError(w, http.StatusBadRequest, reason)
		return
	}

	if err := runStepEffect(ctx, &session, current); err != nil {
		if err == auth.ErrUserExists {
			utils.RespondWithError(w, http.StatusConflict, "An account with that email already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !utils.Contains(session.Completed, current) {
		session.Completed = append(session.Completed, current)
	}

	// Passwords live only long enough to create the account; never echo or
	// persist them.
	if current == StepFanAccount {
		session.Forms.Account.Password = ""
		session.Forms.Account.ConfirmPassword = ""
	}

	// Selections made on this step may have inserted or removed steps.
	steps = StepsFor(session)
	idx := indexOf(steps, current)
	if idx < 0 {
		idx = clampIndex(session.StepIndex, steps)
	}
	if idx+1 < len(steps) {
		session.StepIndex = idx + 1
	} else {
		session.StepIndex = idx
		session.Done = true
	}
	session.UpdatedAt = time.Now().UTC()

	if !saveSession(w, ctx, session) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buildState(session))
}

// Back handles POST /api/onboarding/session/:id/back. Backward navigation is never
// gated.
func Back(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	session, ok := loadSession(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	if session.StepIndex > 0 {
		session.StepIndex--
	}
	session.UpdatedAt = time.Now().UTC()

	if !saveSession(w, ctx, session) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buildState(session))
}

// Resume handles POST /api/onboarding/resume. Exchanges the one-time email
// verification token, re-derives the step list, and jumps to the persona-
// appropriate resume point instead of replaying completed steps.
func Resume(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing token")
		return
	}

	userID, err := auth.ConsumeVerificationToken(input.Token)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired verification token")
		return
	}

	var session models.OnboardingSession
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	if err := db.OnboardingCollection.FindOne(ctx, bson.M{"userid": userID}, opts).Decode(&session); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No onboarding session for this user")
		return
	}

	session.AuthPending = false
	steps := StepsFor(session)
	session.StepIndex = indexOf(steps, ResumeStep(session))
	session.UpdatedAt = time.Now().UTC()

	if !saveSession(w, ctx, session) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buildState(session))
}

func loadSession(w http.ResponseWriter, r *http.Request, id string) (models.OnboardingSession, bool) {
	var session models.OnboardingSession
	err := db.OnboardingCollection.FindOne(r.Context(), bson.M{"sessionid": id}).Decode(&session)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Onboarding session not found")
		return session, false
	}
	if session.Forms.Extra == nil {
		session.Forms.Extra = map[string]string{}
	}
	return session, true
}

func saveSession(w http.ResponseWriter, ctx context.Context, session models.OnboardingSession) bool {
	_, err := db.OnboardingCollection.ReplaceOne(ctx, bson.M{"sessionid": session.SessionID}, session)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save onboarding session")
		return false
	}
	return true
}

func mergeInput(session *models.OnboardingSession, input advanceInput) {
	if input.MemberType != "" {
		session.MemberType = input.MemberType
	}
	if input.Personas != nil {
		session.Personas = input.Personas
	}
	if input.ArtistType != "" {
		session.ArtistType = input.ArtistType
	}
	if input.Forms != nil {
		f := input.Forms
		if f.Account != (models.AccountForm{}) {
			session.Forms.Account = f.Account
		}
		if f.Profile != (models.ProfileForm{}) {
			session.Forms.Profile = f.Profile
		}
		if len(f.Music.GenreFamilies) > 0 || len(f.Music.MainGenres) > 0 || len(f.Music.SubGenres) > 0 {
			session.Forms.Music = f.Music
		}
		if f.Payment.Method != "" {
			session.Forms.Payment = f.Payment
		}
		if f.Media.ProfilePicture != "" || len(f.Media.Photos) > 0 || len(f.Media.Videos) > 0 {
			session.Forms.Media = f.Media
		}
		if f.ArtistSetup != (models.ArtistSetupForm{}) {
			session.Forms.ArtistSetup = f.ArtistSetup
		}
	}
	for k, v := range input.Extra {
		session.Forms.Extra[k] = v
	}
}
