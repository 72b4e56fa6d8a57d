package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"encore/db"
	"encore/globals"
	"encore/mailer"
	"encore/middleware"
	"encore/models"
	"encore/mq"
	"encore/rdx"
	"encore/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 15 * time.Minute
)

// Mail is the outbound sender used for verification mail. Swapped for a
// recorder in tests.
var Mail mailer.Sender = mailer.SMTPSender{Cfg: mailer.ConfigFromEnv()}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Username == "" || input.Password == "" || input.Email == "" {
		sendError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !utils.IsValidEmail(input.Email) {
		sendError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		sendError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}
	if !utils.IsStrongPassword(input.Password) {
		sendError(w, http.StatusBadRequest, "Password must be at least 9 characters with an uppercase letter, a digit, and a special character")
		return
	}

	user, err := CreateUserAccount(context.TODO(), input.Username, input.Email, input.Password)
	if err == ErrUserExists {
		sendError(w, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		log.Printf("Registration failed: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	// The wizard resumes from the link in this mail.
	IssueVerification(user)

	go mq.Emit(globals.Ctx, "user-registered", models.Index{
		EntityType: "user", EntityId: user.UserID, Method: "POST",
	})

	utils.SendResponse(w, http.StatusCreated, map[string]string{
		"userid":               user.UserID,
		"verification_pending": "true",
	}, "Registration successful", nil)
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Email == "" || input.Password == "" {
		sendError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"email": input.Email}).Decode(&storedUser)
	if err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.PasswordHash), []byte(input.Password)); err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken := generateOpaqueToken()
	hashedRefresh := hashToken(refreshToken)

	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": storedUser.UserID},
		bson.M{
			"$set": bson.M{
				"refreshtoken": hashedRefresh,
				"refreshexp":   time.Now().Add(refreshTokenTTL),
				"last_login":   time.Now(),
			},
		},
	)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.UserID,
	}, "Login successful", nil)
}

func LogoutUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tokenString := getBearerToken(r)
	if tokenString == "" {
		sendError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if _, err := rdx.RdxHdel("tokki", claims.UserID); err != nil {
		log.Printf("Redis token remove failed: %v", err)
		sendError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "User logged out", nil)
}

func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.UserID == "" || input.RefreshToken == "" {
		sendError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": input.UserID}).Decode(&storedUser)
	if err != nil {
		sendError(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	if storedUser.RefreshToken != hashToken(input.RefreshToken) || time.Now().After(storedUser.RefreshExpiry) {
		sendError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	newToken, err := generateAccessToken(storedUser)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	_ = rdx.RdxHset("tokki", storedUser.UserID, newToken)

	utils.SendResponse(w, http.StatusOK, map[string]string{"token": newToken}, "Token refreshed", nil)
}

// VerifyEmail exchanges the one-time token from the verification mail. The
// token is deleted on first use; the onboarding resume endpoint performs the
// same exchange when the user returns mid-wizard.
func VerifyEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		sendError(w, http.StatusBadRequest, "Missing token")
		return
	}

	userID, err := ConsumeVerificationToken(input.Token)
	if err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid or expired verification token")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"userid": userID}, "Email verified", nil)
}

// ConsumeVerificationToken validates a one-time token, marks the user's
// email verified, and deletes the token.
func ConsumeVerificationToken(token string) (string, error) {
	userID, err := rdx.RdxGet("verify:" + token)
	if err != nil || userID == "" {
		return "", errors.New("invalid token")
	}

	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"email_verified": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return "", err
	}

	_ = rdx.RdxDel("verify:" + token)
	return userID, nil
}

func generateAccessToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateOpaqueToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is unrecoverable for token issuance
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func getBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

func sendError(w http.ResponseWriter, code int, msg string) {
	utils.SendResponse(w, code, nil, msg, errors.New(msg))
}
