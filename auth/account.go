package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"encore/db"
	"encore/mailer"
	"encore/models"
	"encore/rdx"
	"encore/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var ErrUserExists = errors.New("user already exists")

// CreateUserAccount inserts a new unverified user with a bcrypt-hashed
// password. Shared between the register endpoint and the sign-up wizard's
// account-basics step.
func CreateUserAccount(ctx context.Context, username, email, password string) (models.User, error) {
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return models.User{}, ErrUserExists
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		UserID:        "u" + utils.GenerateRandomString(10),
		Username:      username,
		Email:         email,
		PasswordHash:  string(hashed),
		EmailVerified: false,
		Role:          []string{"fan"},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// IssueVerification stores a one-time 24h verification token and mails the
// verification link. A mail failure is logged, not returned; the token can
// be re-requested.
func IssueVerification(user models.User) {
	token := generateOpaqueToken()
	if err := rdx.RdxSetTTL("verify:"+token, user.UserID, 24*time.Hour); err != nil {
		log.Printf("Redis verify token store failed: %v", err)
	}
	cfg := mailer.ConfigFromEnv()
	if err := Mail.Send(user.Email, "Verify your email", mailer.VerificationBody(cfg.AppURL, token)); err != nil {
		log.Printf("Verification mail failed for %s: %v", user.Email, err)
	}
}
