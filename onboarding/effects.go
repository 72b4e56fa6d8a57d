package onboarding

import (
	"context"
	"errors"
	"log"
	"time"

	"encore/auth"
	"encore/db"
	"encore/globals"
	"encore/models"
	"encore/mq"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// runStepEffect performs the step's persistence side effect before the
// index advances. Background profile saves are deliberately lenient: their
// failures are logged and never block the user. Account creation and the
// terminal steps (video finish, artist setup) do surface errors.
func runStepEffect(ctx context.Context, session *models.OnboardingSession, step string) error {
	switch step {
	case StepFanAccount:
		a := session.Forms.Account
		user, err := auth.CreateUserAccount(ctx, a.Username, a.Email, a.Password)
		if err != nil {
			return err
		}
		session.UserID = user.UserID
		session.AuthPending = true
		auth.IssueVerification(user)
		return nil

	case StepFanProfile:
		saveFanProfile(ctx, session, bson.M{
			"display_name": session.Forms.Profile.DisplayName,
			"bio":          session.Forms.Profile.Bio,
			"location":     session.Forms.Profile.Location,
		})
		return nil

	case StepFanMusic:
		saveFanProfile(ctx, session, bson.M{
			"genre_families": session.Forms.Music.GenreFamilies,
			"main_genres":    session.Forms.Music.MainGenres,
			"sub_genres":     session.Forms.Music.SubGenres,
		})
		return nil

	case StepFanPayment:
		saveFanProfile(ctx, session, bson.M{
			"payment_method": session.Forms.Payment.Method,
		})
		return nil

	case StepFanPicture:
		saveFanProfile(ctx, session, bson.M{
			"profile_picture": session.Forms.Media.ProfilePicture,
		})
		return nil

	case StepFanPhotos:
		saveFanProfile(ctx, session, bson.M{
			"photos": session.Forms.Media.Photos,
		})
		return nil

	case StepFanVideos:
		// Terminal for the fan flow: marks onboarding complete, so a
		// failure here is surfaced rather than swallowed.
		if session.UserID == "" {
			return errors.New("No account attached to this onboarding session")
		}
		update := bson.M{"$set": bson.M{
			"videos":              session.Forms.Media.Videos,
			"onboarding_complete": true,
			"updated_at":          time.Now().UTC(),
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := db.FanProfilesCollection.UpdateOne(ctx, bson.M{"userid": session.UserID}, update, opts); err != nil {
			return errors.New("Failed to complete onboarding")
		}
		go mq.Emit(globals.Ctx, "onboarding-complete", models.Index{
			EntityType: "fanprofile", EntityId: session.UserID, Method: "POST",
		})
		return nil

	case StepArtistSetup:
		if session.UserID == "" {
			return errors.New("No account attached to this onboarding session")
		}
		setup := session.Forms.ArtistSetup
		now := time.Now().UTC()
		update := bson.M{
			"$set": bson.M{
				"stage_name":  setup.StageName,
				"artist_type": session.ArtistType,
				"label":       setup.Label,
				"publisher":   setup.Publisher,
				"manager":     setup.Manager,
				"agent":       setup.Agent,
				"updated_at":  now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := db.ArtistsCollection.UpdateOne(ctx, bson.M{"userid": session.UserID}, update, opts); err != nil {
			return errors.New("Failed to create artist profile")
		}
		if _, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"userid": session.UserID},
			bson.M{"$addToSet": bson.M{"role": "artist"}},
		); err != nil {
			log.Printf("[onboarding] artist role grant failed for %s: %v", session.UserID, err)
		}
		go mq.Emit(globals.Ctx, "artist-profile-created", models.Index{
			EntityType: "artistprofile", EntityId: session.UserID, Method: "POST",
		})
		return nil
	}

	return nil
}

// saveFanProfile upserts a cumulative slice of the fan profile. Failures
// are logged only: the wizard never blocks the user on a background save.
func saveFanProfile(ctx context.Context, session *models.OnboardingSession, fields bson.M) {
	if session.UserID == "" {
		log.Printf("[onboarding] skipping profile save for %s: no account yet", session.SessionID)
		return
	}
	fields["updated_at"] = time.Now().UTC()
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := db.FanProfilesCollection.UpdateOne(ctx, bson.M{"userid": session.UserID}, update, opts); err != nil {
		log.Printf("[onboarding] background save failed on %s: %v", session.SessionID, err)
	}
}
