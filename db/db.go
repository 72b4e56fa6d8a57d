package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	FanProfilesCollection   *mongo.Collection
	ArtistsCollection       *mongo.Collection
	InvitesCollection       *mongo.Collection
	ActiveMembersCollection *mongo.Collection
	GigsCollection          *mongo.Collection
	FanCommsCollection      *mongo.Collection
	ReleasesCollection      *mongo.Collection
	ModerationCollection    *mongo.Collection
	BansCollection          *mongo.Collection
	GenresCollection        *mongo.Collection
	OnboardingCollection    *mongo.Collection
	TicketsCollection       *mongo.Collection
	PurchasedCollection     *mongo.Collection
	FollowersCollection     *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "encoredb"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(dbName)
	UserCollection = database.Collection("users")
	FanProfilesCollection = database.Collection("fanprofiles")
	ArtistsCollection = database.Collection("artists")
	InvitesCollection = database.Collection("memberinvites")
	ActiveMembersCollection = database.Collection("activemembers")
	GigsCollection = database.Collection("gigs")
	FanCommsCollection = database.Collection("fancomms")
	ReleasesCollection = database.Collection("releases")
	ModerationCollection = database.Collection("moderationactions")
	BansCollection = database.Collection("userbans")
	GenresCollection = database.Collection("genres")
	OnboardingCollection = database.Collection("onboarding")
	TicketsCollection = database.Collection("ticks")
	PurchasedCollection = database.Collection("purticks")
	FollowersCollection = database.Collection("followers")
}
