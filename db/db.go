package db

import (
	"context"
	"log"
	"time"

	"labstock/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	LabCollection       *mongo.Collection
	ItemCollection      *mongo.Collection
	ComponentCollection *mongo.Collection
	TemplateCollection  *mongo.Collection
	LogCollection       *mongo.Collection
	TokenCollection     *mongo.Collection
	TrashCollection     *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	clientOptions := options.Client().ApplyURI(config.MongoURI)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("lab_inventory")
	UserCollection = database.Collection("users")
	LabCollection = database.Collection("labs")
	ItemCollection = database.Collection("items")
	ComponentCollection = database.Collection("components")
	TemplateCollection = database.Collection("templates")
	LogCollection = database.Collection("logs")
	TokenCollection = database.Collection("tokens")
	TrashCollection = database.Collection("trashes")
}

// EnsureIndexes creates the unique and TTL indexes the data model relies on:
// unique user email, unique template category, and the 7-day token expiry.
// Called once from main after the connection is up.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_address", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("users index: %v", err)
	}

	_, err = TemplateCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("templates index: %v", err)
	}

	_, err = TokenCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(7 * 24 * 60 * 60),
	})
	if err != nil {
		log.Printf("tokens ttl index: %v", err)
	}
}

// IsDup reports whether err is a Mongo duplicate-key error.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
