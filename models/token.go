package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token is a persisted session token. A TTL index on createdAt purges
// documents 7 days after creation regardless of the JWT's own expiry.
type Token struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Token     string             `json:"token" bson:"token"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// TokenTTL is the storage lifetime of a session token.
const TokenTTL = 7 * 24 * time.Hour
