package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Lab struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name       string               `json:"name" bson:"name"`
	Type       string               `json:"type" bson:"type"`
	Dept       string               `json:"dept" bson:"dept"`
	Admins     []primitive.ObjectID `json:"admins" bson:"admins"`
	Staffs     []primitive.ObjectID `json:"staffs" bson:"staffs"`
	Items      []primitive.ObjectID `json:"items" bson:"items"`
	Components []primitive.ObjectID `json:"components" bson:"components"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// LabSummary is the slim shape for single-lab lookups.
type LabSummary struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
	Type string             `json:"type" bson:"type"`
	Dept string             `json:"dept" bson:"dept"`
}

// Trash is a singleton holding container for soft-deleted references.
type Trash struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name       string               `json:"name" bson:"name"`
	Type       string               `json:"type" bson:"type"`
	Dept       string               `json:"dept" bson:"dept"`
	Items      []primitive.ObjectID `json:"items" bson:"items"`
	Components []primitive.ObjectID `json:"components" bson:"components"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}
