package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log operations
const (
	OpBroken           = "broken"
	OpRepaired         = "repaired"
	OpReplaced         = "replaced"
	OpTransferred      = "transferred"
	OpUnderMaintenance = "under_maintenance"
	OpWorking          = "working"
	OpMoved            = "moved"
)

// Log scopes
const (
	ScopeWhole     = "whole"
	ScopePartial   = "partial"
	ScopeComponent = "component"
)

// Log is the single audit record for state changes and move operations.
// The target is a tagged reference: ItemID plus ItemType ("item" or
// "component"). Move records additionally fill the moveFrom/moveTo fields.
type Log struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ItemID    primitive.ObjectID `json:"itemId,omitempty" bson:"itemId,omitempty"`
	ItemType  string             `json:"itemType,omitempty" bson:"itemType,omitempty"`
	Scope     string             `json:"type,omitempty" bson:"type,omitempty"`
	Operation string             `json:"operation" bson:"operation"`
	Message   string             `json:"message,omitempty" bson:"message,omitempty"`
	UserID    primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`

	MoveFrom   string             `json:"moveFrom,omitempty" bson:"moveFrom,omitempty"`
	MoveFromID primitive.ObjectID `json:"moveFromId,omitempty" bson:"moveFromId,omitempty"`
	MoveTo     string             `json:"moveTo,omitempty" bson:"moveTo,omitempty"`
	MoveToID   primitive.ObjectID `json:"moveToId,omitempty" bson:"moveToId,omitempty"`
	MovedIDs   []string           `json:"movedIds,omitempty" bson:"movedIds,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
