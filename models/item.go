package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lifecycle states. Items may carry the full operation history states;
// components only track the working/broken/maintenance triple.
const (
	StateWorking          = "working"
	StateBroken           = "broken"
	StateUnderMaintenance = "under_maintenance"
	StateRepaired         = "repaired"
	StateReplaced         = "replaced"
	StateTransferred      = "transferred"
)

type Item struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name"`
	Category      string               `json:"category" bson:"category"`
	TemplateID    *primitive.ObjectID  `json:"templateId,omitempty" bson:"templateId,omitempty"`
	ComponentList []primitive.ObjectID `json:"componentList" bson:"componentList"`
	DeviceList    []primitive.ObjectID `json:"deviceList" bson:"deviceList"`
	CurrentState  string               `json:"currentState" bson:"currentState"`
	CreatedBy     primitive.ObjectID   `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	LabID         primitive.ObjectID   `json:"labId,omitempty" bson:"labId,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ItemSummary is the slim shape for single-item lookups.
type ItemSummary struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Category     string             `json:"category" bson:"category"`
	CurrentState string             `json:"currentState" bson:"currentState"`
}

// Component data types
const (
	DataTypeText        = "text"
	DataTypeNumber      = "number"
	DataTypeDescription = "description"
)

type Component struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Key          string             `json:"key" bson:"key"`
	Value        string             `json:"value" bson:"value"`
	Category     string             `json:"category" bson:"category"`
	DataType     string             `json:"dataType" bson:"dataType"`
	CurrentState string             `json:"currentState" bson:"currentState"`
	CreatedBy    primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ComponentSummary is the slim shape for single-component lookups.
type ComponentSummary struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Key          string             `json:"key" bson:"key"`
	Value        string             `json:"value" bson:"value"`
	Category     string             `json:"category" bson:"category"`
	CurrentState string             `json:"currentState" bson:"currentState"`
}

func ValidDataType(dt string) bool {
	switch dt {
	case DataTypeText, DataTypeNumber, DataTypeDescription:
		return true
	}
	return false
}
