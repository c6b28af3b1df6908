package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template field kinds
const (
	FieldComponent = "component"
	FieldDevice    = "device"
	FieldData      = "data"
)

// TemplateField is one entry of a template's data model. The Type tag
// decides which of the remaining fields are meaningful: component fields
// carry key/value/dataType, device fields carry name/category, data fields
// carry key/value only.
type TemplateField struct {
	Type     string `json:"type" bson:"type"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Key      string `json:"key,omitempty" bson:"key,omitempty"`
	Value    string `json:"value,omitempty" bson:"value,omitempty"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
	DataType string `json:"dataType,omitempty" bson:"dataType,omitempty"`
}

// Validate checks a field against its declared type tag.
func (f TemplateField) Validate() error {
	switch f.Type {
	case FieldComponent:
		if f.Name == "" || f.Key == "" {
			return fmt.Errorf("component field requires name and key")
		}
		if f.DataType != "" && !ValidDataType(f.DataType) {
			return fmt.Errorf("invalid dataType %q", f.DataType)
		}
	case FieldDevice:
		if f.Name == "" {
			return fmt.Errorf("device field requires name")
		}
	case FieldData:
		if f.Key == "" {
			return fmt.Errorf("data field requires key")
		}
	default:
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	return nil
}

type Template struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Category  string             `json:"category" bson:"category"`
	CreatedBy primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	DataModel []TemplateField    `json:"dataModel" bson:"dataModel"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
