package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleUser  = "user"
)

type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	EmailAddress string               `json:"email_address" bson:"email_address"`
	Password     string               `json:"-" bson:"password"`
	Terms        bool                 `json:"terms" bson:"terms"`
	Phone        string               `json:"phone,omitempty" bson:"phone,omitempty"`
	Address      string               `json:"address,omitempty" bson:"address,omitempty"`
	Role         string               `json:"role" bson:"role"`
	Disabled     bool                 `json:"disabled" bson:"disabled"`
	Labs         []primitive.ObjectID `json:"labs" bson:"labs"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the slim shape returned by lookup and search endpoints.
type UserSummary struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	EmailAddress string             `json:"email_address,omitempty" bson:"email_address,omitempty"`
	Role         string             `json:"role" bson:"role"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
func (u *User) IsStaff() bool { return u.Role == RoleStaff }

// InLab reports whether the given lab is in the user's lab set.
func (u *User) InLab(labID primitive.ObjectID) bool {
	for _, id := range u.Labs {
		if id == labID {
			return true
		}
	}
	return false
}
