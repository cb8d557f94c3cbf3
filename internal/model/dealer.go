package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Dealer roles.
const (
	RoleDealer = "dealer"
	RoleAdmin  = "admin"
)

// Dealer is a registered wholesale buyer. Tier is the lettered price level
// (A–F) that selects which wholesale price the dealer sees.
type Dealer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Tier         string             `bson:"tier" json:"tier"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
}
