// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"

	ProviderCredentials      = "credentials"
	ProviderExternalIdentity = "external-identity"
)

// User is an authenticating principal, distinct from Employee. PasswordHash
// is empty for externally-authenticated users.
type User struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name              string              `bson:"name" json:"name"`
	Email             string              `bson:"email" json:"email"`
	PasswordHash      string              `bson:"passwordHash,omitempty" json:"-"`
	Role              string              `bson:"role" json:"role"`
	Employee          *primitive.ObjectID `bson:"employee,omitempty" json:"employee,omitempty"`
	IsActive          bool                `bson:"isActive" json:"isActive"`
	LastLogin         *time.Time          `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Provider          string              `bson:"provider" json:"provider"`
	ProviderAccountID string              `bson:"providerAccountId,omitempty" json:"providerAccountId,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}
