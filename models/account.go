// models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
)

const (
	AccountStatusActive   = "active"
	AccountStatusInactive = "inactive"
	AccountStatusExpired  = "expired"

	AssignmentStatusAvailable = "available"
	AssignmentStatusAssigned  = "assigned"

	SecurityLevelLow    = "low"
	SecurityLevelMedium = "medium"
	SecurityLevelHigh   = "high"
)

// Account is a system credential record (VPN, cloud, source control...).
// Secrets carry `json:"-"` so no read path can leak them; they are persisted
// in bson only.
type Account struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Type         string              `bson:"type" json:"type"`
	SubType      string              `bson:"subType,omitempty" json:"subType,omitempty"`
	Category     string              `bson:"category,omitempty" json:"category,omitempty"`
	Username     string              `bson:"username" json:"username"`
	Password     string              `bson:"password,omitempty" json:"-"`
	APIKey       string              `bson:"apiKey,omitempty" json:"-"`
	AccessToken  string              `bson:"accessToken,omitempty" json:"-"`
	RefreshToken string              `bson:"refreshToken,omitempty" json:"-"`
	URL          string              `bson:"url,omitempty" json:"url,omitempty"`
	ExpiryDate   *time.Time          `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	AssignedTo   *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Status       string              `bson:"status" json:"status"`
	// AssignmentStatus is derived from AssignedTo; Normalize recomputes it on
	// every write path so it can never drift.
	AssignmentStatus string    `bson:"assignmentStatus" json:"assignmentStatus"`
	SecurityLevel    string    `bson:"securityLevel,omitempty" json:"securityLevel,omitempty"`
	Organization     string    `bson:"organization,omitempty" json:"organization,omitempty"`
	Department       string    `bson:"department,omitempty" json:"department,omitempty"`
	ProjectID        string    `bson:"projectId,omitempty" json:"projectId,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

func ValidAccountStatus(s string) bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusExpired:
		return true
	}
	return false
}

func ValidSecurityLevel(s string) bool {
	switch s {
	case "", SecurityLevelLow, SecurityLevelMedium, SecurityLevelHigh:
		return true
	}
	return false
}

// Normalize recomputes derived fields. Both store implementations call it
// before every insert and update.
func (a *Account) Normalize() {
	if a.AssignedTo != nil {
		a.AssignmentStatus = AssignmentStatusAssigned
	} else {
		a.AssignmentStatus = AssignmentStatusAvailable
	}
	if a.Status == "" {
		a.Status = AccountStatusActive
	}
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return apperr.New(apperr.KindValidation, "account name is required")
	}
	if a.Type == "" {
		return apperr.New(apperr.KindValidation, "account type is required")
	}
	if a.Username == "" {
		return apperr.New(apperr.KindValidation, "account username is required")
	}
	a.Normalize()
	if !ValidAccountStatus(a.Status) {
		return apperr.Newf(apperr.KindValidation, "invalid account status: %s", a.Status)
	}
	if !ValidSecurityLevel(a.SecurityLevel) {
		return apperr.Newf(apperr.KindValidation, "invalid security level: %s", a.SecurityLevel)
	}
	return nil
}

func (a *Account) IsAssigned() bool { return a.AssignedTo != nil }
