// models/employee.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
)

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
	EmployeeStatusOnLeave  = "on_leave"
)

type Employee struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	EmployeeID string              `bson:"employeeId" json:"employeeId"`
	Email      string              `bson:"email" json:"email"`
	Department string              `bson:"department,omitempty" json:"department,omitempty"`
	Position   string              `bson:"position,omitempty" json:"position,omitempty"`
	Phone      string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Status     string              `bson:"status" json:"status"`
	JoinDate   *time.Time          `bson:"joinDate,omitempty" json:"joinDate,omitempty"`
	LeaveDate  *time.Time          `bson:"leaveDate,omitempty" json:"leaveDate,omitempty"`
	Manager    *primitive.ObjectID `bson:"manager,omitempty" json:"manager,omitempty"`
	Notes      string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func ValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	}
	return false
}

func (e *Employee) Validate() error {
	if e.Name == "" {
		return apperr.New(apperr.KindValidation, "employee name is required")
	}
	if e.EmployeeID == "" {
		return apperr.New(apperr.KindValidation, "employeeId is required")
	}
	e.Email = strings.TrimSpace(strings.ToLower(e.Email))
	if e.Email == "" || !strings.Contains(e.Email, "@") {
		return apperr.New(apperr.KindValidation, "valid employee email is required")
	}
	if e.Status == "" {
		e.Status = EmployeeStatusActive
	}
	if !ValidEmployeeStatus(e.Status) {
		return apperr.Newf(apperr.KindValidation, "invalid employee status: %s", e.Status)
	}
	return nil
}
