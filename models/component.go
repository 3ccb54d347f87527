// models/component.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
)

// Component mirrors Device but the serial number is optional and a component
// may alternatively be installed inside a device. A component is held by
// either an employee (AssignedTo) or a device (InstalledIn), never both.
type Component struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name                string              `bson:"name" json:"name"`
	Type                string              `bson:"type" json:"type"`
	SubType             string              `bson:"subType,omitempty" json:"subType,omitempty"`
	Category            string              `bson:"category,omitempty" json:"category,omitempty"`
	SerialNumber        string              `bson:"serialNumber,omitempty" json:"serialNumber,omitempty"`
	Manufacturer        string              `bson:"manufacturer" json:"manufacturer"`
	Model               string              `bson:"model,omitempty" json:"model,omitempty"`
	PurchaseDate        *time.Time          `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	WarrantyExpiryDate  *time.Time          `bson:"warrantyExpiryDate,omitempty" json:"warrantyExpiryDate,omitempty"`
	Status              string              `bson:"status" json:"status"`
	Location            string              `bson:"location,omitempty" json:"location,omitempty"`
	AssignedTo          *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	InstalledIn         *primitive.ObjectID `bson:"installedIn,omitempty" json:"installedIn,omitempty"`
	Specs               map[string]string   `bson:"specs,omitempty" json:"specs,omitempty"`
	Notes               string              `bson:"notes,omitempty" json:"notes,omitempty"`
	MaintenanceHistory  []MaintenanceRecord `bson:"maintenanceHistory,omitempty" json:"maintenanceHistory,omitempty"`
	LastMaintenanceDate *time.Time          `bson:"lastMaintenanceDate,omitempty" json:"lastMaintenanceDate,omitempty"`
	NextMaintenanceDate *time.Time          `bson:"nextMaintenanceDate,omitempty" json:"nextMaintenanceDate,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (c *Component) Validate() error {
	if c.Name == "" {
		return apperr.New(apperr.KindValidation, "component name is required")
	}
	if c.Manufacturer == "" {
		return apperr.New(apperr.KindValidation, "component manufacturer is required")
	}
	if c.Status == "" {
		c.Status = DeviceStatusAvailable
	}
	if !ValidDeviceStatus(c.Status) {
		return apperr.Newf(apperr.KindValidation, "invalid component status: %s", c.Status)
	}
	if c.AssignedTo != nil && c.InstalledIn != nil {
		return apperr.New(apperr.KindConflictingAssignment,
			"component cannot be assigned to an employee and installed in a device at the same time")
	}
	return nil
}

func (c *Component) IsHeld() bool { return c.AssignedTo != nil || c.InstalledIn != nil }
