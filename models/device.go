// models/device.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
)

// Device status values. Disposed is terminal.
const (
	DeviceStatusInUse       = "in_use"
	DeviceStatusAvailable   = "available"
	DeviceStatusUnderRepair = "under_repair"
	DeviceStatusDisposed    = "disposed"
)

type MaintenanceRecord struct {
	Date        time.Time `bson:"date" json:"date"`
	Description string    `bson:"description" json:"description"`
	Technician  string    `bson:"technician,omitempty" json:"technician,omitempty"`
}

type Device struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name                string              `bson:"name" json:"name"`
	Type                string              `bson:"type" json:"type"`
	SubType             string              `bson:"subType,omitempty" json:"subType,omitempty"`
	Category            string              `bson:"category,omitempty" json:"category,omitempty"`
	SerialNumber        string              `bson:"serialNumber" json:"serialNumber"`
	Manufacturer        string              `bson:"manufacturer" json:"manufacturer"`
	Model               string              `bson:"model,omitempty" json:"model,omitempty"`
	PurchaseDate        *time.Time          `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	WarrantyExpiryDate  *time.Time          `bson:"warrantyExpiryDate,omitempty" json:"warrantyExpiryDate,omitempty"`
	Status              string              `bson:"status" json:"status"`
	Location            string              `bson:"location,omitempty" json:"location,omitempty"`
	AssignedTo          *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Specs               map[string]string   `bson:"specs,omitempty" json:"specs,omitempty"`
	Notes               string              `bson:"notes,omitempty" json:"notes,omitempty"`
	MaintenanceHistory  []MaintenanceRecord `bson:"maintenanceHistory,omitempty" json:"maintenanceHistory,omitempty"`
	LastMaintenanceDate *time.Time          `bson:"lastMaintenanceDate,omitempty" json:"lastMaintenanceDate,omitempty"`
	NextMaintenanceDate *time.Time          `bson:"nextMaintenanceDate,omitempty" json:"nextMaintenanceDate,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func ValidDeviceStatus(s string) bool {
	switch s {
	case DeviceStatusInUse, DeviceStatusAvailable, DeviceStatusUnderRepair, DeviceStatusDisposed:
		return true
	}
	return false
}

func (d *Device) Validate() error {
	if d.Name == "" {
		return apperr.New(apperr.KindValidation, "device name is required")
	}
	if d.SerialNumber == "" {
		return apperr.New(apperr.KindValidation, "device serialNumber is required")
	}
	if d.Manufacturer == "" {
		return apperr.New(apperr.KindValidation, "device manufacturer is required")
	}
	if d.Status == "" {
		d.Status = DeviceStatusAvailable
	}
	if !ValidDeviceStatus(d.Status) {
		return apperr.Newf(apperr.KindValidation, "invalid device status: %s", d.Status)
	}
	return nil
}

func (d *Device) IsAssigned() bool { return d.AssignedTo != nil }
