// handlers/device_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/authz"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

func ListDevices(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := store.DeviceFilter{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
	}
	devices, err := stores.Devices.List(ctx, filter)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, devices)
}

func GetDevice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	device, err := stores.Devices.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, device)
}

func CreateDevice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpCreate) {
		return
	}

	var device models.Device
	if err := utils.ParseJSON(r, &device); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	device.ID = primitive.NilObjectID
	device.AssignedTo = nil
	if err := device.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := stores.Devices.Insert(ctx, &device); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "device_create", "device", device.ID, bson.M{
		"name":         device.Name,
		"serialNumber": device.SerialNumber,
	})
	utils.RespondWithJSON(w, http.StatusCreated, device)
}

type UpdateDeviceRequest struct {
	Name               *string            `json:"name,omitempty"`
	Type               *string            `json:"type,omitempty"`
	SubType            *string            `json:"subType,omitempty"`
	Category           *string            `json:"category,omitempty"`
	SerialNumber       *string            `json:"serialNumber,omitempty"`
	Manufacturer       *string            `json:"manufacturer,omitempty"`
	Model              *string            `json:"model,omitempty"`
	PurchaseDate       *time.Time         `json:"purchaseDate,omitempty"`
	WarrantyExpiryDate *time.Time         `json:"warrantyExpiryDate,omitempty"`
	Status             *string            `json:"status,omitempty"`
	Location           *string            `json:"location,omitempty"`
	Specs              *map[string]string `json:"specs,omitempty"`
	Notes              *string            `json:"notes,omitempty"`
}

func UpdateDevice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	var req UpdateDeviceRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	device, err := stores.Devices.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	// Disposed is terminal.
	if device.Status == models.DeviceStatusDisposed && req.Status != nil && *req.Status != models.DeviceStatusDisposed {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "a disposed device cannot leave the disposed state"))
		return
	}

	if req.Name != nil {
		device.Name = *req.Name
	}
	if req.Type != nil {
		device.Type = *req.Type
	}
	if req.SubType != nil {
		device.SubType = *req.SubType
	}
	if req.Category != nil {
		device.Category = *req.Category
	}
	if req.SerialNumber != nil {
		device.SerialNumber = *req.SerialNumber
	}
	if req.Manufacturer != nil {
		device.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		device.Model = *req.Model
	}
	if req.PurchaseDate != nil {
		device.PurchaseDate = req.PurchaseDate
	}
	if req.WarrantyExpiryDate != nil {
		device.WarrantyExpiryDate = req.WarrantyExpiryDate
	}
	if req.Status != nil {
		device.Status = *req.Status
	}
	if req.Location != nil {
		device.Location = *req.Location
	}
	if req.Specs != nil {
		device.Specs = *req.Specs
	}
	if req.Notes != nil {
		device.Notes = *req.Notes
	}

	if err := device.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if err := stores.Devices.Update(ctx, device); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "device_update", "device", device.ID, bson.M{"name": device.Name})
	utils.RespondWithJSON(w, http.StatusOK, device)
}

func DeleteDevice(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpDelete) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	device, err := stores.Devices.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if device.AssignedTo != nil {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "device is assigned; unassign it before deleting"))
		return
	}
	if err := stores.Devices.Delete(ctx, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "device_delete", "device", id, bson.M{"serialNumber": device.SerialNumber})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "device deleted"})
}

type MaintenanceRequest struct {
	Date                *time.Time `json:"date,omitempty"`
	Description         string     `json:"description"`
	Technician          string     `json:"technician,omitempty"`
	NextMaintenanceDate *time.Time `json:"nextMaintenanceDate,omitempty"`
}

// AddDeviceMaintenance appends a maintenance record and rolls the
// last/next maintenance dates forward.
func AddDeviceMaintenance(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	var req MaintenanceRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Description == "" {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "maintenance description is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	device, err := stores.Devices.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}
	device.MaintenanceHistory = append(device.MaintenanceHistory, models.MaintenanceRecord{
		Date:        date,
		Description: req.Description,
		Technician:  req.Technician,
	})
	device.LastMaintenanceDate = &date
	if req.NextMaintenanceDate != nil {
		device.NextMaintenanceDate = req.NextMaintenanceDate
	}

	if err := stores.Devices.Update(ctx, device); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "device_maintenance", "device", device.ID, bson.M{"description": req.Description})
	utils.RespondWithJSON(w, http.StatusOK, device)
}
