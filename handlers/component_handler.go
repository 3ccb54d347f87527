// handlers/component_handler.go
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

func ListComponents(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := store.ComponentFilter{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
	}
	if deviceIDStr := r.URL.Query().Get("installedIn"); deviceIDStr != "" {
		deviceID, err := primitive.ObjectIDFromHex(deviceIDStr)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid installedIn id")
			return
		}
		filter.InstalledIn = &deviceID
	}

	components, err := stores.Components.List(ctx, filter)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, components)
}

func GetComponent(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid component id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	component, err := stores.Components.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, component)
}

func CreateComponent(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpCreate) {
		return
	}

	var component models.Component
	if err := utils.ParseJSON(r, &component); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	component.ID = primitive.NilObjectID
	component.AssignedTo = nil
	component.InstalledIn = nil
	if err := component.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := stores.Components.Insert(ctx, &component); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "component_create", "component", component.ID, bson.M{"name": component.Name})
	utils.RespondWithJSON(w, http.StatusCreated, component)
}

type UpdateComponentRequest struct {
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

func UpdateComponent(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid component id")
		return
	}

	var req UpdateComponentRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	component, err := stores.Components.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if component.Status == models.DeviceStatusDisposed && req.Status != nil && *req.Status != models.DeviceStatusDisposed {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "a disposed component cannot leave the disposed state"))
		return
	}

	if req.Name != nil {
		component.Name = *req.Name
	}
	if req.Type != nil {
		component.Type = *req.Type
	}
	if req.SubType != nil {
		component.SubType = *req.SubType
	}
	if req.Category != nil {
		component.Category = *req.Category
	}
	if req.SerialNumber != nil {
		component.SerialNumber = *req.SerialNumber
	}
	if req.Manufacturer != nil {
		component.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		component.Model = *req.Model
	}
	if req.PurchaseDate != nil {
		component.PurchaseDate = req.PurchaseDate
	}
	if req.WarrantyExpiryDate != nil {
		component.WarrantyExpiryDate = req.WarrantyExpiryDate
	}
	if req.Status != nil {
		component.Status = *req.Status
	}
	if req.Location != nil {
		component.Location = *req.Location
	}
	if req.Specs != nil {
		component.Specs = *req.Specs
	}
	if req.Notes != nil {
		component.Notes = *req.Notes
	}

	if err := component.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if err := stores.Components.Update(ctx, component); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "component_update", "component", component.ID, bson.M{"name": component.Name})
	utils.RespondWithJSON(w, http.StatusOK, component)
}

func DeleteComponent(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpDelete) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid component id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	component, err := stores.Components.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if component.IsHeld() {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "component is assigned or installed; release it before deleting"))
		return
	}
	if err := stores.Components.Delete(ctx, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "component_delete", "component", id, bson.M{"name": component.Name})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "component deleted"})
}
