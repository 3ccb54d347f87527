// handlers/assignment_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/authz"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

type AssignmentRequest struct {
	EmployeeID primitive.ObjectID `json:"employeeId"`
	AssetType  string             `json:"assetType"`
	AssetID    primitive.ObjectID `json:"assetId"`
}

// AssignAsset binds a device, component, or account to an employee.
func AssignAsset(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}

	var req AssignmentRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.EmployeeID.IsZero() || req.AssetID.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "employeeId and assetId are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	asset, err := assignments.Assign(ctx, req.EmployeeID, req.AssetType, req.AssetID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "asset_assign", req.AssetType, req.AssetID, bson.M{
		"employeeId": req.EmployeeID.Hex(),
	})
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

// UnassignAsset releases an asset currently held by the named employee.
func UnassignAsset(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}

	var req AssignmentRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.EmployeeID.IsZero() || req.AssetID.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "employeeId and assetId are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	asset, err := assignments.Unassign(ctx, req.AssetType, req.AssetID, req.EmployeeID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "asset_unassign", req.AssetType, req.AssetID, bson.M{
		"employeeId": req.EmployeeID.Hex(),
	})
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

type InstallRequest struct {
	DeviceID primitive.ObjectID `json:"deviceId"`
}

// InstallComponent puts the component inside a device.
func InstallComponent(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	componentID, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid component id")
		return
	}

	var req InstallRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.DeviceID.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "deviceId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	component, err := assignments.Install(ctx, componentID, req.DeviceID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "component_install", "component", componentID, bson.M{
		"deviceId": req.DeviceID.Hex(),
	})
	utils.RespondWithJSON(w, http.StatusOK, component)
}

// UninstallComponent removes the component from the device it is installed in.
func UninstallComponent(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	componentID, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid component id")
		return
	}

	var req InstallRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.DeviceID.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "deviceId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	component, err := assignments.Uninstall(ctx, componentID, req.DeviceID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "component_uninstall", "component", componentID, bson.M{
		"deviceId": req.DeviceID.Hex(),
	})
	utils.RespondWithJSON(w, http.StatusOK, component)
}
