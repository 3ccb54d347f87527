// handlers/handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/authz"
	"github.com/dangtoan2205/asset-manager-sub000/middleware"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/service"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
	"github.com/dangtoan2205/asset-manager-sub000/websocket"
)

var (
	stores      store.Stores
	assignments *service.AssignmentService
	invoiceSvc  *service.InvoiceService
	reports     *service.ReportingService
)

// Init wires the handler package against a store set. Called once at startup
// and by tests.
func Init(s store.Stores) {
	stores = s
	assignments = service.NewAssignmentService(s)
	invoiceSvc = service.NewInvoiceService(s)
	reports = service.NewReportingService(s)
}

func callerID(r *http.Request) (primitive.ObjectID, bool) {
	idStr, ok := r.Context().Value(middleware.CtxUserID).(string)
	if !ok || idStr == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func callerRole(r *http.Request) string {
	role, _ := r.Context().Value(middleware.CtxUserRole).(string)
	return role
}

// require enforces the authorization gate before any business validation:
// missing session → 401, wrong role → 403. Returns false after writing the
// response.
func require(w http.ResponseWriter, r *http.Request, op authz.Op) bool {
	if err := authz.Require(callerRole(r), op); err != nil {
		utils.RespondWithAppError(w, err)
		return false
	}
	return true
}

func pathID(r *http.Request, key string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)[key])
}

// writeAudit records the mutation and pushes it to websocket subscribers.
// Audit failures are logged, never surfaced to the caller.
func writeAudit(ctx context.Context, r *http.Request, action, entityType string, entityID primitive.ObjectID, details bson.M) {
	uid, _ := callerID(r)
	entry := &models.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := stores.Audit.Insert(ctx, entry); err != nil {
		log.Printf("audit insert failed for %s: %v", action, err)
		return
	}
	websocket.BroadcastAudit(entry)
}
