// handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	trequire "github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/config"
	"github.com/dangtoan2205/asset-manager-sub000/middleware"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/service"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/store/memstore"
)

func init() {
	config.JWTKey = []byte("test-signing-key")
	config.JWTExpiration = time.Hour
}

// doRequest invokes a handler with an authenticated context, bypassing the
// auth middleware the same way it would have populated the request.
func doRequest(t *testing.T, h http.HandlerFunc, method, target string, body interface{}, role string, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		trequire.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)

	ctx := req.Context()
	if role != "" {
		ctx = context.WithValue(ctx, middleware.CtxUserID, primitive.NewObjectID().Hex())
		ctx = context.WithValue(ctx, middleware.CtxUserRole, role)
	}
	req = req.WithContext(ctx)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func newTestStores(t *testing.T) store.Stores {
	t.Helper()
	s := memstore.New()
	Init(s)
	return s
}

func validDeviceBody() map[string]interface{} {
	return map[string]interface{}{
		"name":         "ThinkPad T14",
		"type":         "laptop",
		"serialNumber": "SN-H-001",
		"manufacturer": "Lenovo",
	}
}

func TestCreateDeviceAuthorizationGate(t *testing.T) {
	newTestStores(t)

	// No session at all: 401
	rec := doRequest(t, CreateDevice, "POST", "/api/devices", validDeviceBody(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Plain user: 403 even with a valid payload
	rec = doRequest(t, CreateDevice, "POST", "/api/devices", validDeviceBody(), models.RoleUser, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Manager: allowed
	rec = doRequest(t, CreateDevice, "POST", "/api/devices", validDeviceBody(), models.RoleManager, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthorizationBeforeValidation(t *testing.T) {
	newTestStores(t)

	// Broken payload still yields 403 for a user, not 400
	rec := doRequest(t, CreateDevice, "POST", "/api/devices", map[string]interface{}{}, models.RoleUser, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Same payload as manager surfaces the validation failure
	rec = doRequest(t, CreateDevice, "POST", "/api/devices", map[string]interface{}{}, models.RoleManager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteInvoiceAdminOnly(t *testing.T) {
	s := newTestStores(t)

	inv := &models.Invoice{
		InvoiceNumber: "INV-H-001",
		Vendor:        "TechSupply Co",
		TotalAmount:   100,
		Status:        models.InvoiceStatusPending,
		Items:         []models.InvoiceItem{{Type: models.ItemTypeDevice, Name: "Mouse", Quantity: 1, UnitPrice: 100}},
	}
	trequire.NoError(t, s.Invoices.Insert(context.Background(), inv))
	vars := map[string]string{"id": inv.ID.Hex()}

	rec := doRequest(t, DeleteInvoice, "DELETE", "/api/invoices/"+inv.ID.Hex(), nil, models.RoleManager, vars)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, DeleteInvoice, "DELETE", "/api/invoices/"+inv.ID.Hex(), nil, models.RoleAdmin, vars)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAccountRedactsSecrets(t *testing.T) {
	newTestStores(t)

	body := map[string]interface{}{
		"name":     "prod-vpn",
		"type":     "vpn",
		"username": "svc-user",
		"password": "hunter2-plaintext",
		"apiKey":   "ak-secret-value",
	}
	rec := doRequest(t, CreateAccount, "POST", "/api/accounts", body, models.RoleAdmin, nil)
	trequire.Equal(t, http.StatusCreated, rec.Code)

	out := rec.Body.String()
	assert.NotContains(t, out, "hunter2-plaintext")
	assert.NotContains(t, out, "ak-secret-value")
	assert.Contains(t, out, "svc-user")
}

func TestProcessInvoiceItemEndpoint(t *testing.T) {
	s := newTestStores(t)

	svc := service.NewInvoiceService(s)
	purchase := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	inv, err := svc.Create(context.Background(), service.CreateInvoiceInput{
		InvoiceNumber: "INV-H-002",
		Vendor:        "TechSupply Co",
		PurchaseDate:  &purchase,
		TotalAmount:   1500,
		Items:         []models.InvoiceItem{{Type: models.ItemTypeDevice, Name: "ThinkPad", Quantity: 1, UnitPrice: 1500}},
	}, primitive.NewObjectID())
	trequire.NoError(t, err)

	vars := map[string]string{"id": inv.ID.Hex(), "index": "0"}
	body := map[string]interface{}{"manufacturer": "Lenovo", "serialNumber": "SN-H-100"}

	rec := doRequest(t, ProcessInvoiceItem, "POST", "/api/invoices/x/items/0/process", body, models.RoleManager, vars)
	trequire.Equal(t, http.StatusOK, rec.Code)

	// Replay: the second call is rejected and no second asset exists
	rec = doRequest(t, ProcessInvoiceItem, "POST", "/api/invoices/x/items/0/process", body, models.RoleManager, vars)
	assert.Equal(t, http.StatusConflict, rec.Code)

	devices, err := s.Devices.List(context.Background(), store.DeviceFilter{})
	trequire.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestDeleteAssignedDeviceBlocked(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	emp := &models.Employee{Name: "alice", EmployeeID: "EMP-1", Email: "alice@example.com", Status: models.EmployeeStatusActive}
	trequire.NoError(t, s.Employees.Insert(ctx, emp))
	dev := &models.Device{Name: "Laptop", SerialNumber: "SN-H-200", Manufacturer: "Dell", Status: models.DeviceStatusInUse, AssignedTo: &emp.ID}
	trequire.NoError(t, s.Devices.Insert(ctx, dev))

	vars := map[string]string{"id": dev.ID.Hex()}
	rec := doRequest(t, DeleteDevice, "DELETE", "/api/devices/"+dev.ID.Hex(), nil, models.RoleAdmin, vars)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuditTrailWritten(t *testing.T) {
	s := newTestStores(t)

	rec := doRequest(t, CreateDevice, "POST", "/api/devices", validDeviceBody(), models.RoleAdmin, nil)
	trequire.Equal(t, http.StatusCreated, rec.Code)

	entries, err := s.Audit.List(context.Background(), 10)
	trequire.NoError(t, err)
	trequire.Len(t, entries, 1)
	assert.Equal(t, "device_create", entries[0].Action)
	assert.Equal(t, "device", entries[0].EntityType)
	assert.False(t, entries[0].UserID.IsZero())
}

func TestListAuditLogsRole(t *testing.T) {
	newTestStores(t)

	rec := doRequest(t, ListAuditLogs, "GET", "/api/audit", nil, models.RoleUser, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, ListAuditLogs, "GET", "/api/audit", nil, models.RoleManager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
