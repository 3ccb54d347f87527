package routes

import (
	"github.com/gorilla/mux"

	"github.com/dangtoan2205/asset-manager-sub000/handlers"
	"github.com/dangtoan2205/asset-manager-sub000/middleware"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

// Route grouping constants
const (
	PathAPI    = "/api"
	PathHealth = "/health"
)

func RegisterRoutes(r *mux.Router, s store.Stores) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc(PathHealth, handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION ROUTES (Public - No auth required)
	// ====================
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/validate", handlers.ValidateToken).Methods(MethodsGetOnly...)

	// ====================
	// WEBSOCKET (token auth via query param)
	// ====================
	r.HandleFunc("/ws/audit", websocket.ServeWS)

	// ====================
	// PROTECTED API ROUTES (Require authentication)
	// ====================
	apiRouter := r.PathPrefix(PathAPI).Subrouter()
	apiRouter.Use(middleware.Auth(s.Users))

	// ====================
	// CURRENT USER
	// ====================
	apiRouter.HandleFunc("/user/me", handlers.GetCurrentUser).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/user/change-password", handlers.ChangePassword).Methods(MethodsPostOnly...)

	// ====================
	// DEVICES
	// ====================
	apiRouter.HandleFunc("/devices", handlers.ListDevices).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/devices", handlers.CreateDevice).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/devices/{id}", handlers.GetDevice).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/devices/{id}", handlers.UpdateDevice).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/devices/{id}", handlers.DeleteDevice).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/devices/{id}/maintenance", handlers.AddDeviceMaintenance).Methods(MethodsPostOnly...)

	// ====================
	// COMPONENTS
	// ====================
	apiRouter.HandleFunc("/components", handlers.ListComponents).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/components", handlers.CreateComponent).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/components/{id}", handlers.GetComponent).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/components/{id}", handlers.UpdateComponent).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/components/{id}", handlers.DeleteComponent).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/components/{id}/install", handlers.InstallComponent).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/components/{id}/uninstall", handlers.UninstallComponent).Methods(MethodsPostOnly...)

	// ====================
	// EMPLOYEES
	// ====================
	apiRouter.HandleFunc("/employees", handlers.ListEmployees).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/employees", handlers.CreateEmployee).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/employees/{id}", handlers.GetEmployee).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/employees/{id}", handlers.UpdateEmployee).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/employees/{id}", handlers.DeleteEmployee).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/employees/{id}/holdings", handlers.GetEmployeeHoldings).Methods(MethodsGetOnly...)

	// ====================
	// ACCOUNTS
	// ====================
	apiRouter.HandleFunc("/accounts", handlers.ListAccounts).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/accounts", handlers.CreateAccount).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/accounts/{id}", handlers.GetAccount).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/accounts/{id}", handlers.UpdateAccount).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/accounts/{id}", handlers.DeleteAccount).Methods(MethodsDeleteOnly...)

	// ====================
	// ASSIGNMENTS
	// ====================
	apiRouter.HandleFunc("/assignments/assign", handlers.AssignAsset).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assignments/unassign", handlers.UnassignAsset).Methods(MethodsPostOnly...)

	// ====================
	// INVOICES
	// ====================
	apiRouter.HandleFunc("/invoices", handlers.ListInvoices).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/invoices", handlers.CreateInvoice).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/invoices/import", handlers.ImportInvoice).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/invoices/{id}", handlers.GetInvoice).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/invoices/{id}", handlers.UpdateInvoice).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/invoices/{id}", handlers.DeleteInvoice).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/invoices/{id}/items/{index:[0-9]+}/process", handlers.ProcessInvoiceItem).Methods(MethodsPostOnly...)

	// ====================
	// REPORTS
	// ====================
	apiRouter.HandleFunc("/reports/overview", handlers.GetOverview).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/reports/devices/status", handlers.GetDeviceStatusReport).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/reports/devices/types", handlers.GetDeviceTypeReport).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/reports/devices/warranty", handlers.GetWarrantyReport).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/reports/devices/age", handlers.GetAgeReport).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/reports/components/status", handlers.GetComponentStatusReport).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/reports/accounts/status", handlers.GetAccountStatusReport).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/reports/departments", handlers.GetDepartmentReport).Methods(MethodsGetOnly...)

	// ====================
	// AUDIT LOGS
	// ====================
	apiRouter.HandleFunc("/audit", handlers.ListAuditLogs).Methods(MethodsGetOnly...)

	// ====================
	// USER MANAGEMENT (admin only, enforced in handlers)
	// ====================
	apiRouter.HandleFunc("/users", handlers.ListUsers).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users", handlers.CreateUser).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.GetUser).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.UpdateUser).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.DeactivateUser).Methods(MethodsDeleteOnly...)
}
