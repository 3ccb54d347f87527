// handlers/employee_handler.go
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

func ListEmployees(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := store.EmployeeFilter{
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
	}
	employees, err := stores.Employees.List(ctx, filter)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, employees)
}

func GetEmployee(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	employee, err := stores.Employees.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, employee)
}

// GetEmployeeHoldings returns every device, component, and account the
// employee currently holds.
func GetEmployeeHoldings(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	holdings, err := assignments.ListHeldBy(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, holdings)
}

func CreateEmployee(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpCreate) {
		return
	}

	var employee models.Employee
	if err := utils.ParseJSON(r, &employee); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	employee.ID = primitive.NilObjectID
	if err := employee.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := stores.Employees.Insert(ctx, &employee); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "employee_create", "employee", employee.ID, bson.M{
		"employeeId": employee.EmployeeID,
		"name":       employee.Name,
	})
	utils.RespondWithJSON(w, http.StatusCreated, employee)
}

type UpdateEmployeeRequest struct {
	Name       *string             `json:"name,omitempty"`
	EmployeeID *string             `json:"employeeId,omitempty"`
	Email      *string             `json:"email,omitempty"`
	Department *string             `json:"department,omitempty"`
	Position   *string             `json:"position,omitempty"`
	Phone      *string             `json:"phone,omitempty"`
	Status     *string             `json:"status,omitempty"`
	JoinDate   *time.Time          `json:"joinDate,omitempty"`
	LeaveDate  *time.Time          `json:"leaveDate,omitempty"`
	Manager    *primitive.ObjectID `json:"manager,omitempty"`
	Notes      *string             `json:"notes,omitempty"`
}

func UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var req UpdateEmployeeRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	employee, err := stores.Employees.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.EmployeeID != nil {
		employee.EmployeeID = *req.EmployeeID
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}
	if req.JoinDate != nil {
		employee.JoinDate = req.JoinDate
	}
	if req.LeaveDate != nil {
		employee.LeaveDate = req.LeaveDate
	}
	if req.Manager != nil {
		if *req.Manager == employee.ID {
			utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "employee cannot be their own manager"))
			return
		}
		employee.Manager = req.Manager
	}
	if req.Notes != nil {
		employee.Notes = *req.Notes
	}

	if err := employee.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if err := stores.Employees.Update(ctx, employee); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "employee_update", "employee", employee.ID, bson.M{"employeeId": employee.EmployeeID})
	utils.RespondWithJSON(w, http.StatusOK, employee)
}

// DeleteEmployee refuses to remove an employee who still holds any device,
// component, or account.
func DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpDelete) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	holdings, err := assignments.ListHeldBy(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if len(holdings.Devices) > 0 || len(holdings.Components) > 0 || len(holdings.Accounts) > 0 {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation,
			"employee still holds assets or accounts; unassign them before deleting"))
		return
	}

	if err := stores.Employees.Delete(ctx, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "employee_delete", "employee", id, nil)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "employee deleted"})
}
