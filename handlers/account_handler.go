// handlers/account_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dangtoan2205/asset-manager-sub000/authz"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

func ListAccounts(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := store.AccountFilter{
		Status:           r.URL.Query().Get("status"),
		Type:             r.URL.Query().Get("type"),
		AssignmentStatus: r.URL.Query().Get("assignmentStatus"),
	}
	accounts, err := stores.Accounts.List(ctx, filter)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	// Secrets never serialize: the model hides them from JSON.
	utils.RespondWithJSON(w, http.StatusOK, accounts)
}

func GetAccount(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpRead) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	account, err := stores.Accounts.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, account)
}

// AccountRequest carries secrets on the way in. Responses use the Account
// model, which strips them.
type AccountRequest struct {
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	SubType       string     `json:"subType,omitempty"`
	Category      string     `json:"category,omitempty"`
	Username      string     `json:"username"`
	Password      string     `json:"password,omitempty"`
	APIKey        string     `json:"apiKey,omitempty"`
	AccessToken   string     `json:"accessToken,omitempty"`
	RefreshToken  string     `json:"refreshToken,omitempty"`
	URL           string     `json:"url,omitempty"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	Status        string     `json:"status,omitempty"`
	SecurityLevel string     `json:"securityLevel,omitempty"`
	Organization  string     `json:"organization,omitempty"`
	Department    string     `json:"department,omitempty"`
	ProjectID     string     `json:"projectId,omitempty"`
}

func CreateAccount(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpCreate) {
		return
	}

	var req AccountRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	account := models.Account{
		Name:          req.Name,
		Type:          req.Type,
		SubType:       req.SubType,
		Category:      req.Category,
		Username:      req.Username,
		Password:      req.Password,
		APIKey:        req.APIKey,
		AccessToken:   req.AccessToken,
		RefreshToken:  req.RefreshToken,
		URL:           req.URL,
		ExpiryDate:    req.ExpiryDate,
		Status:        req.Status,
		SecurityLevel: req.SecurityLevel,
		Organization:  req.Organization,
		Department:    req.Department,
		ProjectID:     req.ProjectID,
	}
	if err := account.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := stores.Accounts.Insert(ctx, &account); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "account_create", "account", account.ID, bson.M{
		"name": account.Name,
		"type": account.Type,
	})
	utils.RespondWithJSON(w, http.StatusCreated, account)
}

type UpdateAccountRequest struct {
	Name          *string    `json:"name,omitempty"`
	Type          *string    `json:"type,omitempty"`
	SubType       *string    `json:"subType,omitempty"`
	Category      *string    `json:"category,omitempty"`
	Username      *string    `json:"username,omitempty"`
	Password      *string    `json:"password,omitempty"`
	APIKey        *string    `json:"apiKey,omitempty"`
	AccessToken   *string    `json:"accessToken,omitempty"`
	RefreshToken  *string    `json:"refreshToken,omitempty"`
	URL           *string    `json:"url,omitempty"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	Status        *string    `json:"status,omitempty"`
	SecurityLevel *string    `json:"securityLevel,omitempty"`
	Organization  *string    `json:"organization,omitempty"`
	Department    *string    `json:"department,omitempty"`
	ProjectID     *string    `json:"projectId,omitempty"`
}

func UpdateAccount(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpUpdate) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var req UpdateAccountRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	account, err := stores.Accounts.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
	}
	if req.Category != nil {
		account.Category = *req.Category
	}
	if req.Username != nil {
		account.Username = *req.Username
	}
	if req.Password != nil {
		account.Password = *req.Password
	}
	if req.APIKey != nil {
		account.APIKey = *req.APIKey
	}
	if req.AccessToken != nil {
		account.AccessToken = *req.AccessToken
	}
	if req.RefreshToken != nil {
		account.RefreshToken = *req.RefreshToken
	}
	if req.URL != nil {
		account.URL = *req.URL
	}
	if req.ExpiryDate != nil {
		account.ExpiryDate = req.ExpiryDate
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if req.SecurityLevel != nil {
		account.SecurityLevel = *req.SecurityLevel
	}
	if req.Organization != nil {
		account.Organization = *req.Organization
	}
	if req.Department != nil {
		account.Department = *req.Department
	}
	if req.ProjectID != nil {
		account.ProjectID = *req.ProjectID
	}

	if err := account.Validate(); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if err := stores.Accounts.Update(ctx, account); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "account_update", "account", account.ID, bson.M{"name": account.Name})
	utils.RespondWithJSON(w, http.StatusOK, account)
}

func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpDelete) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	account, err := stores.Accounts.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if err := stores.Accounts.Delete(ctx, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "account_delete", "account", id, bson.M{"name": account.Name})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}
