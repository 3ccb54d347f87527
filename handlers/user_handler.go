// handlers/user_handler.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/authz"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

func ListUsers(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpManageUsers) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := stores.Users.List(ctx)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpManageUsers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := stores.Users.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions a credentials user. When no password is supplied a
// random one is generated and returned once in the response.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpManageUsers) {
		return
	}

	var req CreateUserRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "name and a valid email are required"))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRole(req.Role) {
		utils.RespondWithAppError(w, apperr.Newf(apperr.KindValidation, "invalid role: %s", req.Role))
		return
	}

	generated := ""
	if req.Password == "" {
		generated = utils.GenerateRandomPassword(16)
		req.Password = generated
	} else if len(req.Password) < 8 {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "password must be at least 8 characters"))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
		Provider:     models.ProviderCredentials,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := stores.Users.Insert(ctx, &user); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "user_create", "user", user.ID, bson.M{
		"email": user.Email,
		"role":  user.Role,
	})

	resp := map[string]interface{}{"user": user}
	if generated != "" {
		resp["generatedPassword"] = generated
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpManageUsers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := stores.Users.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			utils.RespondWithAppError(w, apperr.Newf(apperr.KindValidation, "invalid role: %s", *req.Role))
			return
		}
		// An admin cannot demote themselves; that would risk locking the
		// last admin out of user management.
		if uid, ok := callerID(r); ok && uid == user.ID && *req.Role != models.RoleAdmin {
			utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "cannot change your own role"))
			return
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		if uid, ok := callerID(r); ok && uid == user.ID && !*req.IsActive {
			utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "cannot deactivate your own account"))
			return
		}
		user.IsActive = *req.IsActive
	}

	if err := stores.Users.Update(ctx, user); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "user_update", "user", user.ID, bson.M{"email": user.Email})
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// DeactivateUser disables the login without removing the record, so audit
// entries keep a resolvable author.
func DeactivateUser(w http.ResponseWriter, r *http.Request) {
	if !require(w, r, authz.OpManageUsers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if uid, ok := callerID(r); ok && uid == id {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "cannot deactivate your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := stores.Users.FindByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	user.IsActive = false
	if err := stores.Users.Update(ctx, user); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	writeAudit(ctx, r, "user_deactivate", "user", user.ID, bson.M{"email": user.Email})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "user deactivated"})
}
