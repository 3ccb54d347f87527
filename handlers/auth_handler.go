// handlers/auth_handler.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

// Login authenticates with email and password and issues a JWT.
// Externally-authenticated users have no password hash and cannot log in
// with credentials here.
func Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
	if creds.Email == "" || !strings.Contains(creds.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "Valid email required")
		return
	}
	if len(creds.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := stores.Users.FindByEmail(ctx, creds.Email)
	if err != nil {
		// Burn a bcrypt compare so unknown emails take as long as bad passwords
		_ = utils.CheckPasswordHash("dummy_password", "$2a$10$dummyhashfordummycomparison")
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if user.Provider == models.ProviderExternalIdentity || user.PasswordHash == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.IsActive {
		utils.RespondWithError(w, http.StatusUnauthorized, "User account is deactivated")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := stores.Users.Update(ctx, user); err != nil {
		// Login still succeeds if the lastLogin write fails
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": user})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// ValidateToken answers whether the supplied Bearer token is still valid.
func ValidateToken(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}
	claims, err := utils.ValidateJWT(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || claims == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  true,
		"userId": claims.UserID,
		"role":   claims.Role,
	})
}

// GetCurrentUser returns the authenticated user's profile.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := stores.Users.FindByID(ctx, uid)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// ChangePassword updates the caller's own password after verifying the
// current one.
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(req.NewPassword) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "New password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := stores.Users.FindByID(ctx, uid)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if user.Provider == models.ProviderExternalIdentity {
		utils.RespondWithAppError(w, apperr.New(apperr.KindValidation, "externally-authenticated users cannot change a password here"))
		return
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	user.PasswordHash = hash
	if err := stores.Users.Update(ctx, user); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
