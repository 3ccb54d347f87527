package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

// Context keys populated by Auth.
const (
	CtxUserID   = "userID"
	CtxUserName = "userName"
	CtxUserRole = "userRole"
)

// Auth validates the Bearer token, loads the user, and rejects inactive
// accounts. Identity lands in the request context; handlers read the role
// from there for authorization checks.
func Auth(users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// WebSocket upgrades authenticate via query token in the ws handler
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := utils.ValidateJWT(tokenString)
			if err != nil || claims == nil {
				log.Printf("auth: JWT validation failed: %v", err)
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user ID in token")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("auth: user %s not found: %v", claims.UserID, err)
				utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
				return
			}
			if !user.IsActive {
				utils.RespondWithError(w, http.StatusUnauthorized, "User account is deactivated")
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
			ctx = context.WithValue(ctx, CtxUserName, claims.Name)
			ctx = context.WithValue(ctx, CtxUserRole, user.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
