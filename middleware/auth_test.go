package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtoan2205/asset-manager-sub000/config"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store/memstore"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

func init() {
	config.JWTKey = []byte("test-signing-key")
	config.JWTExpiration = time.Hour
}

func echoRole() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(CtxUserRole).(string)
		w.Write([]byte(role))
	})
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	s := memstore.New()
	handler := Auth(s.Users)(echoRole())

	req := httptest.NewRequest("GET", "/api/devices", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	s := memstore.New()
	handler := Auth(s.Users)(echoRole())

	req := httptest.NewRequest("GET", "/api/devices", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsDeactivatedUser(t *testing.T) {
	s := memstore.New()
	u := &models.User{
		Name:     "carol",
		Email:    "carol@example.com",
		Role:     models.RoleManager,
		IsActive: false,
		Provider: models.ProviderCredentials,
	}
	require.NoError(t, s.Users.Insert(context.Background(), u))

	token, err := utils.GenerateJWT(u.ID.Hex(), u.Name, u.Role)
	require.NoError(t, err)

	handler := Auth(s.Users)(echoRole())
	req := httptest.NewRequest("GET", "/api/devices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRoleComesFromStore(t *testing.T) {
	s := memstore.New()
	u := &models.User{
		Name:     "carol",
		Email:    "carol@example.com",
		Role:     models.RoleManager,
		IsActive: true,
		Provider: models.ProviderCredentials,
	}
	require.NoError(t, s.Users.Insert(context.Background(), u))

	// Token was minted while the user was still an admin
	token, err := utils.GenerateJWT(u.ID.Hex(), u.Name, models.RoleAdmin)
	require.NoError(t, err)

	handler := Auth(s.Users)(echoRole())
	req := httptest.NewRequest("GET", "/api/devices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// The store's current role wins over the stale claim
	assert.Equal(t, models.RoleManager, rec.Body.String())
}

func TestAuthUnknownUser(t *testing.T) {
	s := memstore.New()
	token, err := utils.GenerateJWT("64f000000000000000000001", "ghost", models.RoleAdmin)
	require.NoError(t, err)

	handler := Auth(s.Users)(echoRole())
	req := httptest.NewRequest("GET", "/api/devices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
