package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/app"
	"userhub/internal/model"
	"userhub/internal/pkg/jwtutil"
	"userhub/internal/pkg/passhash"
	"userhub/internal/transport/http/middleware"
)

func newAdminRouter(t *testing.T, store *memoryUserStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := app.NewAuthService(store, nil, testSecret, time.Hour)
	h := NewAdminHandler(authService)
	gate := middleware.AuthJWT(testSecret, authService)

	r := gin.New()
	r.GET("/api/admin/users", gate, middleware.AdminOnly(), h.ListUsers)
	return r
}

func seedUser(t *testing.T, store *memoryUserStore, email string, isAdmin bool) string {
	t.Helper()
	digest, err := passhash.Hash("secret1")
	require.NoError(t, err)
	user := &model.User{
		Username:     "user",
		Email:        email,
		Phone:        "1234567890",
		PasswordHash: digest,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, store.Create(context.Background(), user))

	token, err := jwtutil.GenerateToken(testSecret, time.Hour, user.ID, user.Email, user.IsAdmin)
	require.NoError(t, err)
	return token
}

func getUsers(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListUsers_AdminSeesAll(t *testing.T) {
	store := newMemoryUserStore()
	r := newAdminRouter(t, store)

	seedUser(t, store, "alice@x.com", false)
	adminToken := seedUser(t, store, "root@x.com", true)

	rec := getUsers(r, adminToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	assert.NotContains(t, rec.Body.String(), "secret1")
}

func TestListUsers_NonAdminForbidden(t *testing.T) {
	store := newMemoryUserStore()
	r := newAdminRouter(t, store)

	token := seedUser(t, store, "alice@x.com", false)
	rec := getUsers(r, token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", decodeBody(t, rec)["message"])
}

func TestListUsers_NoToken(t *testing.T) {
	r := newAdminRouter(t, newMemoryUserStore())

	rec := getUsers(r, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized, token not found", decodeBody(t, rec)["message"])
}
