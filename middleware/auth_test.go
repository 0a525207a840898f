package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"furnish/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, roles []string) string {
	t.Helper()
	claims := &Claims{
		Username: "admin",
		UserID:   "u123",
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	assert.NoError(t, err)
	return token
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run without a token")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/api/contact", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsMalformedToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run with a bad token")
	})

	r := httptest.NewRequest("GET", "/api/contact", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")

	w := httptest.NewRecorder()
	handler(w, r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticatePutsUserIDInContext(t *testing.T) {
	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	r := httptest.NewRequest("GET", "/api/contact", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, []string{"admin"}))

	w := httptest.NewRecorder()
	handler(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u123", gotUserID)
}

func TestRequireAdminBlocksNonAdmins(t *testing.T) {
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run for non-admin roles")
	})

	r := httptest.NewRequest("DELETE", "/api/products/abc", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, []string{"viewer"}))

	w := httptest.NewRecorder()
	handler(w, r, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	called := false
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	r := httptest.NewRequest("DELETE", "/api/products/abc", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, []string{"admin"}))

	w := httptest.NewRecorder()
	handler(w, r, nil)
	assert.True(t, called)
}
