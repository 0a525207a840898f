package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRequireStoreRejectsWhenDown(t *testing.T) {
	orig := ReadyFunc
	ReadyFunc = func(context.Context) bool { return false }
	defer func() { ReadyFunc = orig }()

	called := false
	handler := RequireStore(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/api/products", nil), nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "error")
}

func TestRequireStorePassesWhenReady(t *testing.T) {
	orig := ReadyFunc
	ReadyFunc = func(context.Context) bool { return true }
	defer func() { ReadyFunc = orig }()

	called := false
	handler := RequireStore(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/api/products", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
