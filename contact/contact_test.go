package contact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"furnish/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMessage(t *testing.T, body string) (*httptest.ResponseRecorder, *models.ContactMessage) {
	t.Helper()

	origInsert := insertMessage
	t.Cleanup(func() { insertMessage = origInsert })

	var saved *models.ContactMessage
	insertMessage = func(_ context.Context, msg *models.ContactMessage) error {
		saved = msg
		return nil
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	CreateMessage(w, r, nil)
	return w, saved
}

func TestCreateMessageDefaultsToUnread(t *testing.T) {
	w, saved := postMessage(t, `{"name":"Asha","message":"When can you deliver a bed frame?"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.False(t, saved.IsRead)
}

func TestCreateMessageKeepsIsReadAsSent(t *testing.T) {
	w, saved := postMessage(t, `{"name":"Asha","message":"Imported from the old inbox","isRead":true}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.True(t, saved.IsRead)
}

func TestCreateMessageRequiresNameAndMessage(t *testing.T) {
	w, saved := postMessage(t, `{"name":"Asha"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, saved)
}
