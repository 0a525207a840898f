package faqs

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

func postFAQ(t *testing.T, body string) (*httptest.ResponseRecorder, *models.FAQ) {
	t.Helper()

	origInsert := insertFAQ
	t.Cleanup(func() { insertFAQ = origInsert })

	var saved *models.FAQ
	insertFAQ = func(_ context.Context, faq *models.FAQ) error {
		saved = faq
		return nil
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/faqs", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	CreateFAQ(w, r, nil)
	return w, saved
}

func TestCreateFAQDefaultsToActive(t *testing.T) {
	w, saved := postFAQ(t, `{"question":"Do you deliver?","answer":"Yes, within the city."}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.True(t, saved.IsActive)
}

func TestCreateFAQHonorsExplicitInactive(t *testing.T) {
	w, saved := postFAQ(t, `{"question":"Old question","answer":"Old answer","isActive":false}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.False(t, saved.IsActive)
}

func TestCreateFAQRequiresQuestionAndAnswer(t *testing.T) {
	w, saved := postFAQ(t, `{"question":"Only a question"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, saved)
}
