package feedback

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"furnish/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidate(t *testing.T) {
	ok := models.Feedback{Name: "Asha", Rating: 4, Feedback: "Sturdy table, fast delivery"}
	assert.Empty(t, validate(&ok))

	noName := ok
	noName.Name = ""
	assert.Equal(t, "Name is required", validate(&noName))

	badRating := ok
	badRating.Rating = 6
	assert.Equal(t, "Rating must be between 1 and 5", validate(&badRating))

	badRating.Rating = 0
	assert.Equal(t, "Rating must be between 1 and 5", validate(&badRating))

	noText := ok
	noText.Feedback = ""
	assert.Equal(t, "Feedback text is required", validate(&noText))
}

func TestCreateFeedbackRejectsInvalidBody(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/feedback", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")

	CreateFeedback(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFeedbackRejectsOutOfRangeRating(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"name":"Asha","rating":9,"feedback":"nice"}`
	r := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	CreateFeedback(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Rating")
}

func TestCreateFeedbackHonorsExplicitVisibility(t *testing.T) {
	origInsert := insertFeedback
	t.Cleanup(func() { insertFeedback = origInsert })

	var saved *models.Feedback
	insertFeedback = func(_ context.Context, fb *models.Feedback) error {
		saved = fb
		return nil
	}

	w := httptest.NewRecorder()
	body := `{"name":"Asha","rating":4,"feedback":"nice","isVisible":false}`
	r := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	CreateFeedback(w, r, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.False(t, saved.IsVisible)

	// Absent field falls back to visible.
	saved = nil
	w = httptest.NewRecorder()
	r = httptest.NewRequest("POST", "/api/feedback", strings.NewReader(`{"name":"Asha","rating":4,"feedback":"nice"}`))
	r.Header.Set("Content-Type", "application/json")
	CreateFeedback(w, r, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.True(t, saved.IsVisible)
}

func TestToggleVisibilityRoundTrip(t *testing.T) {
	origFind := findFeedback
	origSet := setVisibility
	t.Cleanup(func() {
		findFeedback = origFind
		setVisibility = origSet
	})

	stored := models.Feedback{ID: primitive.NewObjectID(), Name: "Asha", Rating: 4, Feedback: "nice", IsVisible: true}
	findFeedback = func(_ context.Context, id primitive.ObjectID) (*models.Feedback, error) {
		if id != stored.ID {
			return nil, errors.New("not found")
		}
		fb := stored
		return &fb, nil
	}
	setVisibility = func(_ context.Context, id primitive.ObjectID, visible bool, at time.Time) error {
		stored.IsVisible = visible
		return nil
	}

	toggle := func() int {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("PATCH", "/api/feedback/"+stored.ID.Hex()+"/visibility", nil)
		ps := httprouter.Params{{Key: "id", Value: stored.ID.Hex()}}
		ToggleVisibility(w, r, ps)
		return w.Code
	}

	require.Equal(t, http.StatusOK, toggle())
	assert.False(t, stored.IsVisible)

	// Toggling again lands back where it started.
	require.Equal(t, http.StatusOK, toggle())
	assert.True(t, stored.IsVisible)
}
