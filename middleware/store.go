package middleware

import (
	"net/http"

	"furnish/db"
	"furnish/utils"

	"github.com/julienschmidt/httprouter"
)

// ReadyFunc reports whether the document store is reachable. Swappable so
// tests can exercise the gate without a live connection.
var ReadyFunc = db.Ready

// RequireStore fails fast with 503 when the store connection is down instead
// of letting every handler hit a driver timeout.
func RequireStore(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !ReadyFunc(r.Context()) {
			utils.RespondWithError(w, http.StatusServiceUnavailable,
				"Database not connected. Check that MongoDB is running and MONGODB_URI is correct.")
			return
		}
		next(w, r, ps)
	}
}
