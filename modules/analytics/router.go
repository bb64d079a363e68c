package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/core"
)

// Router exposes the recorded events for an organization. It expects
// an {orgID} URL parameter from the parent route.
func Router(store *PgStore) chi.Router {
	r := chi.NewRouter()

	r.Get("/events", func(w http.ResponseWriter, req *http.Request) {
		orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
		if err != nil {
			core.RespondError(w, core.ErrBadRequest)
			return
		}

		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		eventType := req.URL.Query().Get("type")
		events, err := store.Recent(req.Context(), orgID, eventType, limit)
		if err != nil {
			core.RespondError(w, err)
			return
		}
		core.RespondJSON(w, http.StatusOK, events)
	})

	return r
}
