package menu

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/core"
)

// Router mounts the menu item endpoints. It expects an {orgID} URL
// parameter from the parent route.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
		if err != nil {
			core.RespondError(w, core.ErrBadRequest)
			return
		}

		var params CreateParams
		if err := core.DecodeJSON(req, &params); err != nil {
			core.RespondError(w, err)
			return
		}

		item, err := svc.Create(req.Context(), orgID, userIDFrom(req), params)
		if err != nil {
			core.RespondError(w, mapError(err))
			return
		}
		core.RespondJSON(w, http.StatusCreated, item)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
		if err != nil {
			core.RespondError(w, core.ErrBadRequest)
			return
		}

		list, err := svc.List(req.Context(), orgID)
		if err != nil {
			core.RespondError(w, mapError(err))
			return
		}
		core.RespondJSON(w, http.StatusOK, list)
	})

	r.Get("/report/profitability", func(w http.ResponseWriter, req *http.Request) {
		orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
		if err != nil {
			core.RespondError(w, core.ErrBadRequest)
			return
		}

		report, err := svc.Profitability(req.Context(), orgID)
		if err != nil {
			core.RespondError(w, mapError(err))
			return
		}
		core.RespondJSON(w, http.StatusOK, report)
	})

	r.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			orgID, id, err := pathIDs(req)
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			item, err := svc.Get(req.Context(), orgID, id)
			if err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			core.RespondJSON(w, http.StatusOK, item)
		})

		r.Put("/", func(w http.ResponseWriter, req *http.Request) {
			orgID, id, err := pathIDs(req)
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			var params CreateParams
			if err := core.DecodeJSON(req, &params); err != nil {
				core.RespondError(w, err)
				return
			}

			item, err := svc.Update(req.Context(), orgID, id, params)
			if err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			core.RespondJSON(w, http.StatusOK, item)
		})

		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			orgID, id, err := pathIDs(req)
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			if err := svc.Delete(req.Context(), orgID, id); err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	return r
}

func pathIDs(req *http.Request) (orgID, id uuid.UUID, err error) {
	orgID, err = uuid.Parse(chi.URLParam(req, "orgID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err = uuid.Parse(chi.URLParam(req, "itemID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return orgID, id, nil
}

func userIDFrom(req *http.Request) *uuid.UUID {
	raw := req.Header.Get("X-User-ID")
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return core.ErrNotFound
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrRecipeMissing):
		return core.ErrUnprocessableEntity
	default:
		return err
	}
}
