package ingredient

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/core"
)

// Router mounts the ingredient endpoints. It expects an {orgID} URL
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

		ing, err := svc.Create(req.Context(), orgID, userIDFrom(req), params)
		if err != nil {
			core.RespondError(w, mapError(err))
			return
		}
		core.RespondJSON(w, http.StatusCreated, ing)
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

	r.Route("/{ingredientID}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			orgID, id, err := pathIDs(req)
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			ing, err := svc.Get(req.Context(), orgID, id)
			if err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			core.RespondJSON(w, http.StatusOK, ing)
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

			ing, err := svc.Update(req.Context(), orgID, id, params)
			if err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			core.RespondJSON(w, http.StatusOK, ing)
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
	id, err = uuid.Parse(chi.URLParam(req, "ingredientID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return orgID, id, nil
}

// userIDFrom reads the optional acting-user ID the auth gateway forwards.
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
	case errors.Is(err, ErrNameRequired):
		return core.ErrUnprocessableEntity
	default:
		return err
	}
}
