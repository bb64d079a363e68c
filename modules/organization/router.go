package organization

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/core"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

// UsageChecker exposes the dashboard usage view of the limits service.
type UsageChecker interface {
	CheckAll(ctx context.Context, orgID uuid.UUID, addIntents ...limits.Resource) (limits.UsageCheck, error)
}

type createRequest struct {
	Name string `json:"name"`
}

type changePlanRequest struct {
	Plan string `json:"plan"`
}

// Nested pairs a URL pattern with a sub-resource router mounted under
// /{orgID}, so ingredient, recipe and menu routes share the
// organization scope.
type Nested struct {
	Pattern string
	Router  chi.Router
}

// Router mounts the organization endpoints.
func Router(svc *Service, usage UsageChecker, nested ...Nested) chi.Router {
	r := chi.NewRouter()

	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var body createRequest
		if err := core.DecodeJSON(req, &body); err != nil {
			core.RespondError(w, err)
			return
		}

		org, err := svc.Create(req.Context(), body.Name)
		if err != nil {
			core.RespondError(w, mapError(err))
			return
		}
		core.RespondJSON(w, http.StatusCreated, org)
	})

	r.Route("/{orgID}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			org, err := svc.Get(req.Context(), orgID)
			if err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			core.RespondJSON(w, http.StatusOK, org)
		})

		r.Patch("/plan", func(w http.ResponseWriter, req *http.Request) {
			orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			var body changePlanRequest
			if err := core.DecodeJSON(req, &body); err != nil {
				core.RespondError(w, err)
				return
			}

			if err := svc.ChangePlan(req.Context(), orgID, body.Plan); err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			core.RespondJSON(w, http.StatusOK, map[string]string{"plan": body.Plan})
		})

		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			if err := svc.Delete(req.Context(), orgID); err != nil {
				core.RespondError(w, mapError(err))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/usage", func(w http.ResponseWriter, req *http.Request) {
			orgID, err := uuid.Parse(chi.URLParam(req, "orgID"))
			if err != nil {
				core.RespondError(w, core.ErrBadRequest)
				return
			}

			check, err := usage.CheckAll(req.Context(), orgID)
			if err != nil {
				core.RespondError(w, err)
				return
			}
			core.RespondJSON(w, http.StatusOK, check)
		})

		for _, n := range nested {
			r.Mount(n.Pattern, n.Router)
		}
	})

	return r
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return core.ErrNotFound
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrUnknownPlan):
		return core.ErrUnprocessableEntity
	default:
		return err
	}
}
