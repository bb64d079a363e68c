package ingredient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/core"
	"github.com/gastropartner/gastropartner/modules/ingredient"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

func mount(t *testing.T, svc *ingredient.Service) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Mount("/organizations/{orgID}/ingredients", ingredient.Router(svc))
	return r
}

func TestRouterCreate(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		handler := mount(t, ingredient.NewService(newFakeStorage(), allowEnforcer{}))

		req := httptest.NewRequest(http.MethodPost, "/organizations/"+orgID.String()+"/ingredients",
			strings.NewReader(`{"name":"Tomato","unit":"kg","cost_per_unit":2.5}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var body core.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		data := body.Data.(map[string]any)
		assert.Equal(t, "Tomato", data["name"])
		assert.Equal(t, orgID.String(), data["organization_id"])
	})

	t.Run("limit exceeded returns 402 with upgrade metadata", func(t *testing.T) {
		t.Parallel()

		svc := ingredient.NewService(newFakeStorage(),
			denyEnforcer{res: limits.ResourceIngredients, current: 50, max: 50})
		handler := mount(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/organizations/"+orgID.String()+"/ingredients",
			strings.NewReader(`{"name":"Basil"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Equal(t, "true", rec.Header().Get(core.HeaderUpgradeRequired))
		assert.Equal(t, "ingredients", rec.Header().Get(core.HeaderFeature))

		var body core.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "payment_required", body.Code)
		assert.Equal(t, "50/50 ingredients used", body.Detail)
	})

	t.Run("invalid organization id", func(t *testing.T) {
		t.Parallel()

		handler := mount(t, ingredient.NewService(newFakeStorage(), allowEnforcer{}))

		req := httptest.NewRequest(http.MethodPost, "/organizations/not-a-uuid/ingredients",
			strings.NewReader(`{"name":"Salt"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty name is unprocessable", func(t *testing.T) {
		t.Parallel()

		handler := mount(t, ingredient.NewService(newFakeStorage(), allowEnforcer{}))

		req := httptest.NewRequest(http.MethodPost, "/organizations/"+orgID.String()+"/ingredients",
			strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestRouterGet(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	svc := ingredient.NewService(newFakeStorage(), allowEnforcer{})
	handler := mount(t, svc)

	ing, err := svc.Create(t.Context(), orgID, nil, ingredient.CreateParams{Name: "Olive Oil", Unit: "l"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet,
			"/organizations/"+orgID.String()+"/ingredients/"+ing.ID.String(), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet,
			"/organizations/"+orgID.String()+"/ingredients/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
