package core_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/core"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	core.RespondJSON(rec, http.StatusCreated, map[string]string{"name": "Trattoria"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body core.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"name": "Trattoria"}, body.Data)
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	t.Run("limit exceeded maps to 402 with upgrade headers", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		core.RespondError(rec, &limits.LimitExceededError{
			Resource: limits.ResourceRecipes,
			Current:  5,
			Max:      5,
		})

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Equal(t, "true", rec.Header().Get(core.HeaderUpgradeRequired))
		assert.Equal(t, "recipes", rec.Header().Get(core.HeaderFeature))

		var body core.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "payment_required", body.Code)
		assert.Equal(t, "5/5 recipes used", body.Detail)
	})

	t.Run("http errors use their own status and key", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		core.RespondError(rec, core.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get(core.HeaderUpgradeRequired))

		var body core.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body.Code)
	})

	t.Run("wrapped http errors are unwrapped", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		core.RespondError(rec, core.NewHTTPError(http.StatusConflict, "already_exists"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown errors become 500", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		core.RespondError(rec, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body core.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "internal_server_error", body.Code)
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Bistro"}`))
		var body struct {
			Name string `json:"name"`
		}
		require.NoError(t, core.DecodeJSON(req, &body))
		assert.Equal(t, "Bistro", body.Name)
	})

	t.Run("malformed body maps to bad request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var body struct{}
		err := core.DecodeJSON(req, &body)
		require.ErrorIs(t, err, core.ErrBadRequest)
	})
}
