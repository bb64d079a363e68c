package core

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Upgrade headers set on payment-required responses so clients can show
// the upgrade call-to-action without parsing the body.
const (
	HeaderUpgradeRequired = "X-Upgrade-Required"
	HeaderFeature         = "X-Feature"
)

// UpgradeRequiredError is implemented by domain errors that should map
// to 402 Payment Required with upgrade metadata. The limits package
// satisfies it without this package importing it.
type UpgradeRequiredError interface {
	error
	Feature() string
}

// JSONResponse is the standard success envelope.
type JSONResponse struct {
	Data any            `json:"data,omitempty"`
	Meta map[string]any `json:"meta,omitempty"`
}

// ErrorResponse is the standard error envelope. Detail is human-readable
// and Code is the stable key from HTTPError.
type ErrorResponse struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

// RespondJSON writes v wrapped in the success envelope.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{Data: v})
}

// RespondError maps an error to its HTTP representation.
//
// UpgradeRequiredError becomes 402 with the X-Upgrade-Required and
// X-Feature headers; HTTPError uses its own code and key; anything else
// is a generic 500 with the error text as detail.
func RespondError(w http.ResponseWriter, err error) {
	var upgradeErr UpgradeRequiredError
	if errors.As(err, &upgradeErr) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set(HeaderUpgradeRequired, "true")
		w.Header().Set(HeaderFeature, upgradeErr.Feature())
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Code:   ErrPaymentRequired.Key,
			Detail: upgradeErr.Error(),
		})
		return
	}

	status := http.StatusInternalServerError
	code := ErrInternalServerError.Key
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		code = httpErr.Key
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Code: code, Detail: err.Error()})
}

// DecodeJSON parses a JSON request body into v, mapping malformed input
// to ErrBadRequest.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}
