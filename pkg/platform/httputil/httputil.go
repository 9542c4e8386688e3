package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "pos/pkg/domain-errors"
)

const maxRequestBody = 1 << 20

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP error response.
// Internal errors never expose their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	status := statusFor(code)

	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) && de.Message != "" {
			body["error_description"] = de.Message
		}
	}
	WriteJSON(w, status, body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInvalidState, dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeLookupFailed, dErrors.CodePurchaseFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a JSON request body into T. An empty body decodes to the
// zero value so optional payloads can be omitted.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&v)
	if errors.Is(err, io.EOF) {
		return v, nil
	}
	if err != nil {
		return v, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid json body")
	}
	return v, nil
}
