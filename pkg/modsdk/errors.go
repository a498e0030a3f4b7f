package modsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
)

// Error kinds as they appear in the "error" field of a response.
const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeConflict        = "conflict"
	ErrorCodeAuthentication  = "authentication_failed"
	ErrorCodeUnauthenticated = "unauthenticated"
	ErrorCodeForbidden       = "forbidden"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeSelfAction      = "self_action"
	ErrorCodeServerError     = "server_error"
)

// APIError is a failed call as reported by the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// parseErrorResponse builds an APIError from a non-2xx response.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp httpx.ErrorBody
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
