package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidParams is returned before any request is made when arguments are unusable
var ErrInvalidParams = errors.New("invalid parameters")

// APIError is a non-2xx response from the directory service
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// newAPIError builds an APIError from a response body.
// The server answers with {"message": ..., "details": [...]}; anything else is kept verbatim.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		e.Message = parsed.Get("message").String()
		if e.Message == "" {
			e.Message = parsed.Get("error").String()
		}
		for _, d := range parsed.Get("details").Array() {
			if s := d.String(); s != "" {
				e.Details = append(e.Details, s)
			}
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// StatusCode returns the HTTP status of err, or 0 when err is not an APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 or 403 from the server
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// UserMessage returns text suitable for showing inline in a form
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Details) > 0 {
			return apiErr.Message + ": " + strings.Join(apiErr.Details, "; ")
		}
		return apiErr.Message
	}
	return err.Error()
}
