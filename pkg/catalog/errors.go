package catalog

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
)

var ErrNotFound = errors.New("product not found")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

func newAPIError(status int, body io.Reader) *APIError {
	e := &APIError{Status: status}
	data, _ := io.ReadAll(body)
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if jsoncompat.Unmarshal(data, &payload) == nil {
		e.Message = strings.TrimSpace(payload.Message)
		if e.Message == "" {
			if s, ok := payload.Error.(string); ok {
				e.Message = strings.TrimSpace(s)
			}
		}
	}
	return e
}

// ErrorMessage is the text shown to a user for err: the API's own message
// when it sent one, fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
