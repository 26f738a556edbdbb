package backend

import (
	"fmt"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Op    string
	Code  int
	Body  string
	ReqID string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: backend status %d: %s", e.Op, e.Code, e.Body)
}

// Unwrap lets callers match every status failure with domain.ErrRemoteStatus.
func (e *StatusError) Unwrap() error { return domain.ErrRemoteStatus }

func (e *StatusError) StatusCode() int   { return e.Code }
func (e *StatusError) RequestID() string { return e.ReqID }
