package remote

import (
	"fmt"
	"net/http"

	"hris-admin/internal/shared/apperror"
)

var (
	// ErrBackendUnavailable covers transport failures: DNS, refused
	// connections, timeouts, cancelled contexts.
	ErrBackendUnavailable = apperror.New(
		apperror.CodeBackendUnavailable,
		"Backend is unreachable",
		http.StatusServiceUnavailable,
	)
	// ErrBackendRejected is any non-2xx backend response.
	ErrBackendRejected = apperror.New(
		apperror.CodeBackendRejected,
		"Backend rejected the request",
		http.StatusBadGateway,
	)
	ErrMalformedResponse = apperror.New(
		apperror.CodeMalformedResponse,
		"Backend returned a malformed response",
		http.StatusBadGateway,
	)
)

// StatusError carries the backend status and a bounded body excerpt.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// rejected keeps the backend's 4xx status so the console can show it as a
// client problem; 5xx collapses to 502.
func rejected(se *StatusError) *apperror.AppError {
	switch {
	case se.Status == http.StatusNotFound:
		return apperror.ErrNotFound.WithCause(se)
	case se.Status >= 400 && se.Status < 500:
		return apperror.Wrap(se, ErrBackendRejected.Code, ErrBackendRejected.Message, se.Status)
	default:
		return ErrBackendRejected.WithCause(se)
	}
}
