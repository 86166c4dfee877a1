package device

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotReady is returned when the SD card is present but not ready (HTTP 503).
	ErrNotReady = errors.New("SD card not ready")

	// ErrLocked is returned while another request holds the SD card (HTTP 423).
	ErrLocked = errors.New("SD card is locked")

	// ErrTooLarge is returned for downloads above MaxDownloadSize (HTTP 413).
	ErrTooLarge = errors.New("file is too large to download")

	// ErrProtectedPath is returned by Delete for paths the firmware refuses to remove.
	ErrProtectedPath = errors.New("cannot delete protected path")
)

// StatusError is a non-success HTTP response from the device.
type StatusError struct {
	Op      string
	Code    int
	Message string // from the {"error": "..."} body, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: unexpected status code: %d", e.Op, e.Code)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusServiceUnavailable:
		return ErrNotReady
	case http.StatusLocked:
		return ErrLocked
	case http.StatusRequestEntityTooLarge:
		return ErrTooLarge
	case http.StatusForbidden:
		return ErrProtectedPath
	}
	return nil
}

// ErrorMessage returns the device-supplied message of err, or "" when there is none.
func ErrorMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}
