package jellyfin

import (
	"fmt"
	"net/http"

	"jellyboxd/internal/services"
)

// UserNotFoundError reports that no Jellyfin user has exactly the requested name.
type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %q not found on Jellyfin server", e.Username)
}

// Is lets errors.Is(err, services.ErrNotFound) match.
func (e *UserNotFoundError) Is(target error) bool {
	return target == services.ErrNotFound
}

// StatusError reports a non-2xx response from the Jellyfin API.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("jellyfin %s %s returned %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is(err, services.ErrTransport) match.
func (e *StatusError) Is(target error) bool {
	return target == services.ErrTransport
}
