package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"jellyboxd/internal/config"
	"jellyboxd/internal/services"
	"jellyboxd/internal/services/jellyfin"
)

// CheckJellyfin verifies connectivity, the API key, and that the configured
// user exists.
func CheckJellyfin(ctx context.Context, client *jellyfin.Client, cfg config.Jellyfin) Result {
	const name = "Jellyfin"

	switch {
	case strings.TrimSpace(cfg.URL) == "":
		return Result{Name: name, Detail: "missing url"}
	case strings.TrimSpace(cfg.APIKey) == "":
		return Result{Name: name, Detail: "missing api key"}
	case strings.TrimSpace(cfg.User) == "":
		return Result{Name: name, Detail: "missing user"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	userID, err := client.ResolveUserID(checkCtx, cfg.User)
	if err == nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("user %s (%s)", cfg.User, userID)}
	}

	var statusErr *jellyfin.StatusError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return Result{Name: name, Detail: fmt.Sprintf("user %q not found", cfg.User)}
	case errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden):
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	case errors.As(err, &statusErr):
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", statusErr.StatusCode)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
}

// CheckLetterboxd verifies the sign-in page answers. Any HTTP response
// counts: the site may challenge non-browser clients.
func CheckLetterboxd(ctx context.Context, client *http.Client, baseURL string) Result {
	const name = "Letterboxd"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/sign-in/", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("bad base url (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (HTTP %d)", resp.StatusCode)}
}

// CheckInterchangeDir verifies the CSV can be created: its directory, or the
// nearest existing ancestor when the directory does not exist yet, must be
// writable.
func CheckInterchangeDir(name, csvPath string) Result {
	if strings.TrimSpace(csvPath) == "" {
		return Result{Name: name, Detail: "missing csv path"}
	}
	dir := filepath.Dir(csvPath)
	probe := dir
	for {
		info, err := os.Stat(probe)
		if err == nil {
			if !info.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", probe)}
			}
			break
		}
		if !os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", probe, err)}
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing ancestor)", dir)}
		}
		probe = parent
	}

	if err := unix.Access(probe, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", probe, err)}
	}
	if probe != dir {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", dir)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", dir)}
}
