// Package deps locates the browser executable the importer launches.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// BrowserCandidates are the Chrome and Chromium executable names probed when
// no browser path is configured, in preference order.
var BrowserCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// Status reports where, if anywhere, an executable resolved.
type Status struct {
	Name      string
	Path      string
	Available bool
	Detail    string
}

// Locate returns the first candidate that resolves via exec.LookPath. A
// candidate containing a path separator is checked as a path.
func Locate(name string, candidates ...string) Status {
	status := Status{Name: name}
	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		tried = append(tried, candidate)
		if resolved, err := exec.LookPath(candidate); err == nil {
			status.Path = resolved
			status.Available = true
			return status
		}
	}
	switch len(tried) {
	case 0:
		status.Detail = "command not configured"
	case 1:
		status.Detail = fmt.Sprintf("binary %q not found", tried[0])
	default:
		status.Detail = fmt.Sprintf("none of %s found on PATH", strings.Join(tried, ", "))
	}
	return status
}

// CheckBrowser reports the browser the importer will drive. A configured
// execPath is checked on its own; otherwise the first available candidate wins.
func CheckBrowser(execPath string) Status {
	if path := strings.TrimSpace(execPath); path != "" {
		return Locate("Browser", path)
	}
	status := Locate("Browser", BrowserCandidates...)
	if !status.Available {
		status.Detail += " (set letterboxd.browser_path)"
	}
	return status
}
