package preflight

import (
	"context"
	"net/http"
	"time"

	"github.com/sourcegraph/conc/iter"

	"jellyboxd/internal/config"
	"jellyboxd/internal/deps"
	"jellyboxd/internal/services/jellyfin"
)

const checkTimeout = 10 * time.Second

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. Checks run
// concurrently; results keep their declaration order.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	httpClient := &http.Client{Timeout: checkTimeout}

	checks := []func() Result{
		func() Result { return CheckInterchangeDir("Interchange directory", cfg.Paths.CSVPath) },
		func() Result {
			client := jellyfin.NewClient(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, httpClient)
			return CheckJellyfin(ctx, client, cfg.Jellyfin)
		},
		func() Result { return CheckLetterboxd(ctx, httpClient, cfg.Letterboxd.BaseURL) },
		func() Result { return CheckBrowser(cfg.Letterboxd.BrowserPath) },
	}
	return iter.Map(checks, func(check *func() Result) Result { return (*check)() })
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

// CheckBrowser wraps deps.CheckBrowser as a preflight result.
func CheckBrowser(execPath string) Result {
	status := deps.CheckBrowser(execPath)
	if !status.Available {
		return Result{Name: status.Name, Detail: status.Detail}
	}
	return Result{Name: status.Name, Passed: true, Detail: status.Path}
}
