package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"jellyboxd/internal/interchange"
	"jellyboxd/internal/logging"
	"jellyboxd/internal/services"
	"jellyboxd/internal/services/jellyfin"
)

// Source is the read-only view of the media server the collector needs.
type Source interface {
	ResolveUserID(ctx context.Context, username string) (string, error)
	ListWatchedItems(ctx context.Context, userID string) ([]jellyfin.Item, error)
}

// Result summarizes an export.
type Result struct {
	UserID   string
	Fetched  int
	Records  []interchange.Record
	Path     string
	Duration time.Duration
}

// Collector builds and persists the canonical watch history for one user.
type Collector struct {
	source Source
	fs     afero.Fs
	logger *slog.Logger
}

// NewCollector wires a collector. A nil fs uses the OS filesystem.
func NewCollector(source Source, fs afero.Fs, logger *slog.Logger) *Collector {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Collector{
		source: source,
		fs:     fs,
		logger: logging.NewComponentLogger(logger, "collector"),
	}
}

// Collect resolves username and returns its deduplicated watch history.
// No items request is made when the user cannot be resolved.
func (c *Collector) Collect(ctx context.Context, username string) (Result, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, c.logger)

	logger.Info("resolving jellyfin user", logging.String("user", username))
	userID, err := c.source.ResolveUserID(ctx, username)
	if err != nil {
		return Result{}, err
	}
	logger.Info("resolved jellyfin user", logging.String("user", username), logging.String("user_id", userID))

	logger.Info("fetching watched items")
	items, err := c.source.ListWatchedItems(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	records, err := Reduce(items)
	if err != nil {
		return Result{}, services.Wrap(services.ErrPrecondition, "collect", "reduce watched items", "", err)
	}
	logger.Debug("reduced watch history",
		logging.Int("fetched", len(items)),
		logging.Int("records", len(records)),
		logging.Int("duplicates", len(items)-len(records)),
	)

	return Result{
		UserID:   userID,
		Fetched:  len(items),
		Records:  records,
		Duration: time.Since(started),
	}, nil
}

// Export collects username's history and writes it to path.
func (c *Collector) Export(ctx context.Context, username, path string) (Result, error) {
	started := time.Now()
	result, err := c.Collect(ctx, username)
	if err != nil {
		return Result{}, err
	}
	if err := interchange.Write(c.fs, path, result.Records); err != nil {
		return Result{}, fmt.Errorf("export watch history: %w", err)
	}
	result.Path = path
	result.Duration = time.Since(started)

	logging.WithContext(ctx, c.logger).Info("exported watch history",
		logging.Int("records", len(result.Records)),
		logging.String("path", path),
	)
	return result, nil
}
