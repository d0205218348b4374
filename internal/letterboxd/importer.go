package letterboxd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"jellyboxd/internal/interchange"
	"jellyboxd/internal/logging"
	"jellyboxd/internal/services"
)

const urlProbeTimeout = 5 * time.Second

// TransitionResult records how one transition went.
type TransitionResult struct {
	From     State
	To       State
	Elapsed  time.Duration
	Degraded bool
}

// Outcome describes where a run ended. On failure State is the last state
// reached before the failing transition.
type Outcome struct {
	State       State
	Confirmed   bool
	FinalURL    string
	Rows        int
	Warnings    []string
	Transitions []TransitionResult
	Duration    time.Duration
}

// Importer drives the Letterboxd CSV import through a single browser session.
type Importer struct {
	launcher Launcher
	settings Settings
	fs       afero.Fs
	logger   *slog.Logger
}

// NewImporter wires an importer. A nil fs uses the OS filesystem.
func NewImporter(launcher Launcher, settings Settings, fs afero.Fs, logger *slog.Logger) *Importer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Importer{
		launcher: launcher,
		settings: settings,
		fs:       fs,
		logger:   logging.NewComponentLogger(logger, "letterboxd"),
	}
}

// Run uploads csvPath to the account identified by creds. The browser is
// released on every return path. A hard step failure ends the run; an
// advisory one is logged and the run continues.
func (im *Importer) Run(ctx context.Context, creds Credentials, csvPath string) (Outcome, error) {
	started := time.Now()
	outcome := Outcome{State: StateUnauthenticated}

	rows, err := interchange.Stat(im.fs, csvPath)
	if err != nil {
		return outcome, services.Wrap(services.ErrPrecondition, "import", "inspect interchange file", csvPath, err)
	}
	if rows == 0 {
		return outcome, services.Wrap(services.ErrPrecondition, "import", "inspect interchange file", csvPath+" has no records", nil)
	}
	outcome.Rows = rows

	logger := logging.WithContext(ctx, im.logger)
	logger.Info("launching browser",
		logging.Bool("headless", im.settings.Headless),
		logging.Int("rows", rows),
	)
	browser, err := im.launcher.Launch(ctx, LaunchOptions{
		Headless: im.settings.Headless,
		ExecPath: im.settings.BrowserPath,
	})
	if err != nil {
		return outcome, services.Wrap(services.ErrConfiguration, "import", "launch browser", "", err)
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			logger.Warn("browser release failed", logging.Error(cerr))
			return
		}
		logger.Debug("browser released")
	}()

	plan := Plan(im.settings, creds, csvPath)
	for i, tr := range plan {
		stageCtx := services.WithStage(ctx, string(tr.To))
		result, err := im.runTransition(stageCtx, browser, tr, i == len(plan)-1, &outcome)
		outcome.Transitions = append(outcome.Transitions, result)
		if err != nil {
			outcome.Duration = time.Since(started)
			return outcome, err
		}
		outcome.State = tr.To
	}

	if outcome.FinalURL == "" {
		outcome.FinalURL = currentURL(ctx, browser)
	}
	outcome.Duration = time.Since(started)
	logger.Info("letterboxd import finished",
		logging.String("state", string(outcome.State)),
		logging.Bool("confirmed", outcome.Confirmed),
		logging.Duration("elapsed", outcome.Duration),
	)
	return outcome, nil
}

func (im *Importer) runTransition(ctx context.Context, browser Browser, tr Transition, final bool, outcome *Outcome) (TransitionResult, error) {
	started := time.Now()
	result := TransitionResult{From: tr.From, To: tr.To}
	logger := logging.WithContext(ctx, im.logger)
	logger.Info("entering state", logging.String("from", string(tr.From)))

	for _, step := range tr.Steps {
		attrs := []logging.Attr{
			logging.String("step", step.Name),
			logging.String("kind", step.Kind.String()),
			logging.String("policy", step.Policy.String()),
			logging.Duration("timeout", step.Timeout),
		}
		if step.Kind == StepChooseFile {
			attrs = append(attrs, logging.String("path", step.Value))
		}
		logger.Debug("running step", logging.Args(attrs...)...)

		err := im.runStep(ctx, browser, step)
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Elapsed = time.Since(started)
			return result, fmt.Errorf("letterboxd %s -> %s: %w", tr.From, tr.To, ctxErr)
		}
		if step.Policy == PolicyAdvisory {
			result.Degraded = true
			outcome.Warnings = append(outcome.Warnings, step.Name+": "+err.Error())
			im.applyFallback(ctx, browser, step, err, outcome)
			continue
		}
		result.Elapsed = time.Since(started)
		if errors.Is(err, context.DeadlineExceeded) {
			return result, &WaitError{
				From:    tr.From,
				To:      tr.To,
				Step:    step.Name,
				Target:  step.Target,
				Timeout: step.Timeout,
				Err:     err,
			}
		}
		return result, services.Wrap(services.ErrTransport, "letterboxd", step.Name, "", err)
	}

	result.Elapsed = time.Since(started)
	if final {
		outcome.Confirmed = !result.Degraded
	}
	logger.Info("state reached", logging.Duration("elapsed", result.Elapsed), logging.Bool("degraded", result.Degraded))
	return result, nil
}

func (im *Importer) runStep(ctx context.Context, browser Browser, step Step) error {
	stepCtx, cancel := context.WithTimeout(ctx, step.Timeout)
	defer cancel()

	switch step.Kind {
	case StepNavigate:
		return browser.Navigate(stepCtx, step.URL)
	case StepFill:
		return browser.Fill(stepCtx, step.Target, step.Value)
	case StepClick:
		return browser.Click(stepCtx, step.Target)
	case StepWait:
		return browser.WaitVisible(stepCtx, step.Target)
	case StepChooseFile:
		return browser.UploadViaChooser(stepCtx, step.Target, step.Value)
	default:
		return fmt.Errorf("unsupported step kind %d", step.Kind)
	}
}

func (im *Importer) applyFallback(ctx context.Context, browser Browser, step Step, cause error, outcome *Outcome) {
	logger := logging.WithContext(ctx, im.logger)
	switch step.Fallback {
	case FallbackCheckURL:
		location := currentURL(ctx, browser)
		outcome.FinalURL = location
		if onImportPage(location) {
			logger.Warn("import summary not observed; still on import page, assuming success",
				logging.Alert("completion_unconfirmed"),
				logging.String("step", step.Name),
				logging.String("url", location),
				logging.Error(cause),
			)
			return
		}
		logger.Warn("import summary not observed; check the account manually",
			logging.Alert("completion_unknown"),
			logging.String("step", step.Name),
			logging.String("url", location),
			logging.Error(cause),
		)
	default:
		logger.Warn("advisory wait not satisfied; continuing",
			logging.Alert("advisory_timeout"),
			logging.String("step", step.Name),
			logging.String("target", step.Target.String()),
			logging.Error(cause),
		)
	}
}

// currentURL returns the page location, or "" when it cannot be read.
func currentURL(ctx context.Context, browser Browser) string {
	probeCtx, cancel := context.WithTimeout(ctx, urlProbeTimeout)
	defer cancel()
	location, err := browser.URL(probeCtx)
	if err != nil {
		return ""
	}
	return location
}
