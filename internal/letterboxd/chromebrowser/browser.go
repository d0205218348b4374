// Package chromebrowser implements letterboxd.Browser on top of chromedp.
package chromebrowser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"jellyboxd/internal/letterboxd"
	"jellyboxd/internal/logging"
)

// Launcher starts Chrome or Chromium through chromedp.
type Launcher struct {
	logger *slog.Logger
}

// NewLauncher returns a launcher that forwards chromedp diagnostics to logger at debug level.
func NewLauncher(logger *slog.Logger) *Launcher {
	return &Launcher{logger: logging.NewComponentLogger(logger, "browser")}
}

// Launch starts a fresh browser process with a single tab. The process is
// detached from ctx so that cancellation still allows an orderly Close.
func (l *Launcher) Launch(ctx context.Context, opts letterboxd.LaunchOptions) (letterboxd.Browser, error) {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", opts.Headless),
		chromedp.WindowSize(1280, 900),
	)
	if path := strings.TrimSpace(opts.ExecPath); path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	debugf := func(format string, args ...any) {
		l.logger.Debug(fmt.Sprintf(format, args...))
	}
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(debugf), chromedp.WithErrorf(debugf))

	b := &Browser{ctx: tabCtx, cancelTab: cancelTab, cancelAlloc: cancelAlloc}
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(tabCtx) }()
	select {
	case err := <-started:
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("start browser: %w", err)
		}
	case <-ctx.Done():
		_ = b.Close()
		return nil, fmt.Errorf("start browser: %w", ctx.Err())
	}
	l.logger.Debug("browser started", logging.Bool("headless", opts.Headless))
	return b, nil
}

// Browser is one chromedp tab and the process that owns it.
type Browser struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// scope derives a context from the tab that also ends when the caller's ctx does.
func (b *Browser) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(b.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// run executes actions bounded by ctx. When ctx ended first its error is
// returned so callers see context.DeadlineExceeded rather than a tab error.
func (b *Browser) run(ctx context.Context, op string, actions ...chromedp.Action) error {
	runCtx, done := b.scope(ctx)
	defer done()
	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Navigate loads url in the tab and waits for the load event.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, "navigate to "+url, chromedp.Navigate(url))
}

// Fill waits for target to be visible, clears it, and types value.
func (b *Browser) Fill(ctx context.Context, target letterboxd.Locator, value string) error {
	sel, by := query(target)
	return b.run(ctx, "fill "+target.String(),
		chromedp.WaitVisible(sel, by),
		chromedp.Clear(sel, by),
		chromedp.SendKeys(sel, value, by),
	)
}

// Click clicks target once it is visible.
func (b *Browser) Click(ctx context.Context, target letterboxd.Locator) error {
	sel, by := query(target)
	return b.run(ctx, "click "+target.String(), chromedp.Click(sel, by, chromedp.NodeVisible))
}

// WaitVisible blocks until target is visible or ctx ends.
func (b *Browser) WaitVisible(ctx context.Context, target letterboxd.Locator) error {
	sel, by := query(target)
	return b.run(ctx, "wait for "+target.String(), chromedp.WaitVisible(sel, by))
}

// UploadViaChooser intercepts the file chooser opened by clicking trigger and
// sets paths on the input element behind it.
func (b *Browser) UploadViaChooser(ctx context.Context, trigger letterboxd.Locator, paths ...string) error {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve upload path %s: %w", p, err)
		}
		files = append(files, abs)
	}

	runCtx, done := b.scope(ctx)
	defer done()

	opened := make(chan cdp.BackendNodeID, 1)
	chromedp.ListenTarget(runCtx, func(ev any) {
		if e, ok := ev.(*page.EventFileChooserOpened); ok {
			select {
			case opened <- e.BackendNodeID:
			default:
			}
		}
	})

	sel, by := query(trigger)
	if err := b.run(ctx, "open file chooser via "+trigger.String(),
		page.SetInterceptFileChooserDialog(true),
		chromedp.Click(sel, by, chromedp.NodeVisible),
	); err != nil {
		return err
	}

	select {
	case nodeID := <-opened:
		return b.run(ctx, "set chooser files", dom.SetFileInputFiles(files).WithBackendNodeID(nodeID))
	case <-runCtx.Done():
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("wait for file chooser: %w", ctxErr)
		}
		return fmt.Errorf("wait for file chooser: %w", runCtx.Err())
	}
}

// URL returns the tab's current location.
func (b *Browser) URL(ctx context.Context) (string, error) {
	var location string
	if err := b.run(ctx, "read location", chromedp.Location(&location)); err != nil {
		return "", err
	}
	return location, nil
}

// Close shuts the browser down and waits for the process to exit.
func (b *Browser) Close() error {
	err := chromedp.Cancel(b.ctx)
	b.cancelTab()
	b.cancelAlloc()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

const (
	upperAlpha = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerAlpha = "abcdefghijklmnopqrstuvwxyz"
)

// query maps a locator to a chromedp selector. Text locators become an XPath
// search over the element's full text content, descendants included, ignoring
// ASCII case and surrounding whitespace.
func query(l letterboxd.Locator) (string, chromedp.QueryOption) {
	if l.CSS != "" {
		return l.CSS, chromedp.ByQuery
	}
	return textXPath(l.Tag, l.Text), chromedp.BySearch
}

// textXPath matches a tag whose text contains text. Without a tag it matches
// the innermost element containing text, so ancestors such as body never win.
func textXPath(tag, text string) string {
	needle := xpathLiteral(strings.ToLower(strings.Join(strings.Fields(text), " ")))
	contains := fmt.Sprintf("contains(translate(normalize-space(.), '%s', '%s'), %s)", upperAlpha, lowerAlpha, needle)
	if tag == "" {
		return fmt.Sprintf("//*[%s and not(*[%s])]", contains, contains)
	}
	return fmt.Sprintf("//%s[%s]", tag, contains)
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

var (
	_ letterboxd.Launcher = (*Launcher)(nil)
	_ letterboxd.Browser  = (*Browser)(nil)
)
