package letterboxd

import (
	"context"
	"fmt"
)

// Locator identifies a page element either by CSS selector or by the
// case-insensitive text it directly contains, optionally limited to a tag.
type Locator struct {
	CSS  string
	Tag  string
	Text string
}

// CSS locates elements matching a CSS selector (comma lists allowed).
func CSS(selector string) Locator {
	return Locator{CSS: selector}
}

// TextIn locates a tag element whose own text contains text. An empty tag
// matches any element.
func TextIn(tag, text string) Locator {
	return Locator{Tag: tag, Text: text}
}

func (l Locator) String() string {
	if l.CSS != "" {
		return l.CSS
	}
	tag := l.Tag
	if tag == "" {
		tag = "*"
	}
	return fmt.Sprintf("%s:has-text(%q)", tag, l.Text)
}

// Browser is the automation surface the importer needs. Every method honours
// the deadline on ctx and returns an error wrapping context.DeadlineExceeded
// when it expires.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, target Locator, value string) error
	Click(ctx context.Context, target Locator) error
	// WaitVisible blocks until target is rendered and visible.
	WaitVisible(ctx context.Context, target Locator) error
	// UploadViaChooser clicks trigger, intercepts the native file dialog it
	// opens, and hands it paths.
	UploadViaChooser(ctx context.Context, trigger Locator, paths ...string) error
	URL(ctx context.Context) (string, error)
	Close() error
}

// LaunchOptions configures a new browser session.
type LaunchOptions struct {
	Headless bool
	ExecPath string
}

// Launcher starts an exclusively owned browser session.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Browser, error)
}
