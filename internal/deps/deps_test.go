package deps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return target
}

func TestLocate(t *testing.T) {
	present := writeStub(t, t.TempDir(), "present")

	status := Locate("Present", "clearly-not-present-binary", present)
	if !status.Available || status.Path != present || status.Detail != "" {
		t.Fatalf("unexpected status for present binary: %#v", status)
	}

	status = Locate("Missing", "clearly-not-present-binary")
	if status.Available || status.Detail != `binary "clearly-not-present-binary" not found` {
		t.Fatalf("unexpected status for missing binary: %#v", status)
	}

	status = Locate("Unset", "  ")
	if status.Available || status.Detail != "command not configured" {
		t.Fatalf("unexpected status for unset command: %#v", status)
	}
}

func TestCheckBrowserUsesConfiguredPath(t *testing.T) {
	browser := writeStub(t, t.TempDir(), "my-chrome")
	status := CheckBrowser(browser)
	if !status.Available || status.Path != browser {
		t.Fatalf("expected configured browser to resolve, got %#v", status)
	}

	status = CheckBrowser(filepath.Join(t.TempDir(), "absent-chrome"))
	if status.Available {
		t.Fatal("expected missing configured browser to be unavailable")
	}
}

func TestCheckBrowserProbesCandidatesInOrder(t *testing.T) {
	binDir := t.TempDir()
	writeStub(t, binDir, "chromium")
	want := writeStub(t, binDir, "google-chrome-stable")
	t.Setenv("PATH", binDir)

	status := CheckBrowser("")
	if !status.Available || status.Path != want {
		t.Fatalf("expected %s, got %#v", want, status)
	}
}

func TestCheckBrowserNoneFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	status := CheckBrowser("")
	if status.Available || !strings.Contains(status.Detail, "letterboxd.browser_path") {
		t.Fatalf("expected unavailable browser with config hint, got %#v", status)
	}
}
