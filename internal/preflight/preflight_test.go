package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jellyboxd/internal/config"
	"jellyboxd/internal/services/jellyfin"
	"jellyboxd/internal/testsupport"
)

func newJellyfinServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Emby-Token") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"Id":"u-1","Name":"alice"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func jellyfinSection(url, key, user string) config.Jellyfin {
	return config.Jellyfin{URL: url, APIKey: key, User: user, RequestTimeout: 5}
}

func TestCheckInterchangeDir_Existing(t *testing.T) {
	result := CheckInterchangeDir("test", filepath.Join(t.TempDir(), "out.csv"))
	if !result.Passed || !strings.Contains(result.Detail, "write ok") {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckInterchangeDir_WillBeCreated(t *testing.T) {
	result := CheckInterchangeDir("test", filepath.Join(t.TempDir(), "a", "b", "out.csv"))
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
}

func TestCheckInterchangeDir_ParentIsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckInterchangeDir("test", filepath.Join(f, "out.csv"))
	if result.Passed {
		t.Fatal("expected failure when parent is a file")
	}
}

func TestCheckJellyfin_OK(t *testing.T) {
	srv := newJellyfinServer(t)
	client := jellyfin.NewClient(srv.URL, "good-key", srv.Client())

	result := CheckJellyfin(context.Background(), client, jellyfinSection(srv.URL, "good-key", "alice"))
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "u-1") {
		t.Fatalf("expected resolved user id in detail, got %q", result.Detail)
	}
}

func TestCheckJellyfin_BadKey(t *testing.T) {
	srv := newJellyfinServer(t)
	client := jellyfin.NewClient(srv.URL, "bad", srv.Client())

	result := CheckJellyfin(context.Background(), client, jellyfinSection(srv.URL, "bad", "alice"))
	if result.Passed || !strings.Contains(result.Detail, "invalid api key") {
		t.Fatalf("expected auth failure, got: %+v", result)
	}
}

func TestCheckJellyfin_UnknownUser(t *testing.T) {
	srv := newJellyfinServer(t)
	client := jellyfin.NewClient(srv.URL, "good-key", srv.Client())

	result := CheckJellyfin(context.Background(), client, jellyfinSection(srv.URL, "good-key", "bob"))
	if result.Passed || !strings.Contains(result.Detail, "not found") {
		t.Fatalf("expected unknown user failure, got: %+v", result)
	}
}

func TestCheckJellyfin_MissingSettings(t *testing.T) {
	client := jellyfin.NewClient("", "", nil)
	tests := map[string]config.Jellyfin{
		"missing url":     jellyfinSection("", "k", "u"),
		"missing api key": jellyfinSection("http://x", "", "u"),
		"missing user":    jellyfinSection("http://x", "k", ""),
	}
	for want, section := range tests {
		result := CheckJellyfin(context.Background(), client, section)
		if result.Passed || result.Detail != want {
			t.Fatalf("expected %q, got %+v", want, result)
		}
	}
}

func TestCheckLetterboxd_AnyResponseIsReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sign-in/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	result := CheckLetterboxd(context.Background(), srv.Client(), srv.URL+"/")
	if !result.Passed || !strings.Contains(result.Detail, "403") {
		t.Fatalf("expected reachable with status, got %+v", result)
	}
}

func TestCheckLetterboxd_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	result := CheckLetterboxd(context.Background(), http.DefaultClient, url)
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil for nil config, got %v", results)
	}
}

func TestRunAll_AllPass(t *testing.T) {
	jf := newJellyfinServer(t)
	lb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer lb.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithJellyfin(jf.URL, "good-key", "alice"),
		testsupport.WithLetterboxdBaseURL(lb.URL),
		testsupport.WithStubbedBinaries(),
	)

	results := RunAll(context.Background(), cfg)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		if !r.Passed {
			t.Fatalf("check %s failed: %s", r.Name, r.Detail)
		}
	}
	if got := strings.Join(names, ","); got != "Interchange directory,Jellyfin,Letterboxd,Browser" {
		t.Fatalf("unexpected checks: %s", got)
	}
	if Failed(results) {
		t.Fatal("Failed reported a failure for passing results")
	}
}

func TestRunAll_ReportsMissingBrowser(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("unrelated-tool"))
	cfg.Jellyfin.URL = ""
	cfg.Letterboxd.BaseURL = ""

	results := RunAll(context.Background(), cfg)
	if !Failed(results) {
		t.Fatal("expected failures")
	}
	for _, r := range results {
		if r.Name == "Browser" && r.Passed {
			t.Fatalf("expected browser check to fail, got %+v", r)
		}
	}
}
