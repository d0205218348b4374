package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"jellyboxd/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransport, "collect", "list users", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"collect", "list users", "request failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "unspecified failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{services.Wrap(services.ErrConfiguration, "cli", "", "missing", nil), "configuration"},
		{services.Wrap(services.ErrNotFound, "collect", "", "user", nil), "precondition"},
		{services.Wrap(services.ErrPrecondition, "import", "", "empty", nil), "precondition"},
		{fmt.Errorf("outer: %w", services.Wrap(services.ErrTimeout, "import", "", "login", nil)), "timeout"},
		{services.Wrap(services.ErrTransport, "collect", "", "500", nil), "transport"},
		{errors.New("plain"), "unknown"},
	}
	for _, tt := range tests {
		if got := services.Classify(tt.err); got != tt.want {
			t.Fatalf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
