package testsupport

import (
	"testing"

	"github.com/spf13/afero"

	"jellyboxd/internal/interchange"
)

// WriteInterchange writes records to path on the real filesystem.
func WriteInterchange(t testing.TB, path string, records ...interchange.Record) {
	t.Helper()
	if err := interchange.Write(afero.NewOsFs(), path, records); err != nil {
		t.Fatalf("write interchange %s: %v", path, err)
	}
}

// SampleRecords is the canonical two-record export used across tests.
func SampleRecords() []interchange.Record {
	return []interchange.Record{
		{Title: "Arrival", Year: "2016", WatchedDate: "2023-05-01"},
		{Title: "The Wire", Year: "2002", WatchedDate: "2023-06-01"},
	}
}
