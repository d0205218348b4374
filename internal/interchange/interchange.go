package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Header is the fixed column row of the interchange file.
var Header = []string{"Title", "Year", "WatchedDate"}

// Record is one canonical watched title. Year is empty when unknown and
// WatchedDate is a YYYY-MM-DD date with no time or zone.
type Record struct {
	Title       string
	Year        string
	WatchedDate string
}

// Write replaces path with the header plus one row per record, in order.
// The file is written to a sibling temp file first and renamed into place so
// a failed export never leaves a truncated file for the importer.
func Write(fsys afero.Fs, path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create interchange directory: %w", err)
		}
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create interchange temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = fsys.Remove(tmpName) }

	if err := encode(tmp, records); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close interchange temp file: %w", err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("move interchange file into place: %w", err)
	}
	return nil
}

func encode(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write interchange header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write([]string{rec.Title, rec.Year, rec.WatchedDate}); err != nil {
			return fmt.Errorf("write interchange row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush interchange file: %w", err)
	}
	return nil
}

// Read parses an interchange file back into records. It rejects files whose
// header is not exactly Header. encoding/csv folds a CRLF pair inside a quoted
// field to LF on read; a lone CR survives.
func Read(fsys afero.Fs, path string) ([]Record, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interchange file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("interchange file %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read interchange header: %w", err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("interchange file %s has header %q, want %q", path, header, Header)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read interchange row: %w", err)
		}
		records = append(records, Record{Title: row[0], Year: row[1], WatchedDate: row[2]})
	}
	return records, nil
}

// Stat reports whether path exists as a regular file and how many data rows
// it holds. A missing file yields (0, os.ErrNotExist).
func Stat(fsys afero.Fs, path string) (int, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("interchange path %s is a directory", path)
	}
	records, err := Read(fsys, path)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
