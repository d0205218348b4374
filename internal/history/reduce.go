package history

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jellyboxd/internal/interchange"
	"jellyboxd/internal/services"
	"jellyboxd/internal/services/jellyfin"
)

const dateLayout = "2006-01-02"

// ItemError reports a watched item that cannot be turned into a record.
type ItemError struct {
	Index  int
	ItemID string
	Name   string
	Field  string
	Reason string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("watched item %d (id=%s name=%q): %s %s", e.Index, e.ItemID, e.Name, e.Field, e.Reason)
}

// Is lets errors.Is(err, services.ErrPrecondition) match.
func (e *ItemError) Is(target error) bool {
	return target == services.ErrPrecondition
}

// Key is the canonical identity of a watched title.
type Key struct {
	Title string
	Year  string
}

// CanonicalKey derives the dedup key for an item: series name for episodes,
// item name otherwise, and the production year or "" when unknown.
func CanonicalKey(item jellyfin.Item) Key {
	title := item.Name
	if item.IsEpisode() {
		title = item.SeriesName
	}
	year := ""
	if item.ProductionYear != nil {
		year = strconv.Itoa(*item.ProductionYear)
	}
	return Key{Title: title, Year: year}
}

// WatchedDate returns the date portion of the item's last-played timestamp.
func WatchedDate(item jellyfin.Item) (string, error) {
	if item.UserData == nil || strings.TrimSpace(item.UserData.LastPlayedDate) == "" {
		return "", errors.New("missing")
	}
	date, _, _ := strings.Cut(strings.TrimSpace(item.UserData.LastPlayedDate), "T")
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("%q is not an ISO-8601 date", item.UserData.LastPlayedDate)
	}
	return date, nil
}

// Reduce collapses items into canonical records, keeping the first item seen
// for each Key and preserving first-seen order. Later duplicates are dropped
// even when their watched date is more recent. Every item, duplicate or not,
// must carry a last-played date and a non-blank title.
func Reduce(items []jellyfin.Item) ([]interchange.Record, error) {
	seen := make(map[Key]struct{}, len(items))
	records := make([]interchange.Record, 0, len(items))

	for i, item := range items {
		switch {
		case item.IsEpisode() && strings.TrimSpace(item.SeriesName) == "":
			return nil, &ItemError{Index: i, ItemID: item.ID, Name: item.Name, Field: "SeriesName", Reason: "missing on episode"}
		case !item.IsEpisode() && strings.TrimSpace(item.Name) == "":
			return nil, &ItemError{Index: i, ItemID: item.ID, Field: "Name", Reason: "missing on movie"}
		}
		date, err := WatchedDate(item)
		if err != nil {
			return nil, &ItemError{Index: i, ItemID: item.ID, Name: item.Name, Field: "UserData.LastPlayedDate", Reason: err.Error()}
		}
		key := CanonicalKey(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		records = append(records, interchange.Record{
			Title:       key.Title,
			Year:        key.Year,
			WatchedDate: date,
		})
	}
	return records, nil
}
