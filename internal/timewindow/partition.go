package timewindow

import (
	"strings"
	"time"
)

// Tagged wraps a record surviving the window filter with the bucket it
// landed in.
type Tagged[T any] struct {
	Item            T
	CreatedInPeriod bool
}

// Accessors extracts the fields Partition needs from a record. Timestamps
// are the raw ISO-8601 strings; an absent field is the empty string.
type Accessors[T any] struct {
	Number    func(T) int
	CreatedAt func(T) string
	UpdatedAt func(T) string
}

// Result carries the partitioned records plus the bucket counts for logging.
type Result[T any] struct {
	Records []Tagged[T]
	Created int
	Updated int
}

// Partition splits records into "created in period" and "updated but not
// created in period" and merges the two buckets, created first, deduplicated
// by number with the first occurrence winning. A record whose created
// timestamp is missing or unparsable is dropped from both buckets. A record
// counts as updated only when its updated timestamp differs from its created
// timestamp. Re-running Partition on its own output with the same window
// yields the same output.
func Partition[T any](items []T, w Window, acc Accessors[T]) Result[T] {
	var created, updated []T

	for _, item := range items {
		createdAt, ok := parseTimestamp(acc.CreatedAt(item))
		if !ok {
			continue
		}
		updatedAt, ok := parseTimestamp(acc.UpdatedAt(item))
		if !ok {
			updatedAt = createdAt
		}

		switch {
		case w.Contains(createdAt):
			created = append(created, item)
		case w.Contains(updatedAt) && !updatedAt.Equal(createdAt):
			updated = append(updated, item)
		}
	}

	result := Result[T]{Created: len(created), Updated: len(updated)}
	seen := make(map[int]bool)
	appendUnique := func(items []T, createdInPeriod bool) {
		for _, item := range items {
			number := acc.Number(item)
			if number == 0 || seen[number] {
				continue
			}
			seen[number] = true
			result.Records = append(result.Records, Tagged[T]{Item: item, CreatedInPeriod: createdInPeriod})
		}
	}
	appendUnique(created, true)
	appendUnique(updated, false)

	return result
}

// FilterCreated keeps only the records whose created timestamp falls inside
// the window. Pull requests use this instead of Partition: a PR is reported
// in the period it was opened, not re-reported on later pushes.
func FilterCreated[T any](items []T, w Window, createdAt func(T) string) []Tagged[T] {
	var kept []Tagged[T]
	for _, item := range items {
		created, ok := parseTimestamp(createdAt(item))
		if !ok {
			continue
		}
		if w.Contains(created) {
			kept = append(kept, Tagged[T]{Item: item, CreatedInPeriod: true})
		}
	}
	return kept
}

// parseTimestamp parses an ISO-8601 timestamp. A trailing Z is normalized to
// an explicit +00:00 offset before parsing. Empty or malformed input reports
// ok=false.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
