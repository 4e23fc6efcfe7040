package streak

import (
	"sort"
	"strconv"
	"strings"
)

const notesSeparator = "; "

// ResolveConflicts merges one or more candidate entries for the same date
// into a single entry. All sources are retained, re-ordered by descending
// kind priority with ties broken by encounter order. BookIDs become the
// order-preserving de-duplicated union across candidates, and distinct
// non-empty notes are joined.
//
// An empty input is a caller error.
func ResolveConflicts(entries []ReadingDayEntry) (ReadingDayEntry, error) {
	return resolveConflicts(entries, byPriority)
}

// ResolveConflictsAdvanced behaves like ResolveConflicts but additionally
// weighs recency and a "confidence" metadata hint when two sources share the
// same priority tier. Priority order remains the dominant factor.
func ResolveConflictsAdvanced(entries []ReadingDayEntry) (ReadingDayEntry, error) {
	return resolveConflicts(entries, byPriorityThenRecency)
}

func resolveConflicts(entries []ReadingDayEntry, less func(a, b ReadingDataSource) bool) (ReadingDayEntry, error) {
	if len(entries) == 0 {
		return ReadingDayEntry{}, &EmptyInputError{Operation: "conflict resolution"}
	}

	resolved := ReadingDayEntry{Date: entries[0].Date}

	var sources []ReadingDataSource
	seenBooks := make(map[string]struct{})
	seenNotes := make(map[string]struct{})
	var notes []string

	for _, entry := range entries {
		sources = append(sources, entry.Sources...)

		for _, id := range entry.BookIDs {
			if _, ok := seenBooks[id]; ok {
				continue
			}
			seenBooks[id] = struct{}{}
			resolved.BookIDs = append(resolved.BookIDs, id)
		}

		note := strings.TrimSpace(entry.Notes)
		if note != "" {
			if _, ok := seenNotes[note]; !ok {
				seenNotes[note] = struct{}{}
				notes = append(notes, note)
			}
		}

		if !entry.CreatedAt.IsZero() &&
			(resolved.CreatedAt.IsZero() || entry.CreatedAt.Before(resolved.CreatedAt.Time)) {
			resolved.CreatedAt = entry.CreatedAt
		}
		if entry.ModifiedAt.After(resolved.ModifiedAt.Time) {
			resolved.ModifiedAt = entry.ModifiedAt
		}
	}

	// Sources tagged with a book the entry does not list yet extend the union.
	for _, src := range sources {
		if src.BookID == "" {
			continue
		}
		if _, ok := seenBooks[src.BookID]; ok {
			continue
		}
		seenBooks[src.BookID] = struct{}{}
		resolved.BookIDs = append(resolved.BookIDs, src.BookID)
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return less(sources[i], sources[j])
	})
	resolved.Sources = sources
	resolved.Notes = strings.Join(notes, notesSeparator)

	return resolved, nil
}

func byPriority(a, b ReadingDataSource) bool {
	return a.Kind.Priority() > b.Kind.Priority()
}

func byPriorityThenRecency(a, b ReadingDataSource) bool {
	if a.Kind.Priority() != b.Kind.Priority() {
		return a.Kind.Priority() > b.Kind.Priority()
	}
	if !a.Timestamp.Equal(b.Timestamp.Time) {
		return a.Timestamp.After(b.Timestamp.Time)
	}
	return confidence(a) > confidence(b)
}

// confidence reads an optional 0-1 confidence hint from source metadata.
func confidence(src ReadingDataSource) float64 {
	raw, ok := src.Metadata["confidence"]
	if !ok {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
