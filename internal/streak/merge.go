package streak

import (
	"time"

	"github.com/mushfoo/puka-sub002/internal/book"
)

// progressUpdateWindowDays bounds how far back a book modification still
// counts as reading activity. Older edits are treated as stale metadata
// changes, not reading.
const progressUpdateWindowDays = 7

// Merger combines heterogeneous reading signals into one per-day map.
type Merger struct {
	now Clock
}

// NewMerger creates a Merger. A nil clock falls back to time.Now.
func NewMerger(now Clock) *Merger {
	if now == nil {
		now = time.Now
	}
	return &Merger{now: now}
}

// MergeReadingData combines three contributions into a single day map:
// manual check-ins from the legacy history, completion periods of finished
// books, and recent progress updates on books currently being read. Dates
// produced by more than one contribution are resolved by source priority.
func (m *Merger) MergeReadingData(legacy LegacyStreakHistory, books []book.Book) ReadingDayMap {
	candidates := make(map[string][]ReadingDayEntry)

	m.collectManualDays(legacy, candidates)
	m.collectBookCompletions(books, candidates)
	m.collectProgressUpdates(books, candidates)

	merged := make(ReadingDayMap, len(candidates))
	for day, entries := range candidates {
		if len(entries) == 1 {
			merged[day] = entries[0]
			continue
		}
		resolved, err := ResolveConflicts(entries)
		if err != nil {
			// unreachable: every candidate list has at least one entry
			continue
		}
		merged[day] = resolved
	}
	return merged
}

func (m *Merger) collectManualDays(legacy LegacyStreakHistory, candidates map[string][]ReadingDayEntry) {
	for day := range legacy.ReadingDays {
		parsed, err := parseTimestamp(day)
		if err != nil {
			continue
		}
		key := DayKey(parsed)
		candidates[key] = append(candidates[key], ReadingDayEntry{
			Date: key,
			Sources: []ReadingDataSource{{
				Kind:      SourceManual,
				Timestamp: NewDate(startOfDay(parsed)),
			}},
		})
	}
}

// collectBookCompletions credits every day of a finished book's reading
// period. Only books marked finished with both dates contribute here.
func (m *Merger) collectBookCompletions(books []book.Book, candidates map[string][]ReadingDayEntry) {
	finished := make([]book.Book, 0, len(books))
	for _, b := range books {
		if b.Status == book.StatusFinished {
			finished = append(finished, b)
		}
	}

	for _, period := range ExtractReadingPeriods(finished) {
		for d := period.StartDate.Time; !d.After(period.EndDate.Time); d = d.AddDate(0, 0, 1) {
			key := DayKey(d)
			candidates[key] = append(candidates[key], ReadingDayEntry{
				Date: key,
				Sources: []ReadingDataSource{{
					Kind:      SourceBookCompletion,
					Timestamp: NewDate(d),
					BookID:    period.BookID,
				}},
				BookIDs: []string{period.BookID},
			})
		}
	}
}

// collectProgressUpdates credits recent modifications on books currently in
// progress. A book with a start date but no finish date contributes a span
// from its start through its modification date; it has not been marked
// finished, so the span stays progress_update-sourced. Modifications older
// than the window are excluded.
func (m *Merger) collectProgressUpdates(books []book.Book, candidates map[string][]ReadingDayEntry) {
	today := startOfDay(m.now())

	for _, b := range books {
		if b.Status != book.StatusCurrentlyReading || b.DateModified == "" {
			continue
		}
		modified, err := parseTimestamp(b.DateModified)
		if err != nil {
			continue
		}
		modified = startOfDay(modified)
		if daysBetween(modified, today) > progressUpdateWindowDays {
			continue
		}

		span := []time.Time{modified}
		if b.DateStarted != "" && b.DateFinished == "" {
			if started, err := parseTimestamp(b.DateStarted); err == nil {
				started = startOfDay(started)
				if !started.After(modified) {
					span = span[:0]
					for d := started; !d.After(modified); d = d.AddDate(0, 0, 1) {
						span = append(span, d)
					}
				}
			}
		}

		for _, d := range span {
			key := DayKey(d)
			candidates[key] = append(candidates[key], ReadingDayEntry{
				Date: key,
				Sources: []ReadingDataSource{{
					Kind:      SourceProgressUpdate,
					Timestamp: NewDate(modified),
					BookID:    b.ID,
				}},
				BookIDs: []string{b.ID},
			})
		}
	}
}
