package streak

import (
	"iter"
	"sort"
	"time"
)

// defaultChunkSize is how many days a bulk operation processes per batch
// when the caller does not say otherwise.
const defaultChunkSize = 250

// BatchOptions controls the chunked bulk operations. These exist for
// throughput and memory locality on large journals, not for concurrency.
type BatchOptions struct {
	// ChunkSize is the number of days processed per batch; 0 means the
	// default.
	ChunkSize int
	// SkipValidation bypasses per-entry integrity checks mid-batch. The
	// caller is expected to run a full validation afterwards.
	SkipValidation bool
}

func (o BatchOptions) chunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return defaultChunkSize
}

// BulkUpsertResult reports how a bulk operation went.
type BulkUpsertResult struct {
	Applied int
	Skipped int
}

// BulkUpsertEntries merges entries into the journal in chunks. With
// validation enabled, entries with a non-canonical date or no sources are
// skipped and counted rather than failing the batch.
func BulkUpsertEntries(h *EnhancedStreakHistory, entries []ReadingDayEntry, opts BatchOptions, now time.Time) BulkUpsertResult {
	var result BulkUpsertResult
	size := opts.chunkSize()

	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		for _, entry := range entries[start:end] {
			if !opts.SkipValidation {
				if !IsDayKey(entry.Date) || len(entry.Sources) == 0 {
					result.Skipped++
					continue
				}
			}
			if existing, ok := h.ReadingDayEntries[entry.Date]; ok {
				resolved, err := ResolveConflicts([]ReadingDayEntry{existing, entry})
				if err != nil {
					result.Skipped++
					continue
				}
				entry = resolved
			}
			entry.ModifiedAt = NewDate(now)
			h.ReadingDayEntries[entry.Date] = entry
			h.ReadingDays.Add(entry.Date)
			result.Applied++
		}
	}

	if result.Applied > 0 {
		h.LastSyncDate = NewDate(now)
	}
	return result
}

// BulkRemoveDays deletes days from the journal in chunks and returns how
// many were removed.
func BulkRemoveDays(h *EnhancedStreakHistory, days []string, opts BatchOptions, now time.Time) int {
	removed := 0
	size := opts.chunkSize()

	for start := 0; start < len(days); start += size {
		end := start + size
		if end > len(days) {
			end = len(days)
		}
		for _, day := range days[start:end] {
			if h.RemoveReadingDay(day, now) {
				removed++
			}
		}
	}
	return removed
}

// Entries yields the day map's entries in ascending date order without
// materializing intermediate entry lists.
func Entries(m ReadingDayMap) iter.Seq2[string, ReadingDayEntry] {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return func(yield func(string, ReadingDayEntry) bool) {
		for _, key := range keys {
			if !yield(key, m[key]) {
				return
			}
		}
	}
}

// FilterEntries yields, in ascending date order, only the entries the
// predicate keeps.
func FilterEntries(m ReadingDayMap, keep func(ReadingDayEntry) bool) iter.Seq2[string, ReadingDayEntry] {
	return func(yield func(string, ReadingDayEntry) bool) {
		for key, entry := range Entries(m) {
			if !keep(entry) {
				continue
			}
			if !yield(key, entry) {
				return
			}
		}
	}
}
