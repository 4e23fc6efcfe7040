package streak

import "time"

// FixResult reports what an auto-fix pass changed. Failed counts problems
// the pass could not repair; it never surfaces them as errors so the caller
// can decide whether to proceed with a partially healed journal.
type FixResult struct {
	History *EnhancedStreakHistory
	Fixed   int
	Failed  int
}

// AutoFixIssues applies deterministic, idempotent repairs to a journal:
// rebuilding a missing day index, defaulting missing metadata, collapsing
// duplicate per-date entries, renormalizing parseable keys, and
// synchronizing the day index with the entry map in both directions.
//
// It never invents reading activity that was not present in some form in
// the input, and it never returns an error for malformed input.
func (v *Validator) AutoFixIssues(history *EnhancedStreakHistory) FixResult {
	now := v.now()

	if history == nil {
		return FixResult{History: NewEnhancedStreakHistory(now), Failed: 1}
	}
	result := FixResult{History: history}

	if history.ReadingDayEntries == nil {
		history.ReadingDayEntries = make(ReadingDayMap)
		result.Fixed++
	}
	if history.ReadingDays == nil {
		history.ReadingDays = make(DaySet)
		for key := range history.ReadingDayEntries {
			history.ReadingDays.Add(key)
		}
		result.Fixed++
	}

	fixMetadata(history, now, &result)
	renormalizeKeys(history, &result)
	collapseDuplicates(history, &result)
	fixEntryFields(history, &result)
	syncIndex(history, now, &result)

	return result
}

func fixMetadata(history *EnhancedStreakHistory, now time.Time, result *FixResult) {
	if history.Version == 0 {
		history.Version = CurrentSchemaVersion
		result.Fixed++
	}
	if history.LastSyncDate.IsZero() {
		history.LastSyncDate = NewDate(now)
		result.Fixed++
	}
	if history.LastCalculated.IsZero() {
		history.LastCalculated = NewDate(now)
		result.Fixed++
	}
}

// renormalizeKeys rewrites non-canonical but parseable day keys to
// YYYY-MM-DD. Keys that parse as no known date format cannot be repaired
// without guessing, so they count as failed and are left in place.
func renormalizeKeys(history *EnhancedStreakHistory, result *FixResult) {
	for key, entry := range history.ReadingDayEntries {
		if IsDayKey(key) {
			continue
		}
		parsed, err := parseTimestamp(key)
		if err != nil {
			result.Failed++
			continue
		}
		canonical := DayKey(parsed)
		delete(history.ReadingDayEntries, key)
		delete(history.ReadingDays, key)

		entry.Date = canonical
		if existing, ok := history.ReadingDayEntries[canonical]; ok {
			history.ReadingDayEntries[canonical] = pickRicher(existing, entry)
		} else {
			history.ReadingDayEntries[canonical] = entry
		}
		history.ReadingDays.Add(canonical)
		result.Fixed++
	}
}

// collapseDuplicates folds entries whose keys normalize to the same
// calendar day into one. With canonical keys the map cannot hold literal
// duplicates, so after renormalizeKeys this is a no-op; it exists for the
// degenerate journals the validator flags as duplicate_entry.
func collapseDuplicates(history *EnhancedStreakHistory, result *FixResult) {
	byDay := make(map[string][]string)
	for key := range history.ReadingDayEntries {
		day, err := ParseDay(key)
		if err != nil {
			continue
		}
		canonical := DayKey(day)
		byDay[canonical] = append(byDay[canonical], key)
	}

	for canonical, keys := range byDay {
		if len(keys) == 1 && keys[0] == canonical {
			continue
		}
		winner := history.ReadingDayEntries[keys[0]]
		for _, key := range keys[1:] {
			winner = pickRicher(winner, history.ReadingDayEntries[key])
		}
		for _, key := range keys {
			delete(history.ReadingDayEntries, key)
			delete(history.ReadingDays, key)
		}
		winner.Date = canonical
		history.ReadingDayEntries[canonical] = winner
		history.ReadingDays.Add(canonical)
		result.Fixed++
	}
}

// pickRicher keeps the entry with the later modified_at, falling back to
// the one with richer content (book ids, then sources, then notes).
func pickRicher(a, b ReadingDayEntry) ReadingDayEntry {
	if !a.ModifiedAt.Equal(b.ModifiedAt.Time) {
		if b.ModifiedAt.After(a.ModifiedAt.Time) {
			return b
		}
		return a
	}
	if len(b.BookIDs) != len(a.BookIDs) {
		if len(b.BookIDs) > len(a.BookIDs) {
			return b
		}
		return a
	}
	if len(b.Sources) != len(a.Sources) {
		if len(b.Sources) > len(a.Sources) {
			return b
		}
		return a
	}
	if len(b.Notes) > len(a.Notes) {
		return b
	}
	return a
}

// fixEntryFields aligns each entry's date field with its key and removes
// duplicate book ids, preserving first occurrence.
func fixEntryFields(history *EnhancedStreakHistory, result *FixResult) {
	for key, entry := range history.ReadingDayEntries {
		changed := false
		if entry.Date != key {
			entry.Date = key
			changed = true
		}

		seen := make(map[string]struct{}, len(entry.BookIDs))
		deduped := entry.BookIDs[:0:0]
		for _, id := range entry.BookIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			deduped = append(deduped, id)
		}
		if len(deduped) != len(entry.BookIDs) {
			entry.BookIDs = deduped
			changed = true
		}

		if changed {
			history.ReadingDayEntries[key] = entry
			result.Fixed++
		}
	}
}

// syncIndex reconciles the day index with the entry map bidirectionally.
// An indexed day without an entry gets a manual-sourced entry, the same
// shape the legacy migrator produces; the day was recorded, so this
// reconciles structure without inventing activity.
func syncIndex(history *EnhancedStreakHistory, now time.Time, result *FixResult) {
	for key := range history.ReadingDayEntries {
		if !history.ReadingDays.Has(key) {
			history.ReadingDays.Add(key)
			result.Fixed++
		}
	}
	for day := range history.ReadingDays {
		if _, ok := history.ReadingDayEntries[day]; ok {
			continue
		}
		parsed, err := parseTimestamp(day)
		if err != nil {
			result.Failed++
			continue
		}
		history.ReadingDayEntries[day] = manualEntry(day, startOfDay(parsed), now)
		result.Fixed++
	}
}
