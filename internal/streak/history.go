package streak

import "time"

// AddReadingDay inserts an entry into the journal, merging with any
// existing entry for the same date by conflict resolution. The day index
// stays in sync.
func (h *EnhancedStreakHistory) AddReadingDay(entry ReadingDayEntry, now time.Time) error {
	if _, err := ParseDay(entry.Date); err != nil {
		return err
	}
	if len(entry.Sources) == 0 {
		return &EmptyInputError{Operation: "adding a reading day"}
	}

	if existing, ok := h.ReadingDayEntries[entry.Date]; ok {
		resolved, err := ResolveConflicts([]ReadingDayEntry{existing, entry})
		if err != nil {
			return err
		}
		entry = resolved
	}
	entry.ModifiedAt = NewDate(now)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = NewDate(now)
	}

	h.ReadingDayEntries[entry.Date] = entry
	h.ReadingDays.Add(entry.Date)
	h.LastSyncDate = NewDate(now)
	return nil
}

// SetReadingDay replaces the entry for a date without merging.
func (h *EnhancedStreakHistory) SetReadingDay(entry ReadingDayEntry, now time.Time) error {
	if _, err := ParseDay(entry.Date); err != nil {
		return err
	}
	if len(entry.Sources) == 0 {
		return &EmptyInputError{Operation: "setting a reading day"}
	}
	entry.ModifiedAt = NewDate(now)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = NewDate(now)
	}
	h.ReadingDayEntries[entry.Date] = entry
	h.ReadingDays.Add(entry.Date)
	h.LastSyncDate = NewDate(now)
	return nil
}

// RemoveReadingDay deletes a day from both the entry map and the index.
// It reports whether anything was removed.
func (h *EnhancedStreakHistory) RemoveReadingDay(day string, now time.Time) bool {
	_, hadEntry := h.ReadingDayEntries[day]
	hadIndex := h.ReadingDays.Has(day)
	if !hadEntry && !hadIndex {
		return false
	}
	delete(h.ReadingDayEntries, day)
	delete(h.ReadingDays, day)
	h.LastSyncDate = NewDate(now)
	return true
}
