package streak

import "time"

// manualEntry builds the canonical manual-sourced entry for a day.
func manualEntry(key string, day, now time.Time) ReadingDayEntry {
	return ReadingDayEntry{
		Date: key,
		Sources: []ReadingDataSource{{
			Kind:      SourceManual,
			Timestamp: NewDate(day),
			CreatedAt: NewDate(now),
		}},
		CreatedAt:  NewDate(now),
		ModifiedAt: NewDate(now),
	}
}

// Migrator upgrades the coarse legacy streak record into the per-day
// journal format.
type Migrator struct {
	now Clock
}

// NewMigrator creates a Migrator. A nil clock falls back to time.Now.
func NewMigrator(now Clock) *Migrator {
	if now == nil {
		now = time.Now
	}
	return &Migrator{now: now}
}

// MigrateStreakHistory converts a flat legacy day set into a journal with
// one manual-sourced entry per day. Purely additive: every legacy day
// appears in the result, and book periods are preserved as-is.
func (m *Migrator) MigrateStreakHistory(legacy LegacyStreakHistory) *EnhancedStreakHistory {
	now := m.now()
	history := NewEnhancedStreakHistory(now)
	history.BookPeriods = append(history.BookPeriods, legacy.BookPeriods...)

	for day := range legacy.ReadingDays {
		key := day
		parsed, err := parseTimestamp(day)
		if err != nil {
			// keep the raw key so no legacy day is lost; the validator
			// will flag it and auto-fix will renormalize what it can
			parsed = time.Time{}
		} else {
			key = DayKey(parsed)
		}
		history.ReadingDayEntries[key] = manualEntry(key, startOfDay(parsed), now)
		history.ReadingDays.Add(key)
	}

	return history
}
