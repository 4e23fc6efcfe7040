// Package streak implements the reading activity reconciliation engine:
// merging heterogeneous reading signals into a per-day journal, resolving
// conflicts by source priority, computing streaks, querying and aggregating
// day ranges, validating and repairing the persisted journal, and migrating
// the legacy day-set format.
package streak

import "time"

// SourceKind identifies the kind of signal that credited a reading day.
type SourceKind string

const (
	// SourceManual is an explicit user check-in.
	SourceManual SourceKind = "manual"
	// SourceBookCompletion is a day inside a finished book's reading period.
	SourceBookCompletion SourceKind = "book_completion"
	// SourceProgressUpdate is a recent progress edit on a book in progress.
	SourceProgressUpdate SourceKind = "progress_update"
)

// Priority orders source kinds for conflict resolution. Higher wins.
func (k SourceKind) Priority() int {
	switch k {
	case SourceManual:
		return 3
	case SourceBookCompletion:
		return 2
	case SourceProgressUpdate:
		return 1
	}
	return 0
}

// Known reports whether k is one of the closed set of source kinds.
func (k SourceKind) Known() bool {
	return k.Priority() > 0
}

// ReadingDataSource is one contributing signal for a reading day.
// Immutable once created.
type ReadingDataSource struct {
	Kind       SourceKind        `yaml:"kind"`
	Timestamp  Date              `yaml:"timestamp"`
	BookID     string            `yaml:"book_id,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
	CreatedAt  Date              `yaml:"created_at,omitempty"`
	ModifiedAt Date              `yaml:"modified_at,omitempty"`
}

// ReadingDayEntry is the canonical record for one calendar day.
// A persisted entry always has at least one source, and BookIDs holds no
// duplicates.
type ReadingDayEntry struct {
	Date       string              `yaml:"date"`
	Sources    []ReadingDataSource `yaml:"sources"`
	BookIDs    []string            `yaml:"book_ids,omitempty"`
	Notes      string              `yaml:"notes,omitempty"`
	CreatedAt  Date                `yaml:"created_at,omitempty"`
	ModifiedAt Date                `yaml:"modified_at,omitempty"`
}

// ReadingDayMap is the canonical queryable state: day key to entry.
type ReadingDayMap map[string]ReadingDayEntry

// ReadingPeriod is a closed date interval during which a book was read,
// derived from its start/finish timestamps. Ephemeral.
type ReadingPeriod struct {
	BookID    string `yaml:"book_id"`
	Title     string `yaml:"title,omitempty"`
	Author    string `yaml:"author,omitempty"`
	StartDate Date   `yaml:"start_date"`
	EndDate   Date   `yaml:"end_date"`
	TotalDays int    `yaml:"total_days"`
}

// LegacyStreakHistory is the coarse pre-journal record: a flat day set.
type LegacyStreakHistory struct {
	ReadingDays    DaySet          `yaml:"reading_days"`
	BookPeriods    []ReadingPeriod `yaml:"book_periods,omitempty"`
	LastCalculated Date            `yaml:"last_calculated,omitempty"`
}

// CurrentSchemaVersion is the journal schema version written by this engine.
const CurrentSchemaVersion = 1

// EnhancedStreakHistory is the persisted journal. ReadingDays is a
// performance index over ReadingDayEntries; the integrity validator treats
// divergence between the two as the primary corruption signature.
type EnhancedStreakHistory struct {
	ReadingDays       DaySet          `yaml:"reading_days"`
	ReadingDayEntries ReadingDayMap   `yaml:"reading_day_entries"`
	BookPeriods       []ReadingPeriod `yaml:"book_periods,omitempty"`
	LastCalculated    Date            `yaml:"last_calculated,omitempty"`
	LastSyncDate      Date            `yaml:"last_sync_date,omitempty"`
	Version           int             `yaml:"version"`
}

// NewEnhancedStreakHistory creates an empty journal at the current schema
// version.
func NewEnhancedStreakHistory(now time.Time) *EnhancedStreakHistory {
	return &EnhancedStreakHistory{
		ReadingDays:       make(DaySet),
		ReadingDayEntries: make(ReadingDayMap),
		LastCalculated:    NewDate(now),
		LastSyncDate:      NewDate(now),
		Version:           CurrentSchemaVersion,
	}
}
