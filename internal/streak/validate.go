package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/mushfoo/puka-sub002/internal/book"
)

// Issue severities. Critical issues mean the journal's basic structure is
// unusable; errors make the journal invalid; warnings are informational.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
)

// Machine-readable issue codes.
const (
	CodeMissingEntries      = "missing_entries_map"
	CodeMissingDayIndex     = "missing_day_index"
	CodeIndexMissingDate    = "index_missing_date"
	CodeEntryMissingDate    = "entry_missing_date"
	CodeDuplicateEntry      = "duplicate_entry"
	CodeBadDateKey          = "bad_date_key"
	CodeKeyDateMismatch     = "key_date_mismatch"
	CodeEmptySources        = "empty_sources"
	CodeUnknownSourceKind   = "unknown_source_kind"
	CodeSourceTimeOrder     = "source_time_order"
	CodeBadSourceTimestamp  = "bad_source_timestamp"
	CodeCompletionNoBook    = "completion_without_book"
	CodeDuplicateBookID     = "duplicate_book_id"
	CodeFutureDate          = "future_date"
	CodeStaleDate           = "stale_date"
	CodeLargeJournal        = "large_journal"
	CodeLongNotes           = "long_notes"
	CodeUnknownBook         = "unknown_book"
	CodeMissingVersion      = "missing_version"
	CodeMissingLastSync     = "missing_last_sync"
	CodeMissingLastCalc     = "missing_last_calculated"
	CodeDuplicateLegacyDays = "duplicate_index_day"
)

// Score penalties per issue severity. Critical issues floor the score at or
// below 50 on their own.
const (
	penaltyCritical = 50
	penaltyError    = 10
	penaltyWarning  = 2
)

// Operational thresholds for the temporal and performance checks.
const (
	staleHorizonYears  = 2
	largeJournalDays   = 10_000
	longNotesChars     = 2_000
	futureHorizonHours = 24
)

// Issue is a single validation finding.
type Issue struct {
	Code        string   `yaml:"code"`
	Location    string   `yaml:"location,omitempty"`
	Message     string   `yaml:"message"`
	Severity    string   `yaml:"severity"`
	AutoFixable bool     `yaml:"auto_fixable,omitempty"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

func (i Issue) String() string {
	location := ""
	if i.Location != "" {
		location = fmt.Sprintf(" (%s)", i.Location)
	}
	return fmt.Sprintf("[%s] %s%s: %s", i.Severity, i.Code, location, i.Message)
}

// ValidationReport is the outcome of an integrity pass over a journal.
// IsValid is false whenever any error-level issue exists, regardless of
// the score.
type ValidationReport struct {
	IsValid         bool     `yaml:"is_valid"`
	Score           int      `yaml:"score"`
	Errors          []Issue  `yaml:"errors,omitempty"`
	Warnings        []Issue  `yaml:"warnings,omitempty"`
	Summary         string   `yaml:"summary"`
	Recommendations []string `yaml:"recommendations,omitempty"`
}

func (r *ValidationReport) addError(issue Issue) {
	if issue.Severity == "" {
		issue.Severity = SeverityError
	}
	r.Errors = append(r.Errors, issue)
}

func (r *ValidationReport) addWarning(issue Issue) {
	issue.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, issue)
}

// Validator checks structural, logical, and cross-referential invariants
// over the persisted journal.
type Validator struct {
	now Clock
}

// NewValidator creates a Validator. A nil clock falls back to time.Now.
func NewValidator(now Clock) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

// ValidateEnhanced runs all integrity checks over a journal. The book list
// is optional; when nil the referential checks are skipped.
func (v *Validator) ValidateEnhanced(history *EnhancedStreakHistory, books []book.Book) *ValidationReport {
	report := &ValidationReport{}

	if history == nil {
		report.addError(Issue{
			Code:     CodeMissingEntries,
			Message:  "history is missing",
			Severity: SeverityCritical,
		})
		finishReport(report, 0)
		return report
	}

	structureOK := v.checkStructure(history, report)
	if structureOK {
		v.checkConsistency(history, report)
		v.checkEntries(history, report)
		v.checkMetadata(history, report)
		v.checkPerformance(history, report)
		if books != nil {
			v.checkReferences(history, books, report)
		}
	}

	finishReport(report, len(history.ReadingDayEntries))
	return report
}

// checkStructure verifies both containers exist. Failures here are critical
// and make the remaining checks meaningless.
func (v *Validator) checkStructure(history *EnhancedStreakHistory, report *ValidationReport) bool {
	ok := true
	if history.ReadingDayEntries == nil {
		report.addError(Issue{
			Code:        CodeMissingEntries,
			Message:     "reading_day_entries map is missing",
			Severity:    SeverityCritical,
			Suggestions: []string{"restore the journal from a backup, or re-run the legacy migration"},
		})
		ok = false
	}
	if history.ReadingDays == nil {
		report.addError(Issue{
			Code:        CodeMissingDayIndex,
			Message:     "reading_days index is missing",
			Severity:    SeverityCritical,
			AutoFixable: true,
			Suggestions: []string{"run auto-fix to rebuild the index from the day entries"},
		})
		ok = false
	}
	return ok
}

// checkConsistency verifies the bidirectional invariant between the day
// index and the entry map. Divergence is the primary corruption signature.
func (v *Validator) checkConsistency(history *EnhancedStreakHistory, report *ValidationReport) {
	for key := range history.ReadingDayEntries {
		if !history.ReadingDays.Has(key) {
			report.addError(Issue{
				Code:        CodeIndexMissingDate,
				Location:    key,
				Message:     fmt.Sprintf("entry %s is missing from the reading_days index", key),
				AutoFixable: true,
				Suggestions: []string{"run auto-fix to synchronize the index"},
			})
		}
	}
	for day := range history.ReadingDays {
		if _, ok := history.ReadingDayEntries[day]; !ok {
			report.addError(Issue{
				Code:        CodeEntryMissingDate,
				Location:    day,
				Message:     fmt.Sprintf("indexed day %s has no entry", day),
				AutoFixable: true,
				Suggestions: []string{"run auto-fix to synchronize the index"},
			})
		}
	}
}

// checkEntries validates each entry: key format, key/date agreement,
// duplicate days, source sanity, and temporal bounds.
func (v *Validator) checkEntries(history *EnhancedStreakHistory, report *ValidationReport) {
	now := v.now()
	futureHorizon := now.Add(futureHorizonHours * time.Hour)
	staleHorizon := now.AddDate(-staleHorizonYears, 0, 0)

	// Two keys normalizing to the same calendar day are duplicates.
	normalized := make(map[string][]string)

	keys := make([]string, 0, len(history.ReadingDayEntries))
	for key := range history.ReadingDayEntries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entry := history.ReadingDayEntries[key]

		day, err := ParseDay(key)
		if err != nil {
			if parsed, flexErr := parseTimestamp(key); flexErr == nil {
				normalized[DayKey(parsed)] = append(normalized[DayKey(parsed)], key)
				report.addError(Issue{
					Code:        CodeBadDateKey,
					Location:    key,
					Message:     fmt.Sprintf("day key %q is not in YYYY-MM-DD format", key),
					AutoFixable: true,
					Suggestions: []string{"run auto-fix to renormalize the key"},
				})
			} else {
				report.addError(Issue{
					Code:     CodeBadDateKey,
					Location: key,
					Message:  fmt.Sprintf("day key %q is not a parseable date", key),
				})
			}
			continue
		}
		normalized[key] = append(normalized[key], key)

		if entry.Date != "" && entry.Date != key {
			report.addError(Issue{
				Code:        CodeKeyDateMismatch,
				Location:    key,
				Message:     fmt.Sprintf("entry date %q does not match its key %q", entry.Date, key),
				AutoFixable: true,
			})
		}

		if len(entry.Sources) == 0 {
			report.addError(Issue{
				Code:     CodeEmptySources,
				Location: key,
				Message:  "persisted entry has no sources",
			})
		}

		if day.After(futureHorizon) {
			report.addWarning(Issue{
				Code:     CodeFutureDate,
				Location: key,
				Message:  fmt.Sprintf("reading day %s is in the future", key),
			})
		}
		if day.Before(staleHorizon) {
			report.addWarning(Issue{
				Code:     CodeStaleDate,
				Location: key,
				Message:  fmt.Sprintf("reading day %s is more than %d years old", key, staleHorizonYears),
			})
		}

		v.checkEntrySources(key, entry, report)

		seenBooks := make(map[string]struct{}, len(entry.BookIDs))
		for _, id := range entry.BookIDs {
			if _, dup := seenBooks[id]; dup {
				report.addError(Issue{
					Code:        CodeDuplicateBookID,
					Location:    key,
					Message:     fmt.Sprintf("book %q is listed more than once", id),
					AutoFixable: true,
				})
			}
			seenBooks[id] = struct{}{}
		}
	}

	for day, dayKeys := range normalized {
		if len(dayKeys) > 1 {
			report.addError(Issue{
				Code:        CodeDuplicateEntry,
				Location:    day,
				Message:     fmt.Sprintf("date %s has %d entries: %v", day, len(dayKeys), dayKeys),
				AutoFixable: true,
				Suggestions: []string{"run auto-fix to collapse duplicates, keeping the most recently modified entry"},
			})
		}
	}
}

func (v *Validator) checkEntrySources(key string, entry ReadingDayEntry, report *ValidationReport) {
	for idx, src := range entry.Sources {
		location := fmt.Sprintf("%s -> source[%d]", key, idx)

		if !src.Kind.Known() {
			report.addError(Issue{
				Code:     CodeUnknownSourceKind,
				Location: location,
				Message:  fmt.Sprintf("unknown source kind %q", src.Kind),
				Suggestions: []string{
					"valid kinds are: 'manual', 'book_completion', 'progress_update'",
				},
			})
		}
		if src.Timestamp.IsZero() {
			report.addError(Issue{
				Code:     CodeBadSourceTimestamp,
				Location: location,
				Message:  "source timestamp is missing or unparseable",
			})
		}
		if !src.CreatedAt.IsZero() && !src.ModifiedAt.IsZero() && src.ModifiedAt.Before(src.CreatedAt.Time) {
			report.addError(Issue{
				Code:     CodeSourceTimeOrder,
				Location: location,
				Message:  "source modified_at is earlier than created_at",
			})
		}
		if src.Kind == SourceBookCompletion && len(entry.BookIDs) == 0 {
			report.addWarning(Issue{
				Code:     CodeCompletionNoBook,
				Location: location,
				Message:  "book_completion source on an entry with no book ids",
			})
		}
	}
}

func (v *Validator) checkMetadata(history *EnhancedStreakHistory, report *ValidationReport) {
	if history.Version == 0 {
		report.addWarning(Issue{
			Code:        CodeMissingVersion,
			Message:     "journal has no schema version",
			AutoFixable: true,
		})
	}
	if history.LastSyncDate.IsZero() {
		report.addWarning(Issue{
			Code:        CodeMissingLastSync,
			Message:     "last_sync_date is not set",
			AutoFixable: true,
		})
	}
	if history.LastCalculated.IsZero() {
		report.addWarning(Issue{
			Code:        CodeMissingLastCalc,
			Message:     "last_calculated is not set",
			AutoFixable: true,
		})
	}
}

// checkPerformance flags journal shapes that degrade query and storage
// behavior. These are operator hints, not correctness failures.
func (v *Validator) checkPerformance(history *EnhancedStreakHistory, report *ValidationReport) {
	if len(history.ReadingDayEntries) > largeJournalDays {
		report.addWarning(Issue{
			Code:    CodeLargeJournal,
			Message: fmt.Sprintf("journal holds %d day entries; consider archiving old years", len(history.ReadingDayEntries)),
		})
	}
	for key, entry := range history.ReadingDayEntries {
		if len(entry.Notes) > longNotesChars {
			report.addWarning(Issue{
				Code:     CodeLongNotes,
				Location: key,
				Message:  fmt.Sprintf("notes field is %d characters long", len(entry.Notes)),
			})
		}
	}
}

// checkReferences warns about book ids that no longer resolve. The book may
// simply have been deleted later, so this is not treated as corruption.
func (v *Validator) checkReferences(history *EnhancedStreakHistory, books []book.Book, report *ValidationReport) {
	known := make(map[string]struct{}, len(books))
	for _, b := range books {
		known[b.ID] = struct{}{}
	}
	for key, entry := range history.ReadingDayEntries {
		for _, id := range entry.BookIDs {
			if _, ok := known[id]; !ok {
				report.addWarning(Issue{
					Code:     CodeUnknownBook,
					Location: key,
					Message:  fmt.Sprintf("book %q is not in the book list", id),
				})
			}
		}
	}
}

func finishReport(report *ValidationReport, entryCount int) {
	score := 100
	critical := false
	for _, issue := range report.Errors {
		if issue.Severity == SeverityCritical {
			score -= penaltyCritical
			critical = true
		} else {
			score -= penaltyError
		}
	}
	score -= penaltyWarning * len(report.Warnings)
	if score < 0 {
		score = 0
	}

	report.Score = score
	report.IsValid = len(report.Errors) == 0
	report.Summary = fmt.Sprintf("%d errors, %d warnings across %d entries (score %d/100)",
		len(report.Errors), len(report.Warnings), entryCount, score)
	report.Recommendations = recommendations(report, critical)
}

func recommendations(report *ValidationReport, critical bool) []string {
	if critical {
		return []string{"address critical data structure issues immediately"}
	}

	var recs []string
	fixable := 0
	for _, issue := range report.Errors {
		if issue.AutoFixable {
			fixable++
		}
	}
	if fixable > 0 {
		recs = append(recs, fmt.Sprintf("run auto-fix to repair %d fixable issues", fixable))
	}
	if len(report.Errors) > fixable {
		recs = append(recs, "review the remaining errors manually before saving")
	}
	if len(report.Errors) == 0 && len(report.Warnings) == 0 {
		recs = append(recs, "data integrity is excellent")
	} else if len(report.Errors) == 0 {
		recs = append(recs, "data is valid; review warnings at your leisure")
	}
	return recs
}
