package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mushfoo/puka-sub002/internal/book"
)

func validJournal(now time.Time) *EnhancedStreakHistory {
	history := NewEnhancedStreakHistory(now)
	for _, day := range []string{"2024-03-10", "2024-03-11", "2024-03-12"} {
		parsed, _ := ParseDay(day)
		history.ReadingDayEntries[day] = manualEntry(day, parsed, now)
		history.ReadingDays.Add(day)
	}
	return history
}

func issueCodes(issues []Issue) []string {
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestValidator_ValidateEnhanced(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		history       func() *EnhancedStreakHistory
		books         []book.Book
		wantValid     bool
		wantScore     int
		wantErrCodes  []string
		wantWarnCodes []string
	}{
		{
			name:      "clean journal scores 100",
			history:   func() *EnhancedStreakHistory { return validJournal(now) },
			wantValid: true,
			wantScore: 100,
		},
		{
			name: "missing entries map is critical",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				history.ReadingDayEntries = nil
				return history
			},
			wantValid:    false,
			wantScore:    50,
			wantErrCodes: []string{CodeMissingEntries},
		},
		{
			name: "missing day index is critical",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				history.ReadingDays = nil
				return history
			},
			wantValid:    false,
			wantScore:    50,
			wantErrCodes: []string{CodeMissingDayIndex},
		},
		{
			name: "entry missing from index",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				delete(history.ReadingDays, "2024-03-11")
				return history
			},
			wantValid:    false,
			wantScore:    90,
			wantErrCodes: []string{CodeIndexMissingDate},
		},
		{
			name: "indexed day without an entry",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				history.ReadingDays.Add("2024-03-13")
				return history
			},
			wantValid:    false,
			wantScore:    90,
			wantErrCodes: []string{CodeEntryMissingDate},
		},
		{
			name: "non-canonical but parseable key",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				key := "2024-03-13T10:00:00Z"
				history.ReadingDayEntries[key] = ReadingDayEntry{
					Date:    key,
					Sources: []ReadingDataSource{{Kind: SourceManual, Timestamp: NewDate(now)}},
				}
				history.ReadingDays.Add(key)
				return history
			},
			wantValid:    false,
			wantErrCodes: []string{CodeBadDateKey},
		},
		{
			name: "entry date disagrees with its key",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				entry := history.ReadingDayEntries["2024-03-11"]
				entry.Date = "2024-03-12"
				history.ReadingDayEntries["2024-03-11"] = entry
				return history
			},
			wantValid:    false,
			wantErrCodes: []string{CodeKeyDateMismatch},
		},
		{
			name: "persisted entry with no sources",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				entry := history.ReadingDayEntries["2024-03-11"]
				entry.Sources = nil
				history.ReadingDayEntries["2024-03-11"] = entry
				return history
			},
			wantValid:    false,
			wantErrCodes: []string{CodeEmptySources},
		},
		{
			name: "unknown source kind",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				entry := history.ReadingDayEntries["2024-03-11"]
				entry.Sources = []ReadingDataSource{{Kind: "guesswork", Timestamp: NewDate(now)}}
				history.ReadingDayEntries["2024-03-11"] = entry
				return history
			},
			wantValid:    false,
			wantErrCodes: []string{CodeUnknownSourceKind},
		},
		{
			name: "duplicate book ids in an entry",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				entry := history.ReadingDayEntries["2024-03-11"]
				entry.BookIDs = []string{"book-1", "book-1"}
				history.ReadingDayEntries["2024-03-11"] = entry
				return history
			},
			books:         []book.Book{{ID: "book-1"}},
			wantValid:     false,
			wantErrCodes:  []string{CodeDuplicateBookID},
			wantWarnCodes: []string{},
		},
		{
			name: "future and stale dates warn",
			history: func() *EnhancedStreakHistory {
				history := NewEnhancedStreakHistory(now)
				for _, day := range []string{"2020-01-01", "2024-04-01"} {
					parsed, _ := ParseDay(day)
					history.ReadingDayEntries[day] = manualEntry(day, parsed, now)
					history.ReadingDays.Add(day)
				}
				return history
			},
			wantValid:     true,
			wantScore:     96,
			wantWarnCodes: []string{CodeStaleDate, CodeFutureDate},
		},
		{
			name: "unknown book reference warns",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				entry := history.ReadingDayEntries["2024-03-11"]
				entry.BookIDs = []string{"gone"}
				history.ReadingDayEntries["2024-03-11"] = entry
				return history
			},
			books:         []book.Book{{ID: "book-1"}},
			wantValid:     true,
			wantScore:     98,
			wantWarnCodes: []string{CodeUnknownBook},
		},
		{
			name: "missing metadata warns",
			history: func() *EnhancedStreakHistory {
				history := validJournal(now)
				history.Version = 0
				history.LastSyncDate = Date{}
				history.LastCalculated = Date{}
				return history
			},
			wantValid:     true,
			wantScore:     94,
			wantWarnCodes: []string{CodeMissingVersion, CodeMissingLastSync, CodeMissingLastCalc},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewValidator(fixedClock(now))
			report := validator.ValidateEnhanced(tt.history(), tt.books)

			assert.Equal(t, tt.wantValid, report.IsValid)
			if tt.wantScore != 0 || tt.wantValid {
				assert.Equal(t, tt.wantScore, report.Score)
			}
			if tt.wantErrCodes != nil {
				assert.ElementsMatch(t, tt.wantErrCodes, issueCodes(report.Errors))
			}
			if tt.wantWarnCodes != nil {
				assert.ElementsMatch(t, tt.wantWarnCodes, issueCodes(report.Warnings))
			}
			assert.NotEmpty(t, report.Summary)
		})
	}
}

func TestValidator_ValidateEnhanced_NilHistory(t *testing.T) {
	validator := NewValidator(fixedClock(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	report := validator.ValidateEnhanced(nil, nil)

	assert.False(t, report.IsValid)
	assert.Equal(t, 50, report.Score)
	assert.Equal(t, []string{"address critical data structure issues immediately"}, report.Recommendations)
}

func TestValidator_ValidateEnhanced_CriticalGatesOtherChecks(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	validator := NewValidator(fixedClock(now))

	// both containers missing: exactly two critical issues, nothing else runs
	report := validator.ValidateEnhanced(&EnhancedStreakHistory{Version: CurrentSchemaVersion}, nil)

	require.Len(t, report.Errors, 2)
	assert.Equal(t, 0, report.Score)
	for _, issue := range report.Errors {
		assert.Equal(t, SeverityCritical, issue.Severity)
	}
}

func TestValidator_ValidateEnhanced_DuplicateNormalizedDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	validator := NewValidator(fixedClock(now))

	history := NewEnhancedStreakHistory(now)
	for _, key := range []string{"2024-03-11", "2024-03-11T08:00:00Z"} {
		history.ReadingDayEntries[key] = ReadingDayEntry{
			Date:    key,
			Sources: []ReadingDataSource{{Kind: SourceManual, Timestamp: NewDate(now)}},
		}
		history.ReadingDays.Add(key)
	}

	report := validator.ValidateEnhanced(history, nil)

	codes := issueCodes(report.Errors)
	assert.Contains(t, codes, CodeBadDateKey)
	assert.Contains(t, codes, CodeDuplicateEntry)
	assert.False(t, report.IsValid)
}

func TestValidator_ValidateEnhanced_SkipsReferencesWithoutBooks(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	validator := NewValidator(fixedClock(now))

	history := validJournal(now)
	entry := history.ReadingDayEntries["2024-03-11"]
	entry.BookIDs = []string{"unknown-book"}
	history.ReadingDayEntries["2024-03-11"] = entry

	report := validator.ValidateEnhanced(history, nil)

	assert.True(t, report.IsValid)
	assert.NotContains(t, issueCodes(report.Warnings), CodeUnknownBook)
}
