package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayMap(days ...string) ReadingDayMap {
	m := make(ReadingDayMap, len(days))
	for _, day := range days {
		m[day] = ReadingDayEntry{
			Date:    day,
			Sources: []ReadingDataSource{{Kind: SourceManual}},
		}
	}
	return m
}

func TestGetReadingDaysInRange(t *testing.T) {
	entries := dayMap("2024-03-10", "2024-03-12", "2024-03-15", "2024-04-01")

	tests := []struct {
		name         string
		start        string
		end          string
		wantDays     []string
		wantRangeErr bool
		wantDateErr  bool
	}{
		{
			name:     "inclusive bounds",
			start:    "2024-03-10",
			end:      "2024-03-15",
			wantDays: []string{"2024-03-10", "2024-03-12", "2024-03-15"},
		},
		{
			name:     "single day range",
			start:    "2024-03-12",
			end:      "2024-03-12",
			wantDays: []string{"2024-03-12"},
		},
		{
			name:     "empty result is not an error",
			start:    "2024-05-01",
			end:      "2024-05-31",
			wantDays: []string{},
		},
		{
			name:         "inverted range",
			start:        "2024-03-15",
			end:          "2024-03-10",
			wantRangeErr: true,
		},
		{
			name:        "malformed start",
			start:       "03/10/2024",
			end:         "2024-03-15",
			wantDateErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetReadingDaysInRange(tt.start, tt.end, entries)
			if tt.wantRangeErr {
				var rangeErr *InvalidRangeError
				require.ErrorAs(t, err, &rangeErr)
				return
			}
			if tt.wantDateErr {
				var dateErr *InvalidDateFormatError
				require.ErrorAs(t, err, &dateErr)
				return
			}
			require.NoError(t, err)

			gotDays := make([]string, 0, len(got))
			for _, entry := range got {
				gotDays = append(gotDays, entry.Date)
			}
			assert.Equal(t, tt.wantDays, gotDays)
		})
	}
}

func TestAggregateByPeriod(t *testing.T) {
	entries := dayMap("2024-02-28", "2024-03-01", "2024-03-02", "2025-01-15")
	withBook := entries["2024-03-01"]
	withBook.BookIDs = []string{"book-1"}
	entries["2024-03-01"] = withBook
	alsoBook := entries["2024-03-02"]
	alsoBook.BookIDs = []string{"book-1", "book-2"}
	entries["2024-03-02"] = alsoBook

	tests := []struct {
		name        string
		granularity Granularity
		want        map[string]PeriodBucket
		wantErr     bool
	}{
		{
			name:        "monthly buckets with book union",
			granularity: GranularityMonthly,
			want: map[string]PeriodBucket{
				"2024-02": {ReadingDays: 1, Books: []string{}},
				"2024-03": {ReadingDays: 2, Books: []string{"book-1", "book-2"}},
				"2025-01": {ReadingDays: 1, Books: []string{}},
			},
		},
		{
			name:        "yearly buckets",
			granularity: GranularityYearly,
			want: map[string]PeriodBucket{
				"2024": {ReadingDays: 3, Books: []string{"book-1", "book-2"}},
				"2025": {ReadingDays: 1, Books: []string{}},
			},
		},
		{
			name:        "daily keeps keys as-is",
			granularity: GranularityDaily,
			want: map[string]PeriodBucket{
				"2024-02-28": {ReadingDays: 1, Books: []string{}},
				"2024-03-01": {ReadingDays: 1, Books: []string{"book-1"}},
				"2024-03-02": {ReadingDays: 1, Books: []string{"book-1", "book-2"}},
				"2025-01-15": {ReadingDays: 1, Books: []string{}},
			},
		},
		{
			name:        "unknown granularity",
			granularity: "weekly",
			wantErr:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AggregateByPeriod(entries, tt.granularity)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindReadingPatterns(t *testing.T) {
	// 2024-03-11 is a Monday; three Mondays plus one consecutive Tuesday
	entries := dayMap("2024-03-04", "2024-03-11", "2024-03-12", "2024-03-18")

	got := FindReadingPatterns(entries)

	assert.Equal(t, 3, got.WeekdayPattern["Monday"])
	assert.Equal(t, 1, got.WeekdayPattern["Tuesday"])
	assert.Equal(t, 0, got.WeekdayPattern["Sunday"])
	assert.Equal(t, []string{"Monday"}, got.PreferredReadingDays)

	// runs: {03-04}, {03-11, 03-12}, {03-18}
	assert.Equal(t, 3, got.StreakAnalysis.TotalStreaks)
	assert.Equal(t, 2, got.StreakAnalysis.LongestStreak)
	assert.InDelta(t, 4.0/3.0, got.StreakAnalysis.AverageLength, 0.001)
}

func TestFindReadingPatterns_Empty(t *testing.T) {
	got := FindReadingPatterns(ReadingDayMap{})

	assert.Empty(t, got.PreferredReadingDays)
	assert.Equal(t, 0, got.StreakAnalysis.TotalStreaks)
	assert.Equal(t, 0.0, got.StreakAnalysis.AverageLength)
	assert.Len(t, got.WeekdayPattern, 7)
}

func TestGetReadingStatistics(t *testing.T) {
	entries := ReadingDayMap{
		"2024-03-10": {
			Date: "2024-03-10",
			Sources: []ReadingDataSource{
				{Kind: SourceManual},
				{Kind: SourceBookCompletion, BookID: "book-1"},
			},
		},
		"2024-03-12": {
			Date:    "2024-03-12",
			Sources: []ReadingDataSource{{Kind: SourceProgressUpdate, BookID: "book-2"}},
		},
		"not-a-day": {
			Date:    "not-a-day",
			Sources: []ReadingDataSource{{Kind: SourceManual}},
		},
	}

	got := GetReadingStatistics(entries)

	assert.Equal(t, 2, got.TotalDays)
	assert.Equal(t, "2024-03-10", got.FirstDate)
	assert.Equal(t, "2024-03-12", got.LastDate)
	assert.Equal(t, map[SourceKind]int{
		SourceManual:         1,
		SourceBookCompletion: 1,
		SourceProgressUpdate: 1,
	}, got.SourceBreakdown)
}

func TestGetExtendedReadingStatistics(t *testing.T) {
	// 6 reading days over a 10-day span
	entries := dayMap(
		"2024-03-01", "2024-03-02", "2024-03-03",
		"2024-03-05", "2024-03-07", "2024-03-10",
	)

	got := GetExtendedReadingStatistics(entries)

	assert.Equal(t, 6, got.TotalDays)
	assert.InDelta(t, 0.6, got.Consistency, 0.001)
	assert.InDelta(t, 4.2, got.WeeklyFrequency, 0.001)
	assert.InDelta(t, 18.0, got.MonthlyFrequency, 0.001)
	assert.Equal(t, "2024-03", got.MostActiveMonth)
	assert.Equal(t, "2024", got.MostActiveYear)
}

func TestGetExtendedReadingStatistics_Empty(t *testing.T) {
	got := GetExtendedReadingStatistics(ReadingDayMap{})

	assert.Equal(t, 0, got.TotalDays)
	assert.Equal(t, 0.0, got.Consistency)
	assert.Empty(t, got.MostActiveMonth)
}
