package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhancedStreakHistory_AddReadingDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("new day is inserted and indexed", func(t *testing.T) {
		history := NewEnhancedStreakHistory(now)

		err := history.AddReadingDay(ReadingDayEntry{
			Date:    "2024-03-10",
			Sources: []ReadingDataSource{{Kind: SourceManual}},
		}, now)
		require.NoError(t, err)

		entry := history.ReadingDayEntries["2024-03-10"]
		assert.True(t, history.ReadingDays.Has("2024-03-10"))
		assert.True(t, entry.CreatedAt.Equal(now))
		assert.True(t, entry.ModifiedAt.Equal(now))
	})

	t.Run("existing day is merged by conflict resolution", func(t *testing.T) {
		history := NewEnhancedStreakHistory(now)
		require.NoError(t, history.AddReadingDay(ReadingDayEntry{
			Date:    "2024-03-10",
			Sources: []ReadingDataSource{{Kind: SourceProgressUpdate, BookID: "book-1"}},
		}, now))

		later := now.Add(time.Hour)
		require.NoError(t, history.AddReadingDay(ReadingDayEntry{
			Date:    "2024-03-10",
			Sources: []ReadingDataSource{{Kind: SourceManual}},
		}, later))

		entry := history.ReadingDayEntries["2024-03-10"]
		require.Len(t, entry.Sources, 2)
		assert.Equal(t, SourceManual, entry.Sources[0].Kind)
		assert.Equal(t, []string{"book-1"}, entry.BookIDs)
		assert.True(t, entry.ModifiedAt.Equal(later))
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		history := NewEnhancedStreakHistory(now)

		err := history.AddReadingDay(ReadingDayEntry{
			Date:    "2024/03/10",
			Sources: []ReadingDataSource{{Kind: SourceManual}},
		}, now)

		var invalidErr *InvalidDateFormatError
		assert.ErrorAs(t, err, &invalidErr)
	})

	t.Run("no sources is rejected", func(t *testing.T) {
		history := NewEnhancedStreakHistory(now)

		err := history.AddReadingDay(ReadingDayEntry{Date: "2024-03-10"}, now)

		var emptyErr *EmptyInputError
		assert.ErrorAs(t, err, &emptyErr)
	})
}

func TestEnhancedStreakHistory_SetReadingDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	history := NewEnhancedStreakHistory(now)
	require.NoError(t, history.AddReadingDay(ReadingDayEntry{
		Date:    "2024-03-10",
		Sources: []ReadingDataSource{{Kind: SourceProgressUpdate, BookID: "book-1"}},
	}, now))

	err := history.SetReadingDay(ReadingDayEntry{
		Date:    "2024-03-10",
		Sources: []ReadingDataSource{{Kind: SourceManual}},
		Notes:   "replaced",
	}, now)
	require.NoError(t, err)

	// replace semantics: the earlier progress source is gone
	entry := history.ReadingDayEntries["2024-03-10"]
	require.Len(t, entry.Sources, 1)
	assert.Equal(t, SourceManual, entry.Sources[0].Kind)
	assert.Equal(t, "replaced", entry.Notes)
	assert.Empty(t, entry.BookIDs)
}

func TestEnhancedStreakHistory_RemoveReadingDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	history := validJournal(now)

	assert.True(t, history.RemoveReadingDay("2024-03-11", now))
	assert.False(t, history.RemoveReadingDay("2024-03-11", now))
	assert.NotContains(t, history.ReadingDayEntries, "2024-03-11")
	assert.False(t, history.ReadingDays.Has("2024-03-11"))
}
