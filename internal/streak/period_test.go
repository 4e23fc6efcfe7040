package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mushfoo/puka-sub002/internal/book"
)

func TestExtractReadingPeriods(t *testing.T) {
	tests := []struct {
		name  string
		books []book.Book
		want  []ReadingPeriod
	}{
		{
			name: "book with both dates yields an inclusive period",
			books: []book.Book{
				{
					ID:           "book-1",
					Title:        "The Dispossessed",
					Author:       "Ursula K. Le Guin",
					DateStarted:  "2024-03-01",
					DateFinished: "2024-03-05",
				},
			},
			want: []ReadingPeriod{
				{
					BookID:    "book-1",
					Title:     "The Dispossessed",
					Author:    "Ursula K. Le Guin",
					StartDate: NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
					EndDate:   NewDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
					TotalDays: 5,
				},
			},
		},
		{
			name: "single day read counts as one day",
			books: []book.Book{
				{
					ID:           "book-2",
					DateStarted:  "2024-03-01",
					DateFinished: "2024-03-01",
				},
			},
			want: []ReadingPeriod{
				{
					BookID:    "book-2",
					StartDate: NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
					EndDate:   NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
					TotalDays: 1,
				},
			},
		},
		{
			name: "RFC3339 timestamps are truncated to days",
			books: []book.Book{
				{
					ID:           "book-3",
					DateStarted:  "2024-03-01T22:15:00Z",
					DateFinished: "2024-03-02T08:00:00Z",
				},
			},
			want: []ReadingPeriod{
				{
					BookID:    "book-3",
					StartDate: NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
					EndDate:   NewDate(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
					TotalDays: 2,
				},
			},
		},
		{
			name: "missing finish date is dropped",
			books: []book.Book{
				{ID: "book-4", DateStarted: "2024-03-01"},
			},
			want: []ReadingPeriod{},
		},
		{
			name: "unparseable date is dropped",
			books: []book.Book{
				{ID: "book-5", DateStarted: "not a date", DateFinished: "2024-03-05"},
			},
			want: []ReadingPeriod{},
		},
		{
			name: "inverted interval is dropped",
			books: []book.Book{
				{ID: "book-6", DateStarted: "2024-03-05", DateFinished: "2024-03-01"},
			},
			want: []ReadingPeriod{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReadingPeriods(tt.books)
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.BookID, got[i].BookID)
				assert.Equal(t, want.Title, got[i].Title)
				assert.Equal(t, want.Author, got[i].Author)
				assert.True(t, got[i].StartDate.Equal(want.StartDate.Time))
				assert.True(t, got[i].EndDate.Equal(want.EndDate.Time))
				assert.Equal(t, want.TotalDays, got[i].TotalDays)
			}
		})
	}
}

func TestGenerateReadingDays(t *testing.T) {
	periods := []ReadingPeriod{
		{
			BookID:    "book-1",
			StartDate: NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:   NewDate(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		},
		{
			BookID:    "book-2",
			StartDate: NewDate(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
			EndDate:   NewDate(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
		},
	}

	got := GenerateReadingDays(periods)

	// overlapping day 03-03 appears once
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}, got.Sorted())
}
