package streak

import (
	"github.com/mushfoo/puka-sub002/internal/book"
)

// ExtractReadingPeriods derives reading periods from books that have both a
// start and a finish date. Books with unparseable dates or an inverted
// interval are dropped, not raised: source data is expected to be messy and
// the merge must still produce a best-effort result. Output order follows
// input order.
func ExtractReadingPeriods(books []book.Book) []ReadingPeriod {
	periods := make([]ReadingPeriod, 0, len(books))
	for _, b := range books {
		if b.DateStarted == "" || b.DateFinished == "" {
			continue
		}
		start, err := parseTimestamp(b.DateStarted)
		if err != nil {
			continue
		}
		end, err := parseTimestamp(b.DateFinished)
		if err != nil {
			continue
		}
		start = startOfDay(start)
		end = startOfDay(end)
		if start.After(end) {
			continue
		}
		periods = append(periods, ReadingPeriod{
			BookID:    b.ID,
			Title:     b.Title,
			Author:    b.Author,
			StartDate: NewDate(start),
			EndDate:   NewDate(end),
			// inclusive: same start and end date counts as 1 day
			TotalDays: daysBetween(start, end) + 1,
		})
	}
	return periods
}

// GenerateReadingDays expands periods into the set of calendar days they
// cover. Overlapping periods do not inflate the result: union semantics.
func GenerateReadingDays(periods []ReadingPeriod) DaySet {
	days := make(DaySet)
	for _, p := range periods {
		for d := p.StartDate.Time; !d.After(p.EndDate.Time); d = d.AddDate(0, 0, 1) {
			days.Add(DayKey(d))
		}
	}
	return days
}
