package streak

import (
	"sort"
	"time"
)

// GetReadingDaysInRange returns entries whose date falls inside the
// inclusive [start, end] range, sorted ascending by date. Non-canonical
// bounds and an inverted range are caller errors; an empty result is not.
func GetReadingDaysInRange(start, end string, entries ReadingDayMap) ([]ReadingDayEntry, error) {
	if _, err := ParseDay(start); err != nil {
		return nil, err
	}
	if _, err := ParseDay(end); err != nil {
		return nil, err
	}
	if start > end {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	result := make([]ReadingDayEntry, 0)
	for key, entry := range entries {
		// canonical day keys compare correctly as strings
		if IsDayKey(key) && key >= start && key <= end {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

// Granularity selects the bucket size for aggregation.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// PeriodBucket aggregates one bucket: the number of reading days and the
// set of books touched, unioned so a book read on several days in the same
// bucket counts once.
type PeriodBucket struct {
	ReadingDays int      `yaml:"reading_days"`
	Books       []string `yaml:"books,omitempty"`
}

// AggregateByPeriod buckets the day map by the requested granularity:
// daily keys stay as-is, monthly buckets by YYYY-MM, yearly by YYYY.
func AggregateByPeriod(entries ReadingDayMap, granularity Granularity) (map[string]PeriodBucket, error) {
	switch granularity {
	case GranularityDaily, GranularityMonthly, GranularityYearly:
	default:
		return nil, &InvalidDateFormatError{Value: string(granularity)}
	}

	bookSets := make(map[string]map[string]struct{})
	counts := make(map[string]int)

	for key, entry := range entries {
		if !IsDayKey(key) {
			continue
		}
		bucket := key
		switch granularity {
		case GranularityMonthly:
			bucket = key[:7]
		case GranularityYearly:
			bucket = key[:4]
		}
		counts[bucket]++
		if bookSets[bucket] == nil {
			bookSets[bucket] = make(map[string]struct{})
		}
		for _, id := range entry.BookIDs {
			bookSets[bucket][id] = struct{}{}
		}
	}

	result := make(map[string]PeriodBucket, len(counts))
	for bucket, count := range counts {
		books := make([]string, 0, len(bookSets[bucket]))
		for id := range bookSets[bucket] {
			books = append(books, id)
		}
		sort.Strings(books)
		result[bucket] = PeriodBucket{ReadingDays: count, Books: books}
	}
	return result, nil
}

// StreakAnalysis summarizes the runs found in the day map.
type StreakAnalysis struct {
	TotalStreaks  int     `yaml:"total_streaks"`
	LongestStreak int     `yaml:"longest_streak"`
	AverageLength float64 `yaml:"average_length"`
}

// ReadingPatterns is a purely descriptive statistical pass over the map.
type ReadingPatterns struct {
	WeekdayPattern       map[string]int `yaml:"weekday_pattern"`
	PreferredReadingDays []string       `yaml:"preferred_reading_days,omitempty"`
	StreakAnalysis       StreakAnalysis `yaml:"streak_analysis"`
}

// weekdayOrder lists weekdays Monday-first for histogram presentation.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// FindReadingPatterns computes a Monday-first weekday histogram, the
// preferred reading days (weekdays with the maximum count), and a summary
// of the calendar-consecutive runs in the map.
func FindReadingPatterns(entries ReadingDayMap) ReadingPatterns {
	patterns := ReadingPatterns{
		WeekdayPattern: make(map[string]int, len(weekdayOrder)),
	}
	for _, wd := range weekdayOrder {
		patterns.WeekdayPattern[wd.String()] = 0
	}

	days := make([]time.Time, 0, len(entries))
	for key := range entries {
		day, err := ParseDay(key)
		if err != nil {
			continue
		}
		days = append(days, day)
		patterns.WeekdayPattern[day.Weekday().String()]++
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	max := 0
	for _, count := range patterns.WeekdayPattern {
		if count > max {
			max = count
		}
	}
	if max > 0 {
		for _, wd := range weekdayOrder {
			if patterns.WeekdayPattern[wd.String()] == max {
				patterns.PreferredReadingDays = append(patterns.PreferredReadingDays, wd.String())
			}
		}
	}

	totalRunDays := 0
	run := 0
	for i, day := range days {
		if i > 0 && daysBetween(days[i-1], day) == 1 {
			run++
		} else {
			if run > 0 {
				patterns.StreakAnalysis.TotalStreaks++
				totalRunDays += run
			}
			run = 1
		}
		if run > patterns.StreakAnalysis.LongestStreak {
			patterns.StreakAnalysis.LongestStreak = run
		}
	}
	if run > 0 {
		patterns.StreakAnalysis.TotalStreaks++
		totalRunDays += run
	}
	if patterns.StreakAnalysis.TotalStreaks > 0 {
		patterns.StreakAnalysis.AverageLength = float64(totalRunDays) / float64(patterns.StreakAnalysis.TotalStreaks)
	}

	return patterns
}

// ReadingStatistics holds basic counts over the day map. The range bounds
// are empty strings when the map has no valid entries.
type ReadingStatistics struct {
	TotalDays       int                `yaml:"total_days"`
	SourceBreakdown map[SourceKind]int `yaml:"source_breakdown"`
	FirstDate       string             `yaml:"first_date,omitempty"`
	LastDate        string             `yaml:"last_date,omitempty"`
}

// GetReadingStatistics counts days and per-source contributions and finds
// the date-range bounds of the map.
func GetReadingStatistics(entries ReadingDayMap) ReadingStatistics {
	stats := ReadingStatistics{
		SourceBreakdown: make(map[SourceKind]int),
	}
	for key, entry := range entries {
		if !IsDayKey(key) {
			continue
		}
		stats.TotalDays++
		if stats.FirstDate == "" || key < stats.FirstDate {
			stats.FirstDate = key
		}
		if key > stats.LastDate {
			stats.LastDate = key
		}
		for _, src := range entry.Sources {
			stats.SourceBreakdown[src.Kind]++
		}
	}
	return stats
}

// ExtendedReadingStatistics adds frequency and consistency measures.
type ExtendedReadingStatistics struct {
	ReadingStatistics `yaml:",inline"`

	// Average reading days per week and per month over the tracked span.
	WeeklyFrequency  float64 `yaml:"weekly_frequency"`
	MonthlyFrequency float64 `yaml:"monthly_frequency"`
	// Consistency is the share of days read within the tracked span, 0-1.
	Consistency     float64 `yaml:"consistency"`
	MostActiveMonth string  `yaml:"most_active_month,omitempty"`
	MostActiveYear  string  `yaml:"most_active_year,omitempty"`
}

// GetExtendedReadingStatistics computes reading frequency, a consistency
// score, and the most active month and year.
func GetExtendedReadingStatistics(entries ReadingDayMap) ExtendedReadingStatistics {
	extended := ExtendedReadingStatistics{
		ReadingStatistics: GetReadingStatistics(entries),
	}
	if extended.TotalDays == 0 {
		return extended
	}

	first, _ := ParseDay(extended.FirstDate)
	last, _ := ParseDay(extended.LastDate)
	spanDays := daysBetween(first, last) + 1

	extended.Consistency = float64(extended.TotalDays) / float64(spanDays)
	extended.WeeklyFrequency = float64(extended.TotalDays) / float64(spanDays) * 7
	extended.MonthlyFrequency = float64(extended.TotalDays) / float64(spanDays) * 30

	monthly, _ := AggregateByPeriod(entries, GranularityMonthly)
	extended.MostActiveMonth = busiestBucket(monthly)
	yearly, _ := AggregateByPeriod(entries, GranularityYearly)
	extended.MostActiveYear = busiestBucket(yearly)

	return extended
}

// busiestBucket picks the bucket with the most reading days, preferring the
// earlier bucket on ties for deterministic output.
func busiestBucket(buckets map[string]PeriodBucket) string {
	best := ""
	bestCount := 0
	for bucket, data := range buckets {
		if data.ReadingDays > bestCount || (data.ReadingDays == bestCount && (best == "" || bucket < best)) {
			best = bucket
			bestCount = data.ReadingDays
		}
	}
	return best
}
