package streak

import (
	"time"
)

// StreakResult holds streak statistics over a set of reading days.
// LastReadDate is the zero time when the set is empty.
type StreakResult struct {
	CurrentStreak int       `yaml:"current_streak"`
	LongestStreak int       `yaml:"longest_streak"`
	LastReadDate  time.Time `yaml:"last_read_date,omitempty"`
}

// Calculator computes streaks relative to an injected clock.
type Calculator struct {
	now Clock
}

// NewCalculator creates a Calculator. A nil clock falls back to time.Now.
func NewCalculator(now Clock) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{now: now}
}

// CalculateStreaksFromDays computes the current streak, the longest streak,
// and the most recent reading day. The current streak is anchored strictly
// to today: it counts consecutive days ending today or yesterday, so a
// lapsed streak immediately shows as 0 rather than resuming from the most
// recent reading day.
func (c *Calculator) CalculateStreaksFromDays(days DaySet) StreakResult {
	if len(days) == 0 {
		return StreakResult{}
	}

	sorted := days.Sorted()

	var result StreakResult
	var prev time.Time
	run := 0
	for _, key := range sorted {
		day, err := ParseDay(key)
		if err != nil {
			continue
		}
		if run > 0 && daysBetween(prev, day) == 1 {
			run++
		} else {
			run = 1
		}
		if run > result.LongestStreak {
			result.LongestStreak = run
		}
		prev = day
		result.LastReadDate = day
	}

	today := startOfDay(c.now())
	anchor := today
	if !days.Has(DayKey(anchor)) {
		anchor = anchor.AddDate(0, 0, -1)
	}
	for days.Has(DayKey(anchor)) {
		result.CurrentStreak++
		anchor = anchor.AddDate(0, 0, -1)
	}

	return result
}
