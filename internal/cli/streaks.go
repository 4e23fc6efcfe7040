package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/mushfoo/puka-sub002/internal/journal"
	"github.com/mushfoo/puka-sub002/internal/streak"
)

// Streaks prints the streak card for the persisted journal.
func Streaks(ctx context.Context, journalRepo journal.Repository, now streak.Clock, w io.Writer) error {
	if now == nil {
		now = time.Now
	}

	history, err := journalRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("journalRepo.Load() > %w", err)
	}

	result := streak.NewCalculator(now).CalculateStreaksFromDays(history.ReadingDays)

	current := color.New(color.FgGreen, color.Bold)
	if result.CurrentStreak == 0 {
		current = color.New(color.FgRed, color.Bold)
	}

	fmt.Fprintf(w, "Current streak: %s\n", current.Sprintf("%d days", result.CurrentStreak))
	fmt.Fprintf(w, "Longest streak: %d days\n", result.LongestStreak)
	if result.LastReadDate.IsZero() {
		fmt.Fprintln(w, "Last read: never")
	} else {
		fmt.Fprintf(w, "Last read: %s\n", streak.DayKey(result.LastReadDate))
	}
	return nil
}
