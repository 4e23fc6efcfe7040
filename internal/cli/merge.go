// Package cli implements the puka subcommands on top of the streak engine
// and the repository boundaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mushfoo/puka-sub002/internal/book"
	"github.com/mushfoo/puka-sub002/internal/journal"
	"github.com/mushfoo/puka-sub002/internal/streak"
)

// Merge reconciles the legacy day set and the book list into the enhanced
// journal and persists the result.
func Merge(ctx context.Context, journalRepo journal.Repository, bookRepo book.Repository, now streak.Clock, w io.Writer) error {
	if now == nil {
		now = time.Now
	}

	legacy, err := journalRepo.LoadLegacy(ctx)
	if errors.Is(err, journal.ErrNotFound) {
		legacy = &streak.LegacyStreakHistory{ReadingDays: make(streak.DaySet)}
	} else if err != nil {
		return fmt.Errorf("journalRepo.LoadLegacy() > %w", err)
	}

	books, err := bookRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("bookRepo.List() > %w", err)
	}

	merged := streak.NewMerger(now).MergeReadingData(*legacy, books)

	history, err := journalRepo.Load(ctx)
	if errors.Is(err, journal.ErrNotFound) {
		history = streak.NewEnhancedStreakHistory(now())
	} else if err != nil {
		return fmt.Errorf("journalRepo.Load() > %w", err)
	}

	entries := make([]streak.ReadingDayEntry, 0, len(merged))
	for _, entry := range streak.Entries(merged) {
		entries = append(entries, entry)
	}
	result := streak.BulkUpsertEntries(history, entries, streak.BatchOptions{}, now())

	history.BookPeriods = streak.ExtractReadingPeriods(books)
	history.LastCalculated = streak.NewDate(now())

	if err := journalRepo.Save(ctx, history); err != nil {
		return fmt.Errorf("journalRepo.Save() > %w", err)
	}

	fmt.Fprintf(w, "Merged %d signal days into the journal (%d applied, %d skipped, %d total days)\n",
		len(merged), result.Applied, result.Skipped, len(history.ReadingDayEntries))
	return nil
}
