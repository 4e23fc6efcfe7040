package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mushfoo/puka-sub002/internal/journal"
	"github.com/mushfoo/puka-sub002/internal/streak"
)

// Range prints the journal entries between two inclusive day keys.
func Range(ctx context.Context, journalRepo journal.Repository, start, end string, w io.Writer) error {
	history, err := journalRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("journalRepo.Load() > %w", err)
	}

	entries, err := streak.GetReadingDaysInRange(start, end, history.ReadingDayEntries)
	if err != nil {
		return fmt.Errorf("streak.GetReadingDaysInRange() > %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "No reading days between %s and %s\n", start, end)
		return nil
	}

	for _, entry := range entries {
		kinds := make([]string, 0, len(entry.Sources))
		for _, src := range entry.Sources {
			kinds = append(kinds, string(src.Kind))
		}
		line := fmt.Sprintf("%s  [%s]", entry.Date, strings.Join(kinds, ", "))
		if len(entry.BookIDs) > 0 {
			line += fmt.Sprintf("  books: %s", strings.Join(entry.BookIDs, ", "))
		}
		if entry.Notes != "" {
			line += fmt.Sprintf("  -- %s", entry.Notes)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d reading days\n", len(entries))
	return nil
}
