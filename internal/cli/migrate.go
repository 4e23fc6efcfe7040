package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mushfoo/puka-sub002/internal/journal"
	"github.com/mushfoo/puka-sub002/internal/streak"
)

// MigrateJournal upgrades the legacy streak record into the enhanced
// journal format and persists it. An existing journal is not overwritten
// unless force is set.
func MigrateJournal(ctx context.Context, journalRepo journal.Repository, force bool, now streak.Clock, w io.Writer) error {
	if now == nil {
		now = time.Now
	}

	if !force {
		if _, err := journalRepo.Load(ctx); err == nil {
			return fmt.Errorf("journal already exists; use --force to re-run the migration")
		} else if !errors.Is(err, journal.ErrNotFound) {
			return fmt.Errorf("journalRepo.Load() > %w", err)
		}
	}

	legacy, err := journalRepo.LoadLegacy(ctx)
	if err != nil {
		return fmt.Errorf("journalRepo.LoadLegacy() > %w", err)
	}

	history := streak.NewMigrator(now).MigrateStreakHistory(*legacy)
	if err := journalRepo.Save(ctx, history); err != nil {
		return fmt.Errorf("journalRepo.Save() > %w", err)
	}

	fmt.Fprintf(w, "Migrated %d legacy reading days to journal version %d\n",
		len(history.ReadingDayEntries), history.Version)
	return nil
}
