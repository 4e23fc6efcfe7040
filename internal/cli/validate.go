package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/mushfoo/puka-sub002/internal/book"
	"github.com/mushfoo/puka-sub002/internal/journal"
	"github.com/mushfoo/puka-sub002/internal/streak"
)

// Validate runs the integrity checks over the persisted journal and prints
// a report. With fix enabled it first applies auto-repairs and persists the
// healed journal.
func Validate(ctx context.Context, journalRepo journal.Repository, bookRepo book.Repository, fix bool, now streak.Clock, w io.Writer) error {
	if now == nil {
		now = time.Now
	}

	history, err := journalRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("journalRepo.Load() > %w", err)
	}

	var books []book.Book
	if bookRepo != nil {
		books, err = bookRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("bookRepo.List() > %w", err)
		}
	}

	validator := streak.NewValidator(now)

	if fix {
		result := validator.AutoFixIssues(history)
		history = result.History
		if err := journalRepo.Save(ctx, history); err != nil {
			return fmt.Errorf("journalRepo.Save() > %w", err)
		}
		fmt.Fprintf(w, "Auto-fix: %d repaired, %d failed\n\n", result.Fixed, result.Failed)
	}

	report := validator.ValidateEnhanced(history, books)
	printReport(report, w)

	if !report.IsValid {
		return fmt.Errorf("journal is invalid: %s", report.Summary)
	}
	return nil
}

func printReport(report *streak.ValidationReport, w io.Writer) {
	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	okColor := color.New(color.FgGreen)

	for _, issue := range report.Errors {
		fmt.Fprintln(w, errColor.Sprint(issue.String()))
		for _, suggestion := range issue.Suggestions {
			fmt.Fprintf(w, "    suggestion: %s\n", suggestion)
		}
	}
	for _, issue := range report.Warnings {
		fmt.Fprintln(w, warnColor.Sprint(issue.String()))
	}

	if report.IsValid {
		fmt.Fprintln(w, okColor.Sprint(report.Summary))
	} else {
		fmt.Fprintln(w, errColor.Sprint(report.Summary))
	}
	for _, recommendation := range report.Recommendations {
		fmt.Fprintf(w, "  - %s\n", recommendation)
	}
}
