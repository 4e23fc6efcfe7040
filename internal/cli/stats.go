package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mushfoo/puka-sub002/internal/journal"
	"github.com/mushfoo/puka-sub002/internal/pdf"
	"github.com/mushfoo/puka-sub002/internal/streak"
)

// StatsOptions controls the stats command output.
type StatsOptions struct {
	Granularity streak.Granularity
	// MarkdownPath, when set, writes the report as a markdown file.
	MarkdownPath string
	// PDF additionally converts the markdown report to PDF.
	PDF bool
}

// Stats prints reading statistics, aggregation buckets, and patterns for
// the persisted journal, optionally rendering a markdown/PDF report.
func Stats(ctx context.Context, journalRepo journal.Repository, opts StatsOptions, w io.Writer) error {
	history, err := journalRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("journalRepo.Load() > %w", err)
	}

	if opts.Granularity == "" {
		opts.Granularity = streak.GranularityMonthly
	}

	extended := streak.GetExtendedReadingStatistics(history.ReadingDayEntries)
	buckets, err := streak.AggregateByPeriod(history.ReadingDayEntries, opts.Granularity)
	if err != nil {
		return fmt.Errorf("streak.AggregateByPeriod() > %w", err)
	}
	patterns := streak.FindReadingPatterns(history.ReadingDayEntries)

	report := renderStatsReport(extended, buckets, patterns, opts.Granularity)
	fmt.Fprint(w, report)

	if opts.MarkdownPath == "" {
		return nil
	}
	if err := os.WriteFile(opts.MarkdownPath, []byte(report), 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", opts.MarkdownPath, err)
	}
	fmt.Fprintf(w, "\nWrote report to %s\n", opts.MarkdownPath)

	if opts.PDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(opts.MarkdownPath)
		if err != nil {
			return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
		}
		fmt.Fprintf(w, "Wrote report to %s\n", pdfPath)
	}
	return nil
}

func bucketNoun(granularity streak.Granularity) string {
	switch granularity {
	case streak.GranularityMonthly:
		return "month"
	case streak.GranularityYearly:
		return "year"
	}
	return "day"
}

func renderStatsReport(
	extended streak.ExtendedReadingStatistics,
	buckets map[string]streak.PeriodBucket,
	patterns streak.ReadingPatterns,
	granularity streak.Granularity,
) string {
	var b strings.Builder

	b.WriteString("# Reading statistics\n\n")
	fmt.Fprintf(&b, "- Total reading days: %d\n", extended.TotalDays)
	if extended.FirstDate != "" {
		fmt.Fprintf(&b, "- Tracked range: %s to %s\n", extended.FirstDate, extended.LastDate)
	}
	fmt.Fprintf(&b, "- Weekly frequency: %.1f days/week\n", extended.WeeklyFrequency)
	fmt.Fprintf(&b, "- Monthly frequency: %.1f days/month\n", extended.MonthlyFrequency)
	fmt.Fprintf(&b, "- Consistency: %.0f%%\n", extended.Consistency*100)
	if extended.MostActiveMonth != "" {
		fmt.Fprintf(&b, "- Most active month: %s\n", extended.MostActiveMonth)
	}
	if extended.MostActiveYear != "" {
		fmt.Fprintf(&b, "- Most active year: %s\n", extended.MostActiveYear)
	}

	if len(extended.SourceBreakdown) > 0 {
		b.WriteString("\n## Sources\n\n")
		kinds := make([]string, 0, len(extended.SourceBreakdown))
		for kind := range extended.SourceBreakdown {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(&b, "- %s: %d\n", kind, extended.SourceBreakdown[streak.SourceKind(kind)])
		}
	}

	if len(buckets) > 0 {
		fmt.Fprintf(&b, "\n## Reading days per %s\n\n", bucketNoun(granularity))
		keys := make([]string, 0, len(buckets))
		for key := range buckets {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			bucket := buckets[key]
			fmt.Fprintf(&b, "- %s: %d days, %d books\n", key, bucket.ReadingDays, len(bucket.Books))
		}
	}

	b.WriteString("\n## Weekday pattern\n\n")
	for _, weekday := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		fmt.Fprintf(&b, "- %s: %d\n", weekday, patterns.WeekdayPattern[weekday.String()])
	}
	if len(patterns.PreferredReadingDays) > 0 {
		fmt.Fprintf(&b, "\nPreferred reading days: %s\n", strings.Join(patterns.PreferredReadingDays, ", "))
	}
	fmt.Fprintf(&b, "Streaks: %d total, longest %d, average length %.1f\n",
		patterns.StreakAnalysis.TotalStreaks,
		patterns.StreakAnalysis.LongestStreak,
		patterns.StreakAnalysis.AverageLength)

	return b.String()
}
