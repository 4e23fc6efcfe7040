package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mushfoo/puka-sub002/internal/cli"
	"github.com/mushfoo/puka-sub002/internal/streak"
)

var (
	configFile string
)

func main() {
	var debugMode bool
	rootCommand := cobra.Command{
		Use:           "puka",
		Short:         "Personal reading-progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newMergeCommand(),
		newStreaksCommand(),
		newStatsCommand(),
		newRangeCommand(),
		newValidateCommand(),
		newMigrateCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func newMergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Reconcile reading signals into the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			return cli.Merge(cmd.Context(), env.Journal, env.Books, nil, cmd.OutOrStdout())
		},
	}
}

func newStreaksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Show current and longest reading streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			return cli.Streaks(cmd.Context(), env.Journal, nil, cmd.OutOrStdout())
		},
	}
}

type granularityFlag streak.Granularity

func (g *granularityFlag) Set(val string) error {
	for _, granularity := range allGranularities {
		if val == string(granularity) {
			*g = granularityFlag(granularity)
			return nil
		}
	}
	return fmt.Errorf("invalid granularity: %s", val)
}

func (g granularityFlag) String() string {
	return string(g)
}

func (g *granularityFlag) Type() string {
	return "granularity"
}

var (
	_                pflag.Value = (*granularityFlag)(nil)
	allGranularities             = []streak.Granularity{
		streak.GranularityDaily,
		streak.GranularityMonthly,
		streak.GranularityYearly,
	}
)

func newStatsCommand() *cobra.Command {
	granularity := granularityFlag(streak.GranularityMonthly)
	var markdownPath string
	var toPDF bool

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics and patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			return cli.Stats(cmd.Context(), env.Journal, cli.StatsOptions{
				Granularity:  streak.Granularity(granularity),
				MarkdownPath: markdownPath,
				PDF:          toPDF,
			}, cmd.OutOrStdout())
		},
	}
	statsCmd.Flags().Var(&granularity, "granularity", fmt.Sprintf("Aggregation bucket. Possible values are %v", allGranularities))
	statsCmd.Flags().StringVar(&markdownPath, "report", "", "Write the report to this markdown file")
	statsCmd.Flags().BoolVar(&toPDF, "pdf", false, "Also convert the markdown report to PDF")
	return statsCmd
}

func newRangeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List reading days within an inclusive date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			return cli.Range(cmd.Context(), env.Journal, args[0], args[1], cmd.OutOrStdout())
		},
	}
}

func newValidateCommand() *cobra.Command {
	var fix bool

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check journal integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			return cli.Validate(cmd.Context(), env.Journal, env.Books, fix, nil, cmd.OutOrStdout())
		},
	}
	validateCmd.Flags().BoolVar(&fix, "fix", false, "Automatically repair fixable issues before validating")
	return validateCmd
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(newMigrateJournalCommand())
	migrateCmd.AddCommand(newMigrateDBCommand())

	return migrateCmd
}

func newMigrateJournalCommand() *cobra.Command {
	var force bool

	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Upgrade the legacy streak record to the journal format",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			return cli.MigrateJournal(cmd.Context(), env.Journal, force, nil, cmd.OutOrStdout())
		},
	}
	journalCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing journal")
	return journalCmd
}

func newMigrateDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateDB(cmd.OutOrStdout())
		},
	}
}
