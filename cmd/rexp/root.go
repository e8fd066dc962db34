package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/tester"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	quiet       bool
	engineName  string
	matchBudget time.Duration
	noPrefilter bool
)

var rootCmd = &cobra.Command{
	Use:   "rexp",
	Short: "rexp - interactive regular expression tester",
	Long: `rexp evaluates a regular expression against a subject string and reports
every match with all of its capture groups.

Use "rexp tui" for the live tester, "rexp eval" for one-shot evaluation and
"rexp serve" to drive a tester session over NDJSON from another program.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug log on stderr)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (report only)")
	rootCmd.PersistentFlags().StringVarP(&engineName, "engine", "e", string(matcher.EngineRE2), "Regex engine: re2, coregex, regexp2")
	rootCmd.PersistentFlags().DurationVar(&matchBudget, "timeout", matcher.DefaultConfig().MatchTimeout, "Match time budget for the regexp2 engine (0 = none)")
	rootCmd.PersistentFlags().BoolVar(&noPrefilter, "no-prefilter", false, "Disable the literal prefilter")

	// Add subcommands
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(referenceCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// matcherConfig builds the matcher configuration from the persistent flags.
func matcherConfig() (matcher.Config, error) {
	engine, err := matcher.ParseEngine(engineName)
	if err != nil {
		return matcher.Config{}, err
	}
	return matcher.Config{
		Engine:       engine,
		MatchTimeout: matchBudget,
		Prefilter:    !noPrefilter,
	}, nil
}

// newEvaluator returns an evaluator for the persistent flags, logging to
// stderr when --verbose is set.
func newEvaluator(cmd *cobra.Command) (*tester.Evaluator, error) {
	cfg, err := matcherConfig()
	if err != nil {
		return nil, err
	}

	if f := cmd.Flag("timeout"); f != nil && f.Changed && cfg.Engine != matcher.EngineRegexp2 && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "[warn] --timeout only applies to the %s engine\n", matcher.EngineRegexp2)
	}

	var logger tester.DebugLogger = tester.NoopLogger{}
	if verbose && !quiet {
		logger = slogLogger{slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))}
	}

	ev, err := tester.NewEvaluator(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("configuring evaluator: %w", err)
	}
	return ev, nil
}

// slogLogger adapts a slog.Logger to tester.DebugLogger.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Log(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
