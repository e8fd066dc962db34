package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/praetorian-inc/rexp/pkg/format"
	"github.com/praetorian-inc/rexp/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	evalFormat string
	evalColor  string
)

var evalCmd = &cobra.Command{
	Use:   "eval <pattern> [subject]",
	Short: "Evaluate a pattern against a subject",
	Long: `Compile the pattern, scan the subject for every match and print the report.

The subject is read from stdin when it is not given as an argument. The text
format prints the report exactly as the interactive tester shows it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalFormat, "format", "text", "Output format: text, json, human")
	evalCmd.Flags().StringVar(&evalColor, "color", "auto", "Color output for human format: auto, always, never")
}

// evalResult is the JSON form of an evaluation.
type evalResult struct {
	Pattern string        `json:"pattern"`
	Engine  string        `json:"engine"`
	Report  string        `json:"report"`
	Outcome types.Outcome `json:"outcome"`
}

func runEval(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	var subject string
	if len(args) > 1 {
		subject = args[1]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading subject from stdin: %w", err)
		}
		subject = string(data)
	}

	ev, err := newEvaluator(cmd)
	if err != nil {
		return err
	}
	outcome := ev.Outcome(pattern, subject)

	switch evalFormat {
	case "text":
		return outputEvalText(cmd, outcome)
	case "json":
		return json.NewEncoder(cmd.OutOrStdout()).Encode(evalResult{
			Pattern: pattern,
			Engine:  string(ev.Config().Engine),
			Report:  format.Outcome(outcome),
			Outcome: outcome,
		})
	case "human":
		return outputEvalHuman(cmd, outcome)
	default:
		return fmt.Errorf("unknown output format: %s", evalFormat)
	}
}

// outputEvalText writes the report unchanged, terminated by a newline.
func outputEvalText(cmd *cobra.Command, outcome types.Outcome) error {
	report := format.Outcome(outcome)
	out := cmd.OutOrStdout()
	if _, err := io.WriteString(out, report); err != nil {
		return err
	}
	if report != "" && !strings.HasSuffix(report, "\n") {
		_, err := io.WriteString(out, "\n")
		return err
	}
	return nil
}

// styles holds color formatters for human output
type styles struct {
	block   *color.Color
	index   *color.Color
	value   *color.Color
	absent  *color.Color
	err     *color.Color
	summary *color.Color
}

// newStyles creates color formatters for human output.
// enabled=false respects --color=never and the NO_COLOR env var.
func newStyles(enabled bool) *styles {
	s := &styles{
		block:   color.New(color.FgHiBlue),
		index:   color.New(color.FgHiGreen),
		value:   color.New(color.FgYellow),
		absent:  color.New(color.Faint),
		err:     color.New(color.Bold, color.FgRed),
		summary: color.New(color.Bold),
	}

	if !enabled {
		s.block.DisableColor()
		s.index.DisableColor()
		s.value.DisableColor()
		s.absent.DisableColor()
		s.err.DisableColor()
		s.summary.DisableColor()
	}

	return s
}

// colorEnabled resolves the --color flag.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		// Check if stdout is a TTY and NO_COLOR is not set
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}

func outputEvalHuman(cmd *cobra.Command, outcome types.Outcome) error {
	enabled, err := colorEnabled(evalColor)
	if err != nil {
		return err
	}
	s := newStyles(enabled)
	out := cmd.OutOrStdout()

	switch outcome.Kind {
	case types.OutcomeEmpty:
		if !quiet {
			s.summary.Fprintln(out, "empty pattern")
		}
		return nil
	case types.OutcomeCompileError, types.OutcomeMatchError:
		s.err.Fprintln(out, outcome.Message)
	case types.OutcomeNoMatches:
		s.absent.Fprintln(out, format.NoMatch)
	case types.OutcomeMatches:
		for _, m := range outcome.Matches {
			writeHumanMatch(out, s, m)
		}
	}

	if !quiet {
		s.summary.Fprintln(out, format.Summary(outcome))
	}
	return nil
}

// writeHumanMatch writes one match in report layout with colored parts.
func writeHumanMatch(out io.Writer, s *styles, m types.MatchResult) {
	s.block.Fprint(out, format.BlockOpen)
	for _, g := range m.Groups {
		fmt.Fprint(out, "    ")
		s.index.Fprintf(out, "%d", g.Index)
		fmt.Fprint(out, ": ")
		if text, ok := g.Text(); ok {
			s.value.Fprintf(out, "Some(%s)", format.Quote(text))
		} else {
			s.absent.Fprint(out, "None")
		}
		fmt.Fprintln(out, ",")
	}
	s.block.Fprint(out, format.BlockClose)
}
