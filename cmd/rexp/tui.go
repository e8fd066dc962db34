package main

import (
	"fmt"

	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/praetorian-inc/rexp/pkg/tester"
	"github.com/praetorian-inc/rexp/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	tuiPattern string
	tuiSubject string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive regex tester",
	Long: `Launch the interactive tester. The report updates on every keystroke.

Keys:
  Tab / Shift+Tab   Cycle focus between pattern, subject and report
  Ctrl+r or F1      Syntax and modifier reference
  Esc or Ctrl+c     Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiPattern, "pattern", "", "Initial pattern")
	tuiCmd.Flags().StringVar(&tuiSubject, "subject", "", "Initial subject")
}

func runTUI(cmd *cobra.Command, args []string) error {
	ev, err := newEvaluator(cmd)
	if err != nil {
		return err
	}

	tables, err := reference.Builtin()
	if err != nil {
		return fmt.Errorf("loading reference tables: %w", err)
	}

	t := tester.New(ev)
	t.SetPattern(tuiPattern)
	t.SetSubject(tuiSubject)

	if err := tui.Run(t, tables); err != nil {
		return fmt.Errorf("running tester TUI: %w", err)
	}
	return nil
}
