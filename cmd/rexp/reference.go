package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/spf13/cobra"
)

var (
	referencePath   string
	referenceFormat string
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Show the syntax and modifier reference",
	Long: `Display the regex syntax and inline modifier tables.

With --engine, only the constructs that engine accepts are listed.`,
	RunE:  runReference,
}

func init() {
	referenceCmd.Flags().StringVar(&referencePath, "tables", "", "Path to a custom tables YAML file")
	referenceCmd.Flags().StringVar(&referenceFormat, "format", "table", "Output format: table, json")
}

func runReference(cmd *cobra.Command, args []string) error {
	var tables *reference.Tables
	var err error

	if referencePath != "" {
		tables, err = reference.NewLoader().LoadFile(referencePath)
		if err != nil {
			return fmt.Errorf("loading tables from %s: %w", referencePath, err)
		}
	} else {
		tables, err = reference.Builtin()
		if err != nil {
			return fmt.Errorf("loading builtin tables: %w", err)
		}
	}

	// --engine is a persistent flag with a default; filter only when given
	if f := cmd.Flag("engine"); f != nil && f.Changed {
		engine, err := matcher.ParseEngine(f.Value.String())
		if err != nil {
			return err
		}
		tables = tables.For(engine)
	}

	switch referenceFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(tables)
	case "table":
		return outputReferenceTable(cmd.OutOrStdout(), tables)
	default:
		return fmt.Errorf("unknown output format: %s", referenceFormat)
	}
}

func outputReferenceTable(out io.Writer, tables *reference.Tables) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Syntax\tDescription\tEngines\n")
	fmt.Fprintf(w, "------\t-----------\t-------\n")
	writeEntries(w, tables.Syntax)

	fmt.Fprintf(w, "\t\t\n")
	fmt.Fprintf(w, "Modifier\tDescription\tEngines\n")
	fmt.Fprintf(w, "--------\t-----------\t-------\n")
	writeEntries(w, tables.Modifiers)

	return w.Flush()
}

func writeEntries(w io.Writer, entries []reference.Entry) {
	for _, en := range entries {
		engines := "all"
		if len(en.Engines) > 0 {
			names := make([]string, len(en.Engines))
			for i, e := range en.Engines {
				names[i] = string(e)
			}
			engines = strings.Join(names, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", en.Code, en.Description, engines)
	}
}
