package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/serve"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the rexp version, the available regex engines and the serve protocol version",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	engines := make([]string, 0, len(matcher.Engines()))
	for _, e := range matcher.Engines() {
		engines = append(engines, string(e))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rexp v%s (%s)\n", version, commit)
	fmt.Fprintf(out, "Engines: %s (default %s)\n", strings.Join(engines, ", "), matcher.DefaultConfig().Engine)
	fmt.Fprintf(out, "Serve protocol: %s\n", serve.Version)
	fmt.Fprintf(out, "Built with %s for %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
