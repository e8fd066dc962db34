package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/rexp/pkg/serve"
	"github.com/praetorian-inc/rexp/pkg/tester"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a tester session as an NDJSON server",
	Long: `Run rexp as a long-lived streaming server that accepts requests via stdin
and writes responses to stdout using NDJSON format.

The process holds one tester session: set_pattern and set_subject update it
and reply with the new report. evaluate runs a one-off evaluation without
touching the session. The server exits when stdin closes, on a close request,
or when SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ev, err := newEvaluator(cmd)
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(tester.New(ev), cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
