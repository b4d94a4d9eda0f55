package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/minigrep/pkg/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming search server",
	Long: `Run minigrep as a long-lived server that accepts search requests
via stdin and writes results to stdout using NDJSON format.

Each request carries a complete body to search. The process handles requests
until stdin closes, a "close" request arrives or SIGTERM is received.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())

	// Set up signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := serve.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), log)
	return srv.Run(ctx)
}
