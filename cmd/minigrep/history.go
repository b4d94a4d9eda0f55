package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/minigrep/pkg/config"
	"github.com/praetorian-inc/minigrep/pkg/history"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long:  "List searches recorded with --history (or history.enabled in the settings file), newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of searches to show (0 = all)")
	historyCmd.Flags().StringVar(&historyFormat, "format", config.FormatHuman, "Output format: human, json")
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())

	settings, err := loadSettings(log)
	if err != nil {
		return err
	}
	path, err := settings.HistoryPath(env)
	if err != nil {
		return err
	}

	s, err := history.New(history.Config{Path: path})
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer s.Close()

	entries, err := s.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	out := cmd.OutOrStdout()
	switch historyFormat {
	case config.FormatJSON:
		if entries == nil {
			entries = []history.Entry{}
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case config.FormatHuman:
		if len(entries) == 0 {
			fmt.Fprintln(out, "No searches recorded.")
			return nil
		}
		for _, e := range entries {
			mode := "case-sensitive"
			if e.IgnoreCase {
				mode = "ignore-case"
			}
			fmt.Fprintf(out, "%s  %q in %s (%s): %d matches in %d files\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Query, e.Path, mode, e.Matches, e.Files)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want human or json)", historyFormat)
	}
}
