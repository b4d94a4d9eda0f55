package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/praetorian-inc/minigrep/pkg/config"
)

var (
	verbose    bool
	quiet      bool
	configPath string

	// env is the process environment; tests replace it.
	env config.EnvSource = config.OSEnv
)

var rootCmd = &cobra.Command{
	Use:   "minigrep [flags] <query> <file-or-dir> [-i]",
	Short: "Print the lines of a file that contain a query",
	Long: `minigrep searches a file, or every file beneath a directory, for lines
containing a query and prints them in order.

Matching is case-sensitive unless -i is given or the IGNORE_CASE environment
variable is set. Matches are highlighted when writing to a terminal.

Exit status is 0 when a line matched, 1 when none did and 2 on error.`,
	Args:          cobra.RangeArgs(0, 3),
	RunE:          runSearch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/minigrep/config.yaml)")

	registerSearchFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the stderr logger for one command run.
func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	switch {
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// loadSettings resolves and reads the settings file.
func loadSettings(log logrus.FieldLogger) (*config.Settings, error) {
	path := config.SettingsPath(configPath, env)
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	log.WithField("path", path).Debug("settings loaded")
	return settings, nil
}
