package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/praetorian-inc/minigrep/pkg/config"
	"github.com/praetorian-inc/minigrep/pkg/enum"
	"github.com/praetorian-inc/minigrep/pkg/highlight"
	"github.com/praetorian-inc/minigrep/pkg/history"
	"github.com/praetorian-inc/minigrep/pkg/runner"
	"github.com/praetorian-inc/minigrep/pkg/sarif"
)

// errNoMatch signals a completed search that printed nothing.
var errNoMatch = errors.New("no lines matched")

var (
	searchIgnoreCase     bool
	searchRegexp         bool
	searchLineNumbers    bool
	searchColor          string
	searchFormat         string
	searchOnPatternError string
	searchIncludeHidden  bool
	searchMaxFileSize    int64
	searchExtract        string
	searchHistory        bool
)

func registerSearchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "Case-insensitive search (same as a trailing -i)")
	cmd.Flags().BoolVarP(&searchRegexp, "regexp", "E", false, "Treat the query as a regular expression")
	cmd.Flags().BoolVarP(&searchLineNumbers, "line-number", "n", false, "Prefix each line with its line number")
	cmd.Flags().StringVar(&searchColor, "color", "", "Highlight matches: auto, always, never (default from settings, auto)")
	cmd.Flags().StringVar(&searchFormat, "format", "", "Output format: human, json, sarif (default from settings, human)")
	cmd.Flags().StringVar(&searchOnPatternError, "on-pattern-error", "", "Invalid pattern policy: abort, plain (default from settings, abort)")
	cmd.Flags().BoolVar(&searchIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	cmd.Flags().Int64Var(&searchMaxFileSize, "max-file-size", -1, "Maximum file size to search in a directory (bytes, 0 = no limit; default from settings)")
	cmd.Flags().StringVar(&searchExtract, "extract", "", "Extract text from documents: comma-separated pdf,docx,xlsx,7z or 'all'")
	cmd.Flags().BoolVar(&searchHistory, "history", false, "Record this search in the history store")
}

// searchOptions is the merged view of flags over settings.
type searchOptions struct {
	color         string
	format        string
	policy        runner.Policy
	regexp        bool
	lineNumbers   bool
	includeHidden bool
	maxFileSize   int64
	extract       string
	history       bool
	markers       highlight.Markers
}

// mergeOptions layers non-default flag values over settings.
func mergeOptions(s *config.Settings) (searchOptions, error) {
	opts := searchOptions{
		color:         s.Color,
		format:        s.Format,
		regexp:        s.Regexp || searchRegexp,
		lineNumbers:   s.LineNumbers || searchLineNumbers,
		includeHidden: s.IncludeHidden || searchIncludeHidden,
		maxFileSize:   s.MaxFileSize,
		extract:       s.Extract,
		history:       s.History.Enabled || searchHistory,
		markers:       highlight.DefaultMarkers(),
	}
	if s.Markers.Custom() {
		opts.markers = highlight.PlainMarkers(s.Markers.Begin, s.Markers.End)
	}

	if searchColor != "" {
		opts.color = searchColor
	}
	if searchFormat != "" {
		opts.format = searchFormat
	}
	if searchMaxFileSize >= 0 {
		opts.maxFileSize = searchMaxFileSize
	}
	if searchExtract != "" {
		opts.extract = searchExtract
	}

	policy := s.PatternErrors
	if searchOnPatternError != "" {
		policy = searchOnPatternError
	}
	var err error
	if opts.policy, err = runner.ParsePolicy(policy); err != nil {
		return opts, err
	}

	switch opts.color {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return opts, fmt.Errorf("unknown color mode %q (want auto, always or never)", opts.color)
	}
	switch opts.format {
	case config.FormatHuman, config.FormatJSON, config.FormatSARIF:
	default:
		return opts, fmt.Errorf("unknown format %q (want human, json or sarif)", opts.format)
	}
	return opts, nil
}

// resolverInputs maps positional arguments to the resolver's ordered inputs.
// The --ignore-case flag stands in for a literal third "-i" token.
func resolverInputs(args []string, ignoreCase bool) []string {
	if !ignoreCase || len(args) < 2 {
		return args
	}
	inputs := append([]string{}, args[:2]...)
	return append(inputs, config.IgnoreCaseFlag)
}

func runSearch(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())

	cfg, err := config.Build(resolverInputs(args, searchIgnoreCase), env)
	if err != nil {
		return err
	}

	settings, err := loadSettings(log)
	if err != nil {
		return err
	}
	opts, err := mergeOptions(settings)
	if err != nil {
		return err
	}

	enumerator, err := enum.New(enum.Config{
		Root:            cfg.FilePath,
		IncludeHidden:   opts.includeHidden,
		MaxFileSize:     opts.maxFileSize,
		ExtractArchives: opts.extract,
		Logger:          log,
	})
	if err != nil {
		return err
	}
	_, multi := enumerator.(*enum.FilesystemEnumerator)

	highlighting := opts.format == config.FormatHuman && colorEnabled(opts.color, cmd.OutOrStdout(), env)
	r := runner.New(runner.Options{
		Highlight:      highlighting,
		Markers:        opts.markers,
		Regexp:         opts.regexp,
		OnPatternError: opts.policy,
		Logger:         log,
	})

	w := newWriter(cmd.OutOrStdout(), opts, highlighting)
	if opts.format == config.FormatSARIF {
		w.report = sarif.NewReport(version, cfg.Query, cfg.IgnoreCase)
	}
	log.WithFields(logrus.Fields{
		"query":       cfg.Query,
		"path":        cfg.FilePath,
		"ignore_case": cfg.IgnoreCase,
		"regexp":      opts.regexp,
	}).Debug("searching")

	files, matches := 0, 0
	err = enumerator.Enumerate(context.Background(), func(b enum.Blob) error {
		files++
		path := ""
		if multi || b.Provenance.Kind() == "archive" {
			path = b.Path()
		}

		if opts.format != config.FormatHuman {
			lines, spans, err := r.Spans(cfg, string(b.Content))
			if err != nil {
				return err
			}
			matches += len(lines)
			return w.writeStructured(b.Path(), lines, spans)
		}

		lines, err := r.Run(cfg, string(b.Content))
		if err != nil {
			return err
		}
		matches += len(lines)
		return w.writeHuman(path, lines)
	})
	if err != nil {
		return err
	}
	if err := w.flush(); err != nil {
		return err
	}

	if opts.history {
		recordHistory(settings, log, history.Entry{
			Query:      cfg.Query,
			Path:       cfg.FilePath,
			IgnoreCase: cfg.IgnoreCase,
			Matches:    matches,
			Files:      files,
			CreatedAt:  time.Now(),
		})
	}

	log.WithFields(logrus.Fields{"files": files, "matches": matches}).Debug("search complete")
	if matches == 0 {
		return errNoMatch
	}
	return nil
}

// recordHistory stores e. Failures are logged, never fatal to the search.
func recordHistory(settings *config.Settings, log logrus.FieldLogger, e history.Entry) {
	path, err := settings.HistoryPath(env)
	if err != nil {
		log.WithError(err).Warn("history disabled")
		return
	}
	s, err := history.New(history.Config{Path: path})
	if err != nil {
		log.WithError(err).Warn("opening history store")
		return
	}
	defer s.Close()

	if err := s.Add(e); err != nil {
		log.WithError(err).Warn("recording search")
	}
}
