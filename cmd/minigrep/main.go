package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/praetorian-inc/minigrep/pkg/config"
)

// Exit statuses follow grep: 0 match, 1 no match, 2 trouble.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(exitCode(Execute()))
}

func exitCode(err error) int {
	if err == nil {
		return exitMatch
	}
	if errors.Is(err, errNoMatch) {
		return exitNoMatch
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "Problem parsing arguments: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
	}
	return exitError
}
