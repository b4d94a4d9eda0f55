package config

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which required input was missing.
type ErrorKind int

const (
	// MissingQuery means no query input was supplied.
	MissingQuery ErrorKind = iota + 1
	// MissingFilePath means no file path input was supplied.
	MissingFilePath
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case MissingQuery:
		return "missing query"
	case MissingFilePath:
		return "missing file path"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingQuery matches any ConfigError of kind MissingQuery via errors.Is.
	ErrMissingQuery = errors.New("missing query")
	// ErrMissingFilePath matches any ConfigError of kind MissingFilePath via errors.Is.
	ErrMissingFilePath = errors.New("missing file path")
)

// ConfigError is returned by Build when required inputs are absent.
// It is not retryable; the caller must supply corrected inputs.
type ConfigError struct {
	Kind ErrorKind
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid arguments: %s", e.Kind)
}

// Is lets errors.Is compare against the package sentinels.
func (e *ConfigError) Is(target error) bool {
	switch e.Kind {
	case MissingQuery:
		return target == ErrMissingQuery
	case MissingFilePath:
		return target == ErrMissingFilePath
	}
	return false
}
