package config

import "os"

const (
	// IgnoreCaseFlag is the literal third input token that requests a
	// case-insensitive search.
	IgnoreCaseFlag = "-i"

	// IgnoreCaseEnv is the environment indicator consulted when no third
	// token is supplied. Presence alone counts; the value is ignored.
	IgnoreCaseEnv = "IGNORE_CASE"
)

// Config is the resolved configuration for a single search invocation.
type Config struct {
	Query      string // text to look for; empty matches every line
	FilePath   string // opaque source identifier, resolved by pkg/enum
	IgnoreCase bool   // case rule for matching and highlighting
}

// EnvSource looks up environment-style indicators.
type EnvSource interface {
	Lookup(key string) (string, bool)
}

// EnvFunc adapts a lookup function such as os.LookupEnv to EnvSource.
type EnvFunc func(key string) (string, bool)

// Lookup calls f(key).
func (f EnvFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// OSEnv reads the process environment.
var OSEnv EnvSource = EnvFunc(os.LookupEnv)

// MapEnv is an EnvSource backed by a map. Useful for tests and embedding.
type MapEnv map[string]string

// Lookup reports whether key is present in the map.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Build resolves ordered inputs (query, file path, optional flag token) into
// a Config.
//
// Case sensitivity precedence:
//  1. A third token, when supplied, decides alone: exactly "-i" enables
//     case-insensitive matching, anything else leaves it disabled.
//  2. Without a third token, the presence of IGNORE_CASE in env enables it.
//  3. Otherwise matching is case-sensitive.
//
// A nil env is treated as an empty environment.
//
// inputs exclude the program name, so the first absent positional value
// names the error: no inputs is MissingQuery, a query alone is MissingFilePath.
func Build(inputs []string, env EnvSource) (Config, error) {
	if len(inputs) < 1 {
		return Config{}, &ConfigError{Kind: MissingQuery}
	}
	if len(inputs) < 2 || inputs[1] == "" {
		return Config{}, &ConfigError{Kind: MissingFilePath}
	}

	cfg := Config{
		Query:    inputs[0],
		FilePath: inputs[1],
	}

	if len(inputs) > 2 {
		cfg.IgnoreCase = inputs[2] == IgnoreCaseFlag
		return cfg, nil
	}

	if env != nil {
		_, cfg.IgnoreCase = env.Lookup(IgnoreCaseEnv)
	}
	return cfg, nil
}
