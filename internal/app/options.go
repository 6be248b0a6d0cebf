package app

import (
	"fmt"
	"io"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/dshills/termconf/internal/config/document"
	"github.com/dshills/termconf/internal/config/loader"
	"github.com/dshills/termconf/internal/logger"
)

// OptionsEnvPrefix is the prefix of environment variables read into
// Options, e.g. TERMCONF_LOG_LEVEL.
const OptionsEnvPrefix = "TERMCONF_"

// Options configures the application.
type Options struct {
	// ConfigPath is the user settings file. Defaults to
	// $XDG_CONFIG_HOME/termconf/settings.json.
	ConfigPath string `env:"CONFIG"`

	// ProjectPath is an optional settings file layered over the user's.
	ProjectPath string `env:"PROJECT"`

	// EnvPrefix is the prefix of environment variables read as settings.
	EnvPrefix string `env:"ENV_PREFIX"`

	// LogLevel sets the logging verbosity.
	LogLevel string `env:"LOG_LEVEL"`

	// LogFormat is console or json.
	LogFormat string `env:"LOG_FORMAT"`

	// Watch reloads settings when a settings file changes.
	Watch bool `env:"WATCH"`

	// Overrides are key=value settings layered above every file.
	Overrides []string `env:"SET" envSeparator:";"`

	// LogOutput receives log entries. Defaults to os.Stderr.
	LogOutput io.Writer
}

// DefaultOptions returns the options used for anything not set by flags
// or the environment.
func DefaultOptions() Options {
	return Options{
		EnvPrefix: loader.DefaultEnvPrefix,
		LogLevel:  "info",
		LogFormat: string(logger.FormatConsole),
	}
}

// ResolveOptions fills the unset fields of flags from the environment and
// then from DefaultOptions. Flags win over the environment.
func ResolveOptions(flags Options) (Options, error) {
	var fromEnv Options
	if err := env.ParseWithOptions(&fromEnv, env.Options{Prefix: OptionsEnvPrefix}); err != nil {
		return Options{}, fmt.Errorf("reading options from environment: %w", err)
	}

	resolved := flags
	for _, src := range []Options{fromEnv, DefaultOptions()} {
		if err := mergo.Merge(&resolved, src); err != nil {
			return Options{}, fmt.Errorf("merging options: %w", err)
		}
	}

	return resolved, resolved.Validate()
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if _, err := logger.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	switch logger.Format(o.LogFormat) {
	case logger.FormatConsole, logger.FormatJSON, "":
	default:
		return fmt.Errorf("invalid log format %q (must be console or json)", o.LogFormat)
	}
	_, err := ParseOverrides(o.Overrides)
	return err
}

// ParseOverrides turns key=value pairs into a settings document. Dotted
// keys build nested objects, and values are typed the way environment
// values are, so initialRows=40 sets a number.
func ParseOverrides(pairs []string) (document.Document, error) {
	result := document.NewObject(nil)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return document.Null(), fmt.Errorf("%w: %q", ErrInvalidOverride, pair)
		}

		doc := loader.ParseValue(value)
		parts := strings.Split(key, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if parts[i] == "" {
				return document.Null(), fmt.Errorf("%w: %q", ErrInvalidOverride, pair)
			}
			doc = document.NewObject(map[string]document.Document{parts[i]: doc})
		}
		result = document.Merge(result, doc)
	}
	return result, nil
}
