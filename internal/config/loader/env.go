package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/dshills/termconf/internal/config/document"
)

// DefaultEnvPrefix is the prefix of environment variables read as settings.
const DefaultEnvPrefix = "TERMCONF_"

// EnvLoader loads settings from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "TERMCONF_")
	mapping map[string]string // Env var -> settings key
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "TERMCONF_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	l := NewEnvLoader(prefix)
	for env, key := range mapping {
		l.mapping[env] = key
	}
	return l
}

// Load reads environment variables into a settings document.
//
// Explicitly mapped variables are read first; every other variable carrying
// the prefix is turned into a camelCase key, so TERMCONF_INITIAL_ROWS=40
// becomes {"initialRows": 40}. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (document.Document, error) {
	fields := make(map[string]document.Document)

	for env, key := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			fields[key] = ParseValue(val)
		}
	}

	for _, env := range l.environ() {
		if l.prefix == "" || !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}

		key := l.envToKey(name)
		if key == "" {
			continue
		}
		fields[key] = ParseValue(value)
	}

	return document.NewObject(fields), nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, key string) {
	l.mapping[envVar] = key
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// envToKey converts TERMCONF_SHOW_TABS_IN_TITLEBAR to showTabsInTitlebar.
func (l *EnvLoader) envToKey(env string) string {
	name := strings.TrimPrefix(env, l.prefix)

	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		part = strings.ToLower(part)
		if b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// ParseValue converts a string from the environment or the command line
// into the most specific document. Numbers stay numbers, so
// TERMCONF_INITIAL_ROWS=1 is 1 and not true.
func ParseValue(s string) document.Document {
	if s == "" {
		return document.NewString(s)
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return document.NewBool(true)
	case "false", "no", "off":
		return document.NewBool(false)
	case "null":
		return document.Null()
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return document.NewInt(i)
	}

	// Only if it contains a decimal point, to avoid misinterpreting ints.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return document.NewFloat(f)
		}
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		if doc, err := document.Parse([]byte(s)); err == nil {
			return doc
		}
	}

	return document.NewString(s)
}
