package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveOptions_Precedence(t *testing.T) {
	t.Setenv("TERMCONF_CONFIG", "/env/settings.json")
	t.Setenv("TERMCONF_PROJECT", "/env/project.toml")
	t.Setenv("TERMCONF_LOG_LEVEL", "debug")

	opts, err := ResolveOptions(Options{ConfigPath: "/flag/settings.json"})
	if err != nil {
		t.Fatalf("ResolveOptions() error = %v", err)
	}

	if opts.ConfigPath != "/flag/settings.json" {
		t.Errorf("ConfigPath = %q, flags should win", opts.ConfigPath)
	}
	if opts.ProjectPath != "/env/project.toml" {
		t.Errorf("ProjectPath = %q, want value from environment", opts.ProjectPath)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", opts.LogLevel)
	}
	if opts.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want default console", opts.LogFormat)
	}
	if opts.EnvPrefix != "TERMCONF_" {
		t.Errorf("EnvPrefix = %q, want default", opts.EnvPrefix)
	}
}

func TestResolveOptions_EnvOverrides(t *testing.T) {
	t.Setenv("TERMCONF_SET", "initialRows=40;theme=dark")

	opts, err := ResolveOptions(Options{})
	if err != nil {
		t.Fatalf("ResolveOptions() error = %v", err)
	}
	if len(opts.Overrides) != 2 || opts.Overrides[1] != "theme=dark" {
		t.Errorf("Overrides = %v", opts.Overrides)
	}
}

func TestResolveOptions_Invalid(t *testing.T) {
	if _, err := ResolveOptions(Options{LogLevel: "loud"}); err == nil {
		t.Error("expected an error for an unknown log level")
	}
	if _, err := ResolveOptions(Options{LogFormat: "xml"}); err == nil {
		t.Error("expected an error for an unknown log format")
	}
	_, err := ResolveOptions(Options{Overrides: []string{"initialRows"}})
	if !errors.Is(err, ErrInvalidOverride) {
		t.Errorf("err = %v, want ErrInvalidOverride", err)
	}
}

func TestParseOverrides(t *testing.T) {
	doc, err := ParseOverrides([]string{
		"initialRows=40",
		"theme=dark",
		"initialPosition=10,20",
		"experimental.rendering=true",
		"experimental.retro=false",
	})
	if err != nil {
		t.Fatalf("ParseOverrides() error = %v", err)
	}

	rows, _ := doc.Lookup("initialRows")
	if rows.Int() != 40 {
		t.Errorf("initialRows = %v, want 40", rows.Value())
	}
	pos, _ := doc.Lookup("initialPosition")
	if pos.String() != "10,20" {
		t.Errorf("initialPosition = %q", pos.String())
	}
	exp, ok := doc.Lookup("experimental")
	if !ok || exp.Len() != 2 {
		t.Fatalf("experimental = %#v, want both nested keys", exp)
	}

	for _, bad := range []string{"=1", "noequals", "a..b=1", ".a=1"} {
		if _, err := ParseOverrides([]string{bad}); !errors.Is(err, ErrInvalidOverride) {
			t.Errorf("ParseOverrides(%q) error = %v, want ErrInvalidOverride", bad, err)
		}
	}
}

func TestApplication_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"initialRows": 40, "theme": "light"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	app, err := New(Options{
		ConfigPath: path,
		EnvPrefix:  "TCAPPTEST_",
		LogLevel:   "debug",
		LogFormat:  "json",
		Overrides:  []string{"initialCols=100"},
		LogOutput:  &logs,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Shutdown()

	if err := app.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := app.Config().Settings()
	if s.InitialRows != 40 || s.InitialCols != 100 {
		t.Errorf("rows, cols = %d, %d, want 40, 100", s.InitialRows, s.InitialCols)
	}
	if got := app.Config().Stack().WhichLayer("initialCols"); got != "arguments" {
		t.Errorf("initialCols came from %q, want arguments", got)
	}
	if !strings.Contains(logs.String(), `"component":"config"`) {
		t.Errorf("expected config component logs, got %s", logs.String())
	}

	if err := app.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := app.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestApplication_LoadFailureKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"initialRows": true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := New(Options{ConfigPath: path, EnvPrefix: "TCAPPTEST_", LogLevel: "off"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Shutdown()

	if err := app.Load(context.Background()); err == nil {
		t.Fatal("expected a load error")
	}
	if got := app.Config().Settings().InitialRows; got != 30 {
		t.Errorf("InitialRows = %d, want default 30", got)
	}
}

func TestNew_InitError(t *testing.T) {
	_, err := New(Options{LogFormat: "xml"})
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("err = %v, want *InitError", err)
	}
	if initErr.Component != "logger" {
		t.Errorf("Component = %q, want logger", initErr.Component)
	}

	_, err = New(Options{Overrides: []string{"bad"}})
	if !errors.As(err, &initErr) || initErr.Component != "overrides" {
		t.Errorf("err = %v, want overrides InitError", err)
	}
	if !errors.Is(err, ErrInvalidOverride) {
		t.Errorf("err = %v, want to wrap ErrInvalidOverride", err)
	}
}
