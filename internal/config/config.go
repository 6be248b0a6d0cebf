package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/termconf/internal/config/document"
	"github.com/dshills/termconf/internal/config/layer"
	"github.com/dshills/termconf/internal/config/loader"
	"github.com/dshills/termconf/internal/config/notify"
	"github.com/dshills/termconf/internal/config/registry"
	"github.com/dshills/termconf/internal/config/warning"
	"github.com/dshills/termconf/internal/config/watcher"
	"github.com/dshills/termconf/internal/logger"
	"github.com/dshills/termconf/internal/settings"
)

//go:embed defaults.json
var defaultSettings []byte

// SettingsFileName is the name of the user settings file.
const SettingsFileName = "settings.json"

// legacyGlobalsKey is the object older settings files kept global
// settings under.
const legacyGlobalsKey = "globals"

// Config loads settings from every source and keeps the effective
// GlobalAppSettings current.
type Config struct {
	mu sync.RWMutex

	stack    *layer.Stack
	settings *settings.GlobalAppSettings
	warnings []warning.Warning
	loaded   bool

	fs       loader.FileSystem
	registry *registry.Registry
	watcher  *watcher.Watcher
	notifier *notify.Notifier
	log      *logger.Logger

	// Settings sources
	userConfigPath    string
	projectConfigPath string
	envPrefix         string
	overrides         document.Document

	enableWatcher bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigPath sets the user settings file.
func WithUserConfigPath(path string) Option {
	return func(c *Config) {
		c.userConfigPath = path
	}
}

// WithProjectConfigPath sets a per-project settings file layered over the
// user's.
func WithProjectConfigPath(path string) Option {
	return func(c *Config) {
		c.projectConfigPath = path
	}
}

// WithEnvPrefix sets the prefix of environment variables read as
// settings. An empty prefix disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithOverrides adds a settings document layered above every other source,
// e.g. values given on the command line.
func WithOverrides(doc document.Document) Option {
	return func(c *Config) {
		c.overrides = doc
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFileSystem sets the file system settings files are read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// New creates a new Config instance with the given options. Settings
// hold the built-in defaults until Load is called.
func New(opts ...Option) *Config {
	c := &Config{
		stack:     layer.NewStack(),
		settings:  settings.New(),
		fs:        loader.DefaultFS(),
		registry:  registry.NewWithDefaults(),
		notifier:  notify.New(),
		log:       logger.Nop(),
		envPrefix: loader.DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigPath == "" {
		c.userConfigPath = DefaultUserConfigPath()
	}
	c.log = c.log.Component("config")

	return c
}

// Load reads every settings source and layers them, lowest priority first,
// onto fresh defaults. On failure the previously loaded settings stay in
// effect and the error says which layer and key failed.
func (c *Config) Load(ctx context.Context) error {
	if err := c.load(ctx, ""); err != nil {
		return err
	}
	return c.startWatcher()
}

// Reload is Load for an already loaded Config. Observers are told about
// every setting whose effective value changed.
func (c *Config) Reload(ctx context.Context) error {
	return c.load(ctx, "reload")
}

func (c *Config) load(ctx context.Context, source string) error {
	stack, legacy, err := c.buildStack(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("loading settings failed")
		return err
	}

	next := settings.New()
	if err := stack.Apply(next); err != nil {
		c.log.Error().Err(err).Msg("layering settings failed")
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	warnings := collectWarnings(next, legacy)

	c.mu.Lock()
	prev, wasLoaded := c.settings, c.loaded
	c.stack, c.settings, c.warnings, c.loaded = stack, next, warnings, true
	c.mu.Unlock()

	for _, w := range warnings {
		c.log.Warn().Stringer("warning", w).Msg(w.Message())
	}
	for _, l := range stack.Layers() {
		if unknown := c.registry.Unknown(l.Doc); len(unknown) > 0 {
			c.log.Debug().Str("layer", l.Name).Strs("keys", unknown).Msg("ignoring unknown settings")
		}
	}
	c.log.Debug().Int("layers", stack.Len()).Msg("settings loaded")

	if wasLoaded {
		c.notifyChanges(prev, next, source)
	}
	return nil
}

// buildStack reads every source into a new layer stack. Missing files are
// skipped.
func (c *Config) buildStack(ctx context.Context) (*layer.Stack, bool, error) {
	stack := layer.NewStack()

	defaults, err := document.Parse(defaultSettings)
	if err != nil {
		return nil, false, fmt.Errorf("parsing built-in defaults: %w", err)
	}
	stack.Add(layer.New(layer.SourceBuiltin, defaults))

	var legacy bool
	files := []struct {
		source layer.Source
		path   string
	}{
		{layer.SourceUser, c.userConfigPath},
		{layer.SourceProject, c.projectConfigPath},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		if f.path == "" {
			continue
		}

		l, usedGlobals, err := c.loadFile(f.source, f.path)
		if err != nil {
			return nil, false, err
		}
		if l != nil {
			stack.Add(l)
			legacy = legacy || usedGlobals
		}
	}

	if c.envPrefix != "" {
		env, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return nil, false, err
		}
		if env.Len() > 0 {
			stack.Add(layer.New(layer.SourceEnv, env))
		}
	}

	if c.overrides.Len() > 0 {
		stack.Add(layer.New(layer.SourceArgs, c.overrides))
	}

	return stack, legacy, nil
}

// loadFile reads one settings file. It returns a nil layer for a missing
// file, and reports whether the file kept settings under the legacy
// "globals" object.
func (c *Config) loadFile(source layer.Source, path string) (*layer.Layer, bool, error) {
	doc, err := loader.ForPath(c.fs, path).Load()
	if err != nil {
		return nil, false, err
	}
	if doc.IsNull() {
		c.log.Debug().Str("path", path).Msg("settings file not found, skipping")
		return nil, false, nil
	}

	var legacy bool
	if globals, ok := doc.Lookup(legacyGlobalsKey); ok && globals.Kind() == document.KindObject {
		doc = document.Merge(globals, doc)
		legacy = true
	}

	l := layer.New(source, doc)
	l.Path = path
	if info, err := c.fs.Stat(path); err == nil {
		l.ModTime = info.ModTime()
	}
	return l, legacy, nil
}

// collectWarnings gathers the warnings of a completed load.
func collectWarnings(s *settings.GlobalAppSettings, legacy bool) []warning.Warning {
	var warnings []warning.Warning
	if legacy {
		warnings = append(warnings, warning.LegacyGlobalsProperty)
	}
	if kw := s.KeybindingsWarnings(); len(kw) > 0 {
		warnings = append(warnings, warning.AtLeastOneKeybindingWarning)
		warnings = append(warnings, kw...)
	}
	return warnings
}

// notifyChanges tells observers which effective settings changed.
func (c *Config) notifyChanges(prev, next *settings.GlobalAppSettings, source string) {
	oldDoc, err := settingsDocument(prev)
	if err != nil {
		c.log.Error().Err(err).Msg("rendering previous settings")
		return
	}
	newDoc, err := settingsDocument(next)
	if err != nil {
		c.log.Error().Err(err).Msg("rendering new settings")
		return
	}

	batch := c.notifier.NewBatch()
	batch.Add(notify.Diff(oldDoc, newDoc, source)...)
	c.log.Info().Int("changes", batch.Len()).Str("source", source).Msg("settings reloaded")
	batch.Commit()
	c.notifier.NotifyReload(source)
}

func settingsDocument(s *settings.GlobalAppSettings) (document.Document, error) {
	data, err := s.ToJSON()
	if err != nil {
		return document.Null(), err
	}
	return document.Parse(data)
}

// startWatcher starts watching the settings files once, after the first
// successful load.
func (c *Config) startWatcher() error {
	c.mu.Lock()
	if !c.enableWatcher || c.watcher != nil {
		c.mu.Unlock()
		return nil
	}

	w, err := watcher.New()
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("starting settings watcher: %w", err)
	}
	c.watcher = w
	c.mu.Unlock()

	for _, path := range []string{c.userConfigPath, c.projectConfigPath} {
		if path == "" {
			continue
		}
		if err := w.Watch(path); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("cannot watch settings file")
		}
	}
	w.OnChange(c.handleFileChange)
	w.OnError(func(err error) {
		c.log.Warn().Err(err).Msg("settings watcher error")
	})
	w.Start()
	return nil
}

// handleFileChange reloads after a watched file changes. A reload that
// fails keeps the current settings; the error is only logged.
func (c *Config) handleFileChange(event watcher.Event) {
	c.log.Debug().Str("path", event.Path).Stringer("op", event.Op).Msg("settings file changed")
	if err := c.load(context.Background(), event.Path); err != nil {
		c.log.Warn().Err(err).Str("path", event.Path).Msg("keeping previous settings")
	}
}

// Settings returns the effective settings. The returned value is a
// snapshot owned by the caller; later reloads do not modify it.
func (c *Config) Settings() *settings.GlobalAppSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Clone()
}

// Warnings returns the warnings of the last successful load.
func (c *Config) Warnings() []warning.Warning {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]warning.Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Stack returns the layers of the last successful load.
func (c *Config) Stack() *layer.Stack {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stack
}

// Registry returns the descriptions of every known setting.
func (c *Config) Registry() *registry.Registry {
	return c.registry
}

// UserConfigPath returns the user settings file path.
func (c *Config) UserConfigPath() string {
	return c.userConfigPath
}

// Subscribe registers an observer for all settings changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes to a specific key.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Close shuts down the watcher and the notifier.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	c.notifier.Close()
	return err
}

// DefaultUserConfigPath returns the user settings file used when none is
// configured.
func DefaultUserConfigPath() string {
	return filepath.Join(defaultUserConfigDir(), SettingsFileName)
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "termconf")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "termconf")
}
