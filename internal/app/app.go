// Package app wires the logger and the settings engine together from
// resolved Options. The command line and anything embedding termconf
// start here.
package app

import (
	"context"
	"sync/atomic"

	"github.com/dshills/termconf/internal/config"
	"github.com/dshills/termconf/internal/logger"
)

// Application owns the logger and the settings Config built from Options.
type Application struct {
	opts   Options
	log    *logger.Logger
	config *config.Config

	closed atomic.Bool
}

// New creates an Application from opts. Options are used as given; call
// ResolveOptions first to apply the environment and defaults.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	log, err := logger.New(logger.Config{
		Level:  app.opts.LogLevel,
		Format: logger.Format(app.opts.LogFormat),
		Output: app.opts.LogOutput,
	})
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	app.log = log

	overrides, err := ParseOverrides(app.opts.Overrides)
	if err != nil {
		return &InitError{Component: "overrides", Err: err}
	}

	configOpts := []config.Option{
		config.WithLogger(log),
		config.WithEnvPrefix(app.opts.EnvPrefix),
		config.WithOverrides(overrides),
		config.WithWatcher(app.opts.Watch),
	}
	if app.opts.ConfigPath != "" {
		configOpts = append(configOpts, config.WithUserConfigPath(app.opts.ConfigPath))
	}
	if app.opts.ProjectPath != "" {
		configOpts = append(configOpts, config.WithProjectConfigPath(app.opts.ProjectPath))
	}
	app.config = config.New(configOpts...)

	return nil
}

// Load loads the settings. On failure the built-in defaults stay in
// effect and the error is returned for the caller to report.
func (app *Application) Load(ctx context.Context) error {
	ctx = app.log.WithContext(ctx)
	if err := app.config.Load(ctx); err != nil {
		return err
	}
	app.log.Debug().
		Str("user", app.config.UserConfigPath()).
		Int("warnings", len(app.config.Warnings())).
		Msg("settings ready")
	return nil
}

// Config returns the settings engine.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logger.Logger {
	return app.log
}

// Options returns the options the application was built from.
func (app *Application) Options() Options {
	return app.opts
}

// Shutdown stops the watcher and the notifier. It is safe to call more
// than once.
func (app *Application) Shutdown() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}
	return app.config.Close()
}
