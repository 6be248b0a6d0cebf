package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/termconf/internal/app"
)

// NewRootCommand builds the termconf command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:   "termconf",
		Short: "termconf - layered terminal settings",
		Long: `termconf loads terminal settings from built-in defaults, the user
settings file, an optional project file, the environment and the command
line, and shows the effective result.

Examples:
  termconf show
  termconf show --set initialRows=40
  termconf explain theme
  termconf watch --config ./settings.json`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "user settings file")
	flags.StringVarP(&opts.ProjectPath, "project", "p", "", "project settings file layered over the user's")
	flags.StringVar(&opts.EnvPrefix, "env-prefix", "", "prefix of environment variables read as settings (default TERMCONF_)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.LogFormat, "log-format", "", "log format (console, json)")
	flags.StringArrayVar(&opts.Overrides, "set", nil, "override a setting, key=value (repeatable)")

	rootCmd.AddCommand(
		newShowCommand(&opts),
		newExplainCommand(&opts),
		newKeysCommand(),
		newBindingsCommand(&opts),
		newWarningsCommand(&opts),
		newMigrateCommand(&opts),
		newWatchCommand(&opts),
	)

	return rootCmd
}

// loadApplication resolves opts and loads the settings. The caller owns
// the returned Application and must shut it down.
func loadApplication(cmd *cobra.Command, opts app.Options) (*app.Application, error) {
	resolved, err := app.ResolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if resolved.LogOutput == nil {
		resolved.LogOutput = cmd.ErrOrStderr()
	}

	application, err := app.New(resolved)
	if err != nil {
		return nil, err
	}
	if err := application.Load(cmd.Context()); err != nil {
		_ = application.Shutdown()
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return application, nil
}
