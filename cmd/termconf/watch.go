package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/termconf/internal/app"
	"github.com/dshills/termconf/internal/config/notify"
)

func newWatchCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload settings whenever a settings file changes",
		Long: `Watch loads the settings, then prints every change to the effective
settings each time the user or project file is saved. A file that fails to
load keeps the previous settings. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watchOpts := *opts
			watchOpts.Watch = true

			application, err := loadApplication(cmd, watchOpts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			out := cmd.OutOrStdout()
			sub := application.Config().Subscribe(func(c notify.Change) {
				fmt.Fprintln(out, formatChange(c))
			})
			defer sub.Unsubscribe()

			application.Logger().Info().
				Str("path", application.Config().UserConfigPath()).
				Msg("watching settings")

			<-cmd.Context().Done()
			return nil
		},
	}
}

func formatChange(c notify.Change) string {
	switch c.Type {
	case notify.ChangeReload:
		return fmt.Sprintf("reloaded from %s", c.Source)
	case notify.ChangeAdd:
		return fmt.Sprintf("add %s = %s", c.Path, valueString(c.NewValue))
	case notify.ChangeRemove:
		return fmt.Sprintf("remove %s (was %s)", c.Path, valueString(c.OldValue))
	default:
		return fmt.Sprintf("%s %s: %s -> %s", c.Type, c.Path, valueString(c.OldValue), valueString(c.NewValue))
	}
}
