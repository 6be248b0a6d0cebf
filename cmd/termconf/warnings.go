package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/termconf/internal/app"
)

func newWarningsCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "List the warnings of the last load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := loadApplication(cmd, *opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			warnings := application.Config().Warnings()
			out := cmd.OutOrStdout()
			if len(warnings) == 0 {
				fmt.Fprintln(out, "no warnings")
				return nil
			}
			for _, w := range warnings {
				fmt.Fprintf(out, "%s: %s\n", w, w.Message())
			}
			return nil
		},
	}
}
