package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/termconf/internal/app"
)

func newExplainCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "explain KEY",
		Short: "Show which layer a setting comes from",
		Long: `Explain prints the raw value of KEY and the layer that set it,
checking layers from highest priority down. Nested keys are dotted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication(cmd, *opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			key := args[0]
			value, l, ok := application.Config().Stack().Get(key)
			if !ok {
				return fmt.Errorf("%s is not set by any layer", key)
			}
			data, err := marshalDocument(value)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s = %s\n", key, data)
			if l.Path != "" {
				fmt.Fprintf(out, "  from %s (%s)\n", l.Name, l.Path)
			} else {
				fmt.Fprintf(out, "  from %s\n", l.Name)
			}
			return nil
		},
	}
}
