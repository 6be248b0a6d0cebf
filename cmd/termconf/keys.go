package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/termconf/internal/app"
	"github.com/dshills/termconf/internal/config/registry"
	"github.com/dshills/termconf/internal/settings"
)

func newKeysCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "keys [QUERY]",
		Short: "List the recognized global setting keys",
		Long: `Keys lists every global setting in the order it is layered. With
QUERY only keys or descriptions containing it are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.NewWithDefaults()
			match := map[string]bool{}
			if len(args) == 1 {
				for _, s := range reg.Search(args[0]) {
					match[s.Key] = true
				}
			}

			out := cmd.OutOrStdout()
			for _, key := range settings.KnownKeys() {
				if len(args) == 1 && !match[key] {
					continue
				}
				if !verbose {
					fmt.Fprintln(out, key)
					continue
				}
				s := reg.Get(key)
				fmt.Fprintf(out, "%-28s %-12s %s\n", key, s.Type, s.Description)
				if s.Type != registry.TypeKeybindings {
					fmt.Fprintf(out, "%-28s default %s\n", "", valueString(s.Default))
				}
				if len(s.Enum) > 0 {
					fmt.Fprintf(out, "%-28s one of %s\n", "", strings.Join(s.Enum, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show type, description and default")
	return cmd
}

func newBindingsCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "List the effective key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := loadApplication(cmd, *opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			var ts settings.TerminalSettings
			application.Config().Settings().ApplyTo(&ts)

			out := cmd.OutOrStdout()
			for _, b := range ts.KeyBindings.Bindings() {
				if b.Args.IsNull() {
					fmt.Fprintf(out, "%-24s %s\n", b.Chord, b.Action)
					continue
				}
				args, err := marshalDocument(b.Args)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-24s %s %s\n", b.Chord, b.Action, args)
			}
			return nil
		},
	}
}
