package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/termconf/internal/app"
	"github.com/dshills/termconf/internal/config"
)

func newMigrateCommand(opts *app.Options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite an outdated user settings file",
		Long: `Migrate rewrites the user settings file into its current form, for
example moving settings out of the deprecated "globals" object. With
--dry-run the result is printed instead of written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := app.ResolveOptions(*opts)
			if err != nil {
				return err
			}
			path := resolved.ConfigPath
			if path == "" {
				path = config.DefaultUserConfigPath()
			}

			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("no settings file at %s", path)
			}
			if err != nil {
				return err
			}

			migrated, results, err := config.DefaultMigrator().Migrate(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			applied := 0
			for _, r := range results {
				if r.Applied {
					applied++
					fmt.Fprintf(out, "%s: %s\n", r.Name, r.Description)
				}
			}
			if applied == 0 {
				fmt.Fprintf(out, "%s is up to date\n", path)
				return nil
			}
			if dryRun {
				_, err := out.Write(migrated)
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, migrated, info.Mode().Perm()); err != nil {
				return err
			}
			fmt.Fprintf(out, "rewrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the migrated file instead of writing it")
	return cmd
}
