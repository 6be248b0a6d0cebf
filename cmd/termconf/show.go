package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/dshills/termconf/internal/app"
	"github.com/dshills/termconf/internal/config/document"
)

func newShowCommand(opts *app.Options) *cobra.Command {
	var layerName string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as JSON",
		Long: `Show prints the effective settings after every layer was applied.
With --layer it prints the raw document of a single layer instead
(defaults, user, project, environment or arguments).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := loadApplication(cmd, *opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			var data []byte
			if layerName == "" {
				data, err = application.Config().Settings().ToJSON()
			} else {
				l := application.Config().Stack().Layer(layerName)
				if l == nil {
					return fmt.Errorf("no layer named %q", layerName)
				}
				data, err = marshalDocument(l.Doc)
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(pretty.Pretty(data))
			return err
		},
	}

	cmd.Flags().StringVar(&layerName, "layer", "", "print a single layer")
	return cmd
}

func marshalDocument(doc document.Document) ([]byte, error) {
	return json.Marshal(doc.Value())
}

func valueString(doc document.Document) string {
	data, err := marshalDocument(doc)
	if err != nil {
		return doc.GoString()
	}
	return string(data)
}
