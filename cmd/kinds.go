package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"flowstudio/internal/api/service"
	"flowstudio/internal/editor/plugin"
	"flowstudio/internal/editor/socket"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// kindsCmd prints the node-kind catalog without touching the database.
var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "Print the node-kind catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return writeCatalog(cmd.Context(), cmd.OutOrStdout(), format)
	},
}

func init() {
	kindsCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml or json)")
	rootCmd.AddCommand(kindsCmd)
}

func writeCatalog(ctx context.Context, w io.Writer, format string) error {
	engine, err := plugin.NewTemplateEngine()
	if err != nil {
		return err
	}
	descriptors := plugin.NewDefaultRegistry(socket.NewFlowSockets(), engine)
	entries, err := service.NewNodeKindService(descriptors, 0).Catalog(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(entries)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
