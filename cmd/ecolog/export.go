package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecolog-dev/ecolog/internal/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [workspace-path]",
	Short: "Export the resolved variables as json, yaml, toml, or dotenv",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExport(args); err != nil {
			fmt.Printf("Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runExport(args []string) error {
	exporter, err := export.ByFormat(exportFormat)
	if err != nil {
		return err
	}

	eng, err := newEngine(args)
	if err != nil {
		return err
	}

	var vars []export.Variable
	for _, v := range eng.variables() {
		vars = append(vars, export.Variable{
			Name:   v.Name,
			Value:  v.display(eng.opts),
			Type:   v.Type,
			Source: v.Source,
		})
	}

	out, err := exporter.Export(vars)
	if err != nil {
		return fmt.Errorf("%s export failed: %w", exporter.Name(), err)
	}

	_, err = os.Stdout.Write(out)
	return err
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json, yaml, toml, dotenv")
	rootCmd.AddCommand(exportCmd)
}
