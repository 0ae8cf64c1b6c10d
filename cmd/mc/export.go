package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/amonks/mindcache/internal/listflags"
	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export items and tag colors as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	exportFilter listflags.Filter
	exportFormat string
	exportOutput string
)

// exportDocument is the exported notebook.
type exportDocument struct {
	Owner     string           `json:"owner" yaml:"owner"`
	TagColors markup.TagColors `json:"tag_colors" yaml:"tag_colors"`
	Items     []item.Item      `json:"items" yaml:"items"`
}

func init() {
	rootCmd.AddCommand(exportCmd)
	listflags.AddFilterFlags(exportCmd, &exportFilter)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	addFilterFlagAliases(exportCmd)
	setFlagAliases(exportCmd.Flags(), formatFlagAliases)
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := exportFilter.Parse()
	if err != nil {
		return err
	}
	if exportFormat != "json" && exportFormat != "yaml" {
		return fmt.Errorf("unknown export format %q (want json or yaml)", exportFormat)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	doc := exportDocument{
		Owner:     a.nb.Owner(),
		TagColors: a.nb.Colors(),
		Items:     a.nb.Filtered(filter),
	}
	if doc.Items == nil {
		doc.Items = []item.Item{}
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeExport(w, exportFormat, doc)
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return encodeJSON(w, doc)
}
