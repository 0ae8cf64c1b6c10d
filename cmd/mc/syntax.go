package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/config"
	"github.com/amonks/mindcache/internal/markdown"
)

var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Show the notebook markup reference",
	Args:  cobra.NoArgs,
	RunE:  runSyntax,
}

const defaultSyntaxWidth = 80

func init() {
	rootCmd.AddCommand(syntaxCmd)
}

func runSyntax(cmd *cobra.Command, args []string) error {
	width := defaultSyntaxWidth
	if dir, err := workingDir(); err == nil {
		if cfg, err := config.Load(dir); err == nil && cfg.Display.Width > 0 {
			width = cfg.Display.Width
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderGuide(width))
	return nil
}
