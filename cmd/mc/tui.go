package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/notestui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit the notebook interactively",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return notestui.Run(commandContext(cmd), a.nb, notestui.Options{
		Watcher: a.backend,
		Color:   a.color,
	})
}
