package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/ui"
	"github.com/amonks/mindcache/item"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an item in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var (
	showJSON   bool
	showTarget string
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	showCmd.Flags().StringVar(&showTarget, "render", "", "Output the rendering for this target as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	it, err := a.nb.Item(args[0])
	if err != nil {
		return err
	}
	if showTarget != "" {
		return encodeJSON(cmd.OutOrStdout(), a.nb.Render(it, showTarget))
	}
	if showJSON {
		return encodeJSON(cmd.OutOrStdout(), it)
	}

	w := cmd.OutOrStdout()
	view := a.view(cmd)
	highlight := a.highlighter()
	fmt.Fprintf(w, "ID:      %s\n", highlight(it.ID))
	fmt.Fprintf(w, "Type:    %s\n", it.Type)
	if it.IsTodo() {
		fmt.Fprintf(w, "Status:  %s\n", it.Status)
	}
	if len(it.Tags) > 0 {
		fmt.Fprintf(w, "Tags:    %s\n", tagList(view, a.nb.Colors(), it.Tags))
	}
	if it.DueDate != "" {
		fmt.Fprintf(w, "Due:     %s\n", it.DueDate)
	}
	fmt.Fprintf(w, "Created: %s (%s)\n", ui.FormatTimestamp(it.Timestamp), ui.FormatTimeAgo(it.Timestamp, a.nb.Now()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, view.Detail(it, a.nb.Render(it, item.DefaultTarget)))
	return nil
}
