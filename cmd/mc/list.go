package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/listflags"
	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/internal/ui"
	"github.com/amonks/mindcache/item"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes and todos",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listFilter listflags.Filter
	listJSON   bool
	listFull   bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listflags.AddFilterFlags(listCmd, &listFilter)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listFull, "full", false, "Show every line, subtask and sub-note")
	addFilterFlagAliases(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := listFilter.Parse()
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	items := a.nb.Filtered(filter)
	if listJSON {
		if items == nil {
			items = []item.Item{}
		}
		return encodeJSON(cmd.OutOrStdout(), items)
	}
	if listFull {
		printItemDetails(cmd, a, items)
		return nil
	}
	printItemTable(cmd.OutOrStdout(), a, items, a.nb.Now())
	return nil
}

// printItemTable prints items in a table format.
func printItemTable(w io.Writer, a *app, items []item.Item, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}

	fmt.Fprint(w, formatItemTable(items, a.highlighter(), now))
}

func formatItemTable(items []item.Item, highlight func(string) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "TYPE", "STATUS", "DUE", "AGE", "TEXT"}, len(items))
	for _, it := range items {
		builder.AddRow([]string{
			highlight(it.ID),
			string(it.Type),
			statusCell(it),
			dueCell(it, now),
			ui.FormatTimeAgeShort(it.Timestamp, now),
			ui.TruncateTableCell(internalstrings.NormalizeWhitespace(internalstrings.FirstLine(it.Text))),
		})
	}
	return builder.String()
}

func statusCell(it item.Item) string {
	if !it.IsTodo() {
		return "-"
	}
	if !it.HasSubtasks() {
		return string(it.Status)
	}
	done := 0
	for _, s := range it.Subtasks {
		if s.Completed {
			done++
		}
	}
	return fmt.Sprintf("%s %d/%d", it.Status, done, len(it.Subtasks))
}

func dueCell(it item.Item, now time.Time) string {
	if it.DueDate == "" {
		return "-"
	}
	if it.IsOverdue(now) {
		return it.DueDate + "!"
	}
	return it.DueDate
}

func printItemDetails(cmd *cobra.Command, a *app, items []item.Item) {
	w := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}

	view := a.view(cmd)
	highlight := a.highlighter()
	for i, it := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s\n", highlight(it.ID), ui.FormatTimestamp(it.Timestamp))
		fmt.Fprintln(w, view.Detail(it, a.nb.Render(it, item.DefaultTarget)))
	}
}
