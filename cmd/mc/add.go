package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/editor"
	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a note or todo",
	Long: `Add a note or todo.

Pass the text as an argument, or "-" to read it from stdin. Use --edit to
write it in $EDITOR; an argument then pre-fills the editor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var addEdit bool

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text, err := addText(args)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.nb.Add(cmd.Context(), text)
	if err != nil {
		return a.check(err)
	}
	highlight := a.highlighter()
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s: %s\n", created.Type, highlight(created.ID),
		ui.TruncateTableCell(internalstrings.FirstLine(created.Text)))
	return nil
}

func addText(args []string) (string, error) {
	if addEdit {
		data := editor.ItemData{}
		if len(args) > 0 {
			data.Text = args[0]
		}
		return editor.EditItemWithData(data)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("text is required (use - to read stdin or --edit to open $EDITOR)")
	}
	return readText(args[0], os.Stdin)
}
