package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an item",
	Long: `Edit an item.

Opens $EDITOR on the item's full text, subtasks and sub-notes included.
Use --text to replace the text without an editor ("-" reads stdin).
Sub-notes whose text is unchanged keep their timestamps.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editText string

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editText, "text", "", "Replacement text (use '-' to read from stdin)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	existing, err := a.nb.Item(args[0])
	if err != nil {
		return err
	}

	var text string
	if cmd.Flags().Changed("text") {
		text, err = readText(editText, os.Stdin)
	} else {
		text, err = editor.EditItem(&existing)
	}
	if err != nil {
		return err
	}

	updated, err := a.nb.Edit(cmd.Context(), existing.ID, text)
	if err != nil {
		return a.check(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", updated.Type, a.highlighter()(updated.ID))
	return nil
}
