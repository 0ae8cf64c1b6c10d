package main

import (
	"fmt"

	"github.com/spf13/cobra"

	internalstrings "github.com/amonks/mindcache/internal/strings"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete items",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		// Highlight before the delete so the prefix matches what the user saw.
		highlight := a.highlighter()
		deleted, err := a.nb.Delete(cmd.Context(), id)
		if err != nil {
			return a.check(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s: %s\n", deleted.Type, highlight(deleted.ID),
			internalstrings.FirstLine(deleted.Text))
	}
	return nil
}
