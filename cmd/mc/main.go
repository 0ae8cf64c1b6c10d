// Package main implements the mc notebook CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mc",
	Short: "mindcache - notes and todos with #tags and @dates",
	Long: `mindcache keeps a notebook of notes and todos.

Start an entry with [] to make it a todo, or [x] for a finished one. Lines
starting with [] below a todo are subtasks and lines starting with "- " are
timestamped sub-notes. Mark text with #tags and due dates like @10/14.
Run "mc syntax" for the full markup reference.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootOwner string

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOwner, "owner", "", "Notebook owner (default from config or $USER)")
}
