package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/item"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Complete or reopen todos",
	Long: `Complete or reopen todos.

A todo with subtasks takes its status from them; toggle a subtask instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runToggle,
}

var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Work with subtasks",
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle <id> <n>",
	Short: "Complete or reopen the nth subtask of a todo",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd, subtaskCmd)
	subtaskCmd.AddCommand(subtaskToggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		toggled, err := a.nb.Toggle(cmd.Context(), id)
		if err != nil {
			return a.check(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", toggleVerb(toggled.Status), a.highlighter()(toggled.ID),
			internalstrings.FirstLine(toggled.Text))
	}
	return nil
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return fmt.Errorf("subtask number must be a positive integer, got %q", args[1])
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	toggled, err := a.nb.ToggleSubtask(cmd.Context(), args[0], n-1)
	if err != nil {
		return a.check(err)
	}
	if n > len(toggled.Subtasks) {
		return fmt.Errorf("%w: %d", item.ErrSubtaskNotFound, n)
	}
	subtask := toggled.Subtasks[n-1]
	fmt.Fprintf(cmd.OutOrStdout(), "%s subtask %d of %s: %s\n", toggleVerb(subtaskStatus(subtask)), n,
		a.highlighter()(toggled.ID), subtask.Text)
	if toggled.Status == item.StatusCompleted {
		fmt.Fprintf(cmd.OutOrStdout(), "All subtasks done: %s\n", internalstrings.FirstLine(toggled.Text))
	}
	return nil
}

func subtaskStatus(s item.Subtask) item.Status {
	if s.Completed {
		return item.StatusCompleted
	}
	return item.StatusIncomplete
}

func toggleVerb(status item.Status) string {
	if status == item.StatusCompleted {
		return "Completed"
	}
	return "Reopened"
}
