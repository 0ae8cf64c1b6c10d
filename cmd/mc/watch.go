package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/listflags"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the list again whenever the notebook changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var watchFilter listflags.Filter

func init() {
	rootCmd.AddCommand(watchCmd)
	listflags.AddFilterFlags(watchCmd, &watchFilter)
	addFilterFlagAliases(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filter, err := watchFilter.Parse()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	events, err := a.backend.Watch(ctx, a.nb.Owner())
	if err != nil {
		return a.check(err)
	}

	w := cmd.OutOrStdout()
	printItemTable(w, a, a.nb.Filtered(filter), a.nb.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.nb.Refresh(ctx); err != nil {
				// Keep watching with the previous list.
				_ = a.check(err)
				continue
			}
			fmt.Fprintln(w)
			printItemTable(w, a, a.nb.Filtered(filter), a.nb.Now())
		}
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
