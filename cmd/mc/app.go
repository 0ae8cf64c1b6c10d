package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/config"
	"github.com/amonks/mindcache/internal/logging"
	"github.com/amonks/mindcache/internal/termview"
	"github.com/amonks/mindcache/internal/ui"
	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/store"
)

// app is the notebook a command works on, opened from the config of the
// working directory.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	backend store.Backend
	nb      *item.Notebook
	color   bool
}

func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := workingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if rootOwner != "" {
		cfg.User.Owner = rootOwner
	}

	logger, err := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	logger.WithFields(log.Fields{"backend": cfg.Store.Backend, "owner": cfg.User.Owner}).Debug("opening notebook")

	backend, err := store.Open(ctx, cfg.Store, nil)
	if err != nil {
		return nil, err
	}

	nb, err := item.OpenNotebook(ctx, backend, item.NotebookOptions{Owner: cfg.User.Owner})
	a := &app{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		nb:      nb,
		color:   ui.ColorEnabled(cfg.Display.Color),
	}
	if err != nil {
		err = a.check(err)
		_ = backend.Close()
		return nil, err
	}
	return a, nil
}

func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.WithError(err).Debug("close store")
	}
}

// check logs store failures before they are returned to the user.
func (a *app) check(err error) error {
	var storeErr *item.StoreError
	if errors.As(err, &storeErr) {
		logging.StoreFailure(a.logger, storeErr.Op, storeErr.Err)
	}
	return err
}

func (a *app) view(cmd *cobra.Command) *termview.View {
	return termview.New(cmd.OutOrStdout(), termview.Options{
		Width:      a.cfg.Display.Width,
		Color:      a.color,
		Hyperlinks: true,
		Now:        a.nb.Now,
	})
}

// highlighter highlights unique ID prefixes within the notebook's items.
func (a *app) highlighter() func(string) string {
	prefixLengths := a.nb.IDIndex().PrefixLengths()
	return func(id string) string {
		return ui.HighlightID(id, ui.PrefixLength(prefixLengths, id), a.color)
	}
}
