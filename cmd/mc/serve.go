package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notebook web view",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

const shutdownTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Web.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	handler := web.NewHandler(a.nb, web.Options{Logger: a.logger})
	go func() {
		if err := handler.Watch(ctx, a.backend); err != nil {
			a.logger.WithError(err).Warn("watch store")
		}
	}()

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		a.logger.WithField("addr", addr).Info("serving notebook on http://" + addr)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
