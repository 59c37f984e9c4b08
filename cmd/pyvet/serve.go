package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/api"
	"github.com/pyvet/pyvet/internal/store"
)

var flagServeAddr string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored runs and rule metadata over HTTP",
		Long: `Start an HTTP server exposing stored runs, findings, verdicts, and rule
metadata as a JSON API under /api/v1.`,
		RunE: runServe,
	}

	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	srv := &api.Server{
		Store:    store.NewFileStore(cfg.Store.Dir),
		Registry: analyzer.DefaultRegistry(),
		Logger:   logger,
		Version:  version,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
	}
	return nil
}
