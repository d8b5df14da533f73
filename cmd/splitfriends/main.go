package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitfriends/internal/config"
	"github.com/mmynk/splitfriends/internal/server"
	"github.com/mmynk/splitfriends/internal/tui"
	"github.com/mmynk/splitfriends/pkg/logging"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "splitfriends: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "splitfriends",
		Short:         "Split bills with friends and track who owes whom",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCommand(), newTUICommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ledger service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			out, closeLog, err := logOutput(cfg.LogFile, os.Stdout)
			if err != nil {
				return err
			}
			defer closeLog()
			logging.Setup(out, cfg.LogLevel, cfg.LogFormat)

			srv, err := server.New(cfg)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
}

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal client",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			// The terminal belongs to the UI; logs go to a file or nowhere.
			out, closeLog, err := logOutput(cfg.LogFile, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()
			logging.Setup(out, cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			baseURL := cfg.Server
			if baseURL == "" {
				url, shutdown, err := startLocalServer(ctx, cfg)
				if err != nil {
					return err
				}
				defer shutdown()
				baseURL = url
			}

			slog.Info("Starting terminal client", "server", baseURL)
			return tui.New(http.DefaultClient, baseURL).Run(ctx)
		},
	}
}

// startLocalServer runs the ledger service on a loopback port for the
// lifetime of the terminal client.
func startLocalServer(ctx context.Context, cfg *config.Config) (string, func(), error) {
	srv, err := server.New(cfg)
	if err != nil {
		return "", nil, err
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		srv.Close()
		return "", nil, fmt.Errorf("failed to listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ctx, l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Local server failed", "error", err)
		}
	}()

	shutdown := func() {
		cancel()
		<-done
		srv.Close()
	}
	return "http://" + l.Addr().String(), shutdown, nil
}

// logOutput opens path for appending, or returns fallback when path is empty.
func logOutput(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
