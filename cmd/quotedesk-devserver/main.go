// Command quotedesk-devserver serves demo quotation data over the same REST
// endpoints the quotedesk client reads.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"quotedesk/internal/debug"
	"quotedesk/internal/devserver"
)

const shutdownTimeout = 5 * time.Second

func main() {
	fs := pflag.NewFlagSet("quotedesk-devserver", pflag.ContinueOnError)
	addr := fs.String("addr", "localhost:8089", "Listen address")
	dbPath := fs.String("db", "quotedesk-dev.db", "SQLite database path")
	seed := fs.Bool("seed", true, "Seed demo data into an empty database")
	debugFlag := fs.Bool("debug", false, "Write a debug log")
	debugPath := fs.String("debug-path", "", "Debug log path (default ~/.quotedesk/debug.log)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := debug.InitWithPath(*debugFlag, *debugPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *addr, *dbPath, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		debug.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, dbPath string, seed bool) error {
	store, err := devserver.OpenStore(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	if seed {
		inserted, err := store.Seed(ctx, time.Now())
		if err != nil {
			return err
		}
		if inserted {
			fmt.Printf("Seeded demo data for users %v\n", devserver.SeedOwners)
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           devserver.NewServer(store, nil).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Serving on http://%s (metrics at /metrics)\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
