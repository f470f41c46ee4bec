// Command gridserve serves rendered grid bands over HTTP.
//
// Endpoints:
//
//	GET  /dimensions                  grid geometry and total scroll extent
//	GET  /header.png?left=            header band
//	GET  /content.png?left=&top=      content band
//	GET  /frame.png?left=&top=        header stacked above content
//	GET  /rows?top=                   visible rows as JSON
//	GET  /stats                       segment and frame cache counters
//	POST /preload?segment=&amount=    warm the segment cache
//
// Grid settings are read like gridrender's: env file, GRID_* variables,
// then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/ggrid/internal/gridhost"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("gridserve: %v", err)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gridserve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		addr       = fs.String("addr", ":8080", "listen address")
		frameLimit = fs.Int("frames", 256, "encoded frames kept in memory (0: unlimited)")
	)
	opts, err := gridhost.LoadOptions(fs, args)
	if err != nil {
		return err
	}

	logger := gridhost.NewLogger(stderr, opts.Verbose)
	ctrl, closer, err := gridhost.Open(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	srv, err := newServer(ctrl, opts.Ratio, *frameLimit, logger)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
