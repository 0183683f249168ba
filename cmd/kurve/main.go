package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/tomz197/kurve/internal/config"
	"github.com/tomz197/kurve/internal/loop"
	"github.com/tomz197/kurve/internal/spectate"
)

func main() {
	logger, closeLog, err := newLogger(config.GetEnv("KURVE_LOG_FILE", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := loop.Options{
		Seed:   uint64(config.GetEnvInt("KURVE_SEED", 0)),
		Logger: logger,
	}

	if addr := config.GetEnv("KURVE_SPECTATE_ADDR", ""); addr != "" {
		spectators := spectate.NewServer(logger.WithPrefix("spectate"))
		srv := newSpectateServer(addr, spectators)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()

		feed := spectators.Open(uuid.New().String())
		defer feed.Close()
		opts.Publisher = feed
		logger.Info("spectating enabled", "addr", addr, "game", feed.ID())
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, opts)
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", runErr)
		os.Exit(1)
	}
}

// newLogger logs to path, or discards when path is empty. The terminal is
// in raw mode while the game runs, so nothing goes to stderr.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "kurve",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

func newSpectateServer(addr string, spectators *spectate.Server) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	spectators.Routes(r)

	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
