package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/carbocation/variantatlas"
)

func main() {
	// A missing .env is normal; anything already in the environment wins.
	_ = godotenv.Load()

	cfg, err := parseConfig(os.Args[1:], os.LookupEnv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := newLogger(cfg)

	if err := run(cfg, &log); err != nil {
		log.Error().Err(err).Msg("Exiting due to error")
		os.Exit(1)
	}
}

func newLogger(cfg Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()
}

func run(cfg Config, log *zerolog.Logger) error {
	errs := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGUSR1,
	)

	sclient, err := storageClient(context.Background(), cfg)
	if err != nil {
		return err
	}
	if sclient != nil {
		defer sclient.Close()
	}

	global := NewGlobal(cfg, log, sclient)

	log.Info().
		Object("build", global.Build).
		Strs("data_roots", cfg.DataRoots).
		Str("ellipsis", cfg.EllipsisMode().String()).
		Int("label_limit", cfg.LabelLimit).
		Msg("Launching " + global.Site)

	routing, err := router(global)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(`:%d`, cfg.Port),
		Handler:           routing,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Warm the cache. A failure is logged and retried on the next request.
	go func() {
		_, _ = global.Table(context.Background())
	}()

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Starting HTTP server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			return
		}
		errs <- nil
	}()

	for {
		select {
		case sigl := <-sig:
			if sigl == syscall.SIGUSR1 {
				SigStatus(log)
				continue
			}

			log.Info().Str("signal", sigl.String()).Msg("Shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			err := srv.Shutdown(shutdownCtx)
			cancel()
			if err != nil {
				return err
			}

			log.Info().Msg("Stopped")
			return nil

		case err := <-errs:
			if err == nil {
				log.Info().Msg("Finished")
			}
			return err
		}
	}
}

// storageClient returns nil unless a data root lives in Google Storage.
func storageClient(ctx context.Context, cfg Config) (*storage.Client, error) {
	needed := false
	for _, root := range cfg.DataRoots {
		if variantatlas.IsGoogleStoragePath(root) {
			needed = true
			break
		}
	}
	if !needed {
		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.GCSAnonymous {
		opts = append(opts, option.WithoutAuthentication())
	}

	return storage.NewClient(ctx, opts...)
}

func SigStatus(log *zerolog.Logger) {
	log.Info().Int("goroutines", runtime.NumGoroutine()).Msg("Status")
}
