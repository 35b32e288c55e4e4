// server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ViniZap4/noteful-server/config"
	httphandlers "github.com/ViniZap4/noteful-server/http"
	"github.com/ViniZap4/noteful-server/logging"
	"github.com/ViniZap4/noteful-server/storage"
	"github.com/ViniZap4/noteful-server/storage/memory"
	"github.com/ViniZap4/noteful-server/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage).Msg("open storage")
	}
	defer store.Close()

	server := httphandlers.NewServer(store, httphandlers.Options{
		Logger:       log,
		Production:   cfg.Production(),
		CORSOrigins:  cfg.CORSOrigins,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := server.Shutdown(cfg.ShutdownTimeout); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Str("storage", cfg.Storage).Msg("server starting")
	if err := server.Listen(cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("listen")
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StoragePostgres:
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
