package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"url-reputation-poc/config"
	"url-reputation-poc/repscan"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	serviceA := repscan.NewScoreClient(cfg.ServiceA, log)
	serviceB := repscan.NewThreatClient(cfg.ServiceB, log)

	var enricher *repscan.WhoisEnricher
	if cfg.WhoisEnrich {
		enricher = repscan.NewWhoisEnricher(log)
	}

	scanner := repscan.NewScanner(serviceA, serviceB, enricher, log)
	handler := repscan.NewHandler(scanner, log)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler.Routes()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info().Str("port", cfg.Port).Msg("url-reputation service listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server error")
	}
}
