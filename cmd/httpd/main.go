package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/EHWIYA/adsp-quiz-back/internal/bootstrap"
	"github.com/EHWIYA/adsp-quiz-back/internal/config"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

func main() {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	log.Info("starting adsp-quiz-back",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port))

	ctx := context.Background()
	app, err := bootstrap.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", logger.Error(err))
	}
	defer app.Close() //nolint:errcheck // process is exiting

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.Server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("server error", logger.Error(err))
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Service.ShutdownTimeout)
		defer cancel()

		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", logger.Error(err))
			os.Exit(1)
		}

		log.Info("server stopped")
	}
}
