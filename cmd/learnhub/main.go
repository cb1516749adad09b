package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aditya1111/learnhub/internal/app"
	"github.com/aditya1111/learnhub/internal/config"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.example.yaml", "Path to YAML config")
	flag.Parse()

	// .env es opcional; en contenedores las vars vienen del entorno.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "learnhub",
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.L().Fatal("bootstrap failed", logger.Err(err))
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		logger.L().Fatal("server failed", logger.Err(err))
	}
}
