package main

import (
	"context"
	"os"

	"github.com/boilerplan/boilerplan/advisor"
	"github.com/boilerplan/boilerplan/config"
	"github.com/boilerplan/boilerplan/db"
	"github.com/boilerplan/boilerplan/httpapi"
	"github.com/boilerplan/boilerplan/logger"
)

func main() {
	configPath := os.Getenv("ADVISOR_CONFIG")
	if configPath == "" {
		configPath = "advisor.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		// No logger yet: config decides its mode.
		panic(err)
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseConnectionString)
	if err != nil {
		log.Fatal("catalog store connection failed", "error", err)
	}
	defer database.Close()

	service, err := advisor.NewService(ctx, database, log, cfg.MajorId)
	if err != nil {
		log.Fatal("advisor service construction failed", "error", err)
	}

	if cfg.ModelProvider == "" {
		log.Info("no model provider configured, using fallback extractor only")
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Log:            log,
		AdvisorHandler: httpapi.NewAdvisorHandler(log, service),
	})

	log.Info("advisor listening", "addr", cfg.Addr, "major_id", cfg.MajorId)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
