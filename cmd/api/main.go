package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"godrv/adapters/api"
	"godrv/adapters/postgres"
	"godrv/domain/randvar"
	"godrv/internal"
	"godrv/internal/config"
	"godrv/internal/family"
)

func main() {
	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load configuration: %v", err)
		os.Exit(1)
	}

	service := api.NewService(logger)

	die, err := randvar.Uniform([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		logger.Error("build demo die: %v", err)
		os.Exit(1)
	}
	dieID := service.Register("fair-die", die)

	families := family.NewRegistry()
	binom, err := families.BuildWith("binomial", family.Params{"n": 10, "p": 0.5}, cfg.FamilyOptions())
	if err != nil {
		logger.Error("build demo binomial: %v", err)
		os.Exit(1)
	}
	binomID := service.Register("binomial-10-half", binom)

	if cfg.Database.URL != "" {
		ctx := context.Background()
		repo, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("connect snapshot store: %v", err)
			os.Exit(1)
		}
		defer repo.Close()
		if err := repo.Save(ctx, dieID, "fair-die", die); err != nil {
			logger.Error("persist die snapshot: %v", err)
			os.Exit(1)
		}
		if err := repo.Save(ctx, binomID, "binomial-10-half", binom); err != nil {
			logger.Error("persist binomial snapshot: %v", err)
			os.Exit(1)
		}
		logger.Info("snapshots persisted to database")
	}

	addr := ":" + cfg.Server.Port
	logger.Info("snapshot server listening on %s", addr)
	if err := http.ListenAndServe(addr, service.Router()); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}
