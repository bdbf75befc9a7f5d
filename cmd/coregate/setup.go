package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/coregate/internal/config"
	"github.com/sandevgo/coregate/internal/core"
	"github.com/sandevgo/coregate/internal/gateway"
	"github.com/sandevgo/coregate/internal/modules"
	"github.com/sandevgo/coregate/internal/providers/noopur"
	"github.com/sandevgo/coregate/internal/storage/sqlite"
	"github.com/sandevgo/coregate/internal/transport/httpapi"
	"github.com/sandevgo/coregate/pkg/log"
	"github.com/sandevgo/coregate/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.IsDebug()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	noopurCfg := config.NewNoopurConfig(ctx)

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	interactions := sqlite.NewInteractionsRepo(db, appCfg.ModuleContextLimit)
	feedbackSink := sqlite.NewFeedbackRepo(db)

	// 3. External content service (feature-flagged)
	var contentSvc core.ContentService
	if noopurCfg.Enabled {
		contentSvc = noopur.NewClient(noopurCfg.BaseURL, noopurCfg.APIKey, noopurCfg.Timeout())
		logger.Info().Str("base_url", noopurCfg.BaseURL).Msg("noopur forwarding enabled")
	}

	// 4. Gateway
	creator := gateway.NewCreatorRouter(contentSvc, interactions, appCfg.WarmContextLimit)
	registry := gateway.NewRegistry(modules.NewHandlers())
	gw := gateway.New(registry, interactions, feedbackSink, creator, gateway.Options{
		WarmContextLimit: appCfg.WarmContextLimit,
		EnrichTimeout:    appCfg.EnrichTimeout(),
	})

	logger.Info().Strs("modules", registry.List()).Msg("module registry ready")

	// 5. HTTP API
	if appCfg.EnableHTTP {
		handlers := httpapi.NewHandlers(gw, interactions)
		services = append(services, httpapi.NewServer(appCfg.HTTPAddr, handlers))
	}

	return services
}

func initEnv(ctx context.Context, debug bool) error {
	envPath := filepath.Join(config.NewAppConfig(ctx).GetRuntimePath(), ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		// No runtime .env; environment variables alone drive the config
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return err
	}
	if debug {
		log.FromCtx(ctx).Debug().Str("path", envPath).Msg("loaded env file")
	}
	return nil
}

func initStorage(ctx context.Context, appCfg *config.AppConfig) (*sql.DB, error) {
	return sqlite.NewDB(ctx, appCfg.GetDatabasePath())
}
