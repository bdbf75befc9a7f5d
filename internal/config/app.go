package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/coregate/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"COREGATE_RUNTIME_PATH" envDefault:".coregate"`

	// Transport Flags
	EnableHTTP bool   `env:"ENABLE_HTTP" envDefault:"true"`
	HTTPAddr   string `env:"HTTP_ADDR" envDefault:":8080"`

	// Context Management
	// Warm context is the small window injected into prompt enrichment;
	// the module cap bounds module-scoped retrieval.
	WarmContextLimit   int `env:"WARM_CONTEXT_LIMIT" envDefault:"3"`
	ModuleContextLimit int `env:"MODULE_CONTEXT_LIMIT" envDefault:"5"`

	// Enrichment lookups degrade to no context after this many milliseconds
	EnrichTimeoutMs int `env:"ENRICH_TIMEOUT_MS" envDefault:"2000"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "coregate.db")
}

func (c AppConfig) EnrichTimeout() time.Duration {
	return time.Duration(c.EnrichTimeoutMs) * time.Millisecond
}
