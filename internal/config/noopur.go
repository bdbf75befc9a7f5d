package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/coregate/pkg/log"
)

// NoopurConfig drives the optional external content service. With the
// flag off the gateway never touches the network.
type NoopurConfig struct {
	Enabled   bool   `env:"NOOPUR_ENABLED" envDefault:"false"`
	BaseURL   string `env:"NOOPUR_BASE_URL" envDefault:"http://localhost:5002"`
	APIKey    string `env:"NOOPUR_API_KEY"`
	TimeoutMs int    `env:"NOOPUR_TIMEOUT_MS" envDefault:"5000"`
}

func NewNoopurConfig(ctx context.Context) *NoopurConfig {
	c := &NoopurConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Noopur config")
	}
	return c
}

func (c NoopurConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
