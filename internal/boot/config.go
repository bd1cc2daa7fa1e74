package boot

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env           string `env:"ENV,default=dev"`
	DataDirectory string `env:"DATA_DIR,default=./data"`
	BindAddr      string `env:"BIND_ADDR,default=:3001"`
	MetricsAddr   string `env:"METRICS_ADDR,default=:8081"`
	StaticDir     string `env:"STATIC_DIR"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func Load() (*Config, error) {
	config := &Config{}
	if err := envconfig.Process(context.Background(), config); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}
