package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Inventory InventoryConfig
	Seed      SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WAREHOUSE_APP_ENV" default:"dev"`
	Port         string `envconfig:"WAREHOUSE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"WAREHOUSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WAREHOUSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `envconfig:"WAREHOUSE_HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	AllowedOrigins    []string      `envconfig:"WAREHOUSE_HTTP_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type InventoryConfig struct {
	// DefaultReorderLevel is used when a registration omits the reorder level.
	DefaultReorderLevel int `envconfig:"WAREHOUSE_INVENTORY_DEFAULT_REORDER_LEVEL" default:"10"`
}

type SeedConfig struct {
	DemoData bool `envconfig:"WAREHOUSE_SEED_DEMO_DATA" default:"false"`
}
