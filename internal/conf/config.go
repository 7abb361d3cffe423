package conf

import (
	"github.com/caarlos0/env/v6"
)

type App struct {
	PrometheusBind string `env:"PROMETHEUS_BIND" envDefault:":2112"`

	// PostgresDSN is a DSN for the postgres. Splash history is not recorded
	// when empty.
	PostgresDSN string `env:"POSTGRES_DSN"`

	// DebugDB logs every SQL statement.
	DebugDB bool `env:"DEBUG_DB" envDefault:"false"`

	// PoolsFile is a JSON array of pool descriptions.
	PoolsFile string `env:"POOLS_FILE,required"`

	// RulesFile is a JSON array of rule descriptions. Nothing is played
	// automatically when empty.
	RulesFile string `env:"RULES_FILE"`

	// Node is a name of the current host, stored with every splash.
	Node string `env:"NODE" envDefault:"local-laptop"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`
}

func (c *App) RecordingEnabled() bool {
	return c.PostgresDSN != ""
}

func ParseEnv() (*App, error) {
	cfg := App{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
