package main

import (
	"flag"

	"github.com/caarlos0/env"
)

type Config struct {
	Address    string `env:"LISTEN_ADDRESS" envDefault:":8080"`
	DataDir    string `env:"DATA_DIR" envDefault:"data"`
	WarmOnBoot bool   `env:"WARM_ON_BOOT" envDefault:"true"`
}

// NewConfig reads env vars first, then lets flags override them.
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	dataDir := flag.String("d", cfg.DataDir, "Directory holding the Olist CSV files")
	warm := flag.Bool("w", cfg.WarmOnBoot, "Parse the datasets in the background at startup")

	flag.Parse()

	cfg.Address = *address
	cfg.DataDir = *dataDir
	cfg.WarmOnBoot = *warm

	return cfg, nil
}
