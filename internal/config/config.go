package config

import (
	"errors"
	"os"
	"time"

	"blackjack-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the blackjack server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Table Table `yaml:"table"`
}

// Table contains the defaults for new tables and the game options
type Table struct {
	StartingBalance    int           `yaml:"startingBalance" envconfig:"starting_balance"`
	MinBet             int           `yaml:"minBet" envconfig:"min_bet"`
	DeckCount          int           `yaml:"deckCount" envconfig:"deck_count"`
	PenetrationPercent float64       `yaml:"penetrationPercent" envconfig:"penetration_percent"`
	CutCardBuffer      int           `yaml:"cutCardBuffer" envconfig:"cut_card_buffer"`
	DealerStepDelay    time.Duration `yaml:"dealerStepDelay" envconfig:"dealer_step_delay"`
	DealerWatchdog     time.Duration `yaml:"dealerWatchdog" envconfig:"dealer_watchdog"`
	MaxDealerSteps     int           `yaml:"maxDealerSteps" envconfig:"max_dealer_steps"`
	CryptoShuffle      bool          `yaml:"cryptoShuffle" envconfig:"crypto_shuffle"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
		Table: Table{
			StartingBalance:    1000,
			MinBet:             50,
			DeckCount:          6,
			PenetrationPercent: 75,
			CutCardBuffer:      15,
			DealerStepDelay:    750 * time.Millisecond,
			DealerWatchdog:     30 * time.Second,
			MaxDealerSteps:     20,
		},
	}

	cfg.Log.Level = "info"
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; defaults and the environment are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("BJ_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("bj", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
