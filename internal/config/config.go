package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment. A
// .env file is honored when present.
type Config struct {
	ChannelSecret string // webhook signature key
	ChannelToken  string // reply API bearer token
	Port          int
	DatabaseURL   string   // Postgres DSN; empty selects the in-memory store
	KafkaBrokers  []string // empty disables event publishing
	TimeZone      string   // fixed zone for record timestamps
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ChannelSecret: os.Getenv("CHANNEL_SECRET"),
		ChannelToken:  os.Getenv("CHANNEL_ACCESS_TOKEN"),
		Port:          8000,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		TimeZone:      "Asia/Taipei",
	}

	if cfg.ChannelSecret == "" || cfg.ChannelToken == "" {
		return nil, fmt.Errorf("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set")
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if tz := os.Getenv("TIME_ZONE"); tz != "" {
		cfg.TimeZone = tz
	}

	return cfg, nil
}
