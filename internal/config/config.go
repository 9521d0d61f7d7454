package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabaseURL string
	ListenAddr  string
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DB_URL environment variable is required")
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	return &Config{
		DatabaseURL: dbURL,
		ListenAddr:  listenAddr,
	}, nil
}
