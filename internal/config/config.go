package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server's top-level configuration, read from the
// environment. Redis is optional: without it the company cache is disabled
// and every session resolution is a full fetch.
type Config struct {
	Port        int
	DatabaseURL string

	RedisAddr     string // empty disables the company cache
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment variables. It reads PORT
// (default: 8080), DATABASE_URL (required), and optionally REDIS_ADDR,
// REDIS_PASSWORD, REDIS_DB.
func Load() (*Config, error) {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %s", portStr)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		redisDB, err = strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
	}

	return &Config{
		Port:          port,
		DatabaseURL:   databaseURL,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
	}, nil
}
