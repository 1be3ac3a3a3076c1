// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// defaultTokenIssuer is stamped into session tokens unless JWT_ISSUER
// overrides it.
const defaultTokenIssuer = "vibejobs"

// JWTConfig controls session token signing and lifetime.
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required), JWT_ISSUER (default: vibejobs),
// and JWT_EXPIRATION_HOURS (default: 24) from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = defaultTokenIssuer
	}

	hours := 24
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		hours = parsed
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be positive: %d", hours)
	}

	return &JWTConfig{
		Secret:          secret,
		Issuer:          issuer,
		ExpirationHours: hours,
	}, nil
}
