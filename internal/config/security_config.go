package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// minSecretLength is the minimum signing secret size for HMAC-SHA256.
const minSecretLength = 32

type SecurityConfig interface {
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetBCryptCost() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

// GetAccessTokenExpiry returns the access token lifetime.
// Configured in minutes via ACCESS_TOKEN_EXPIRY_MINUTES, default 60.
func (Security) GetAccessTokenExpiry() time.Duration {
	return durationFromEnv("ACCESS_TOKEN_EXPIRY_MINUTES", 60, time.Minute)
}

// GetRefreshTokenExpiry returns the refresh token lifetime.
// Configured in days via REFRESH_TOKEN_EXPIRY_DAYS, default 7.
func (Security) GetRefreshTokenExpiry() time.Duration {
	return durationFromEnv("REFRESH_TOKEN_EXPIRY_DAYS", 7, 24*time.Hour)
}

func (Security) GetBCryptCost() int {
	return 10 // bcrypt.DefaultCost
}

func durationFromEnv(envVar string, defaultValue int64, unit time.Duration) time.Duration {
	raw := GetEnv(envVar, "")
	if raw == "" {
		return time.Duration(defaultValue) * unit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return time.Duration(defaultValue) * unit
	}
	return time.Duration(n) * unit
}

func validateSecurity(c SecurityConfig) error {
	secret := strings.TrimSpace(c.GetJWTSecret())
	if secret == "" {
		return fmt.Errorf("JWT_SECRET must be configured")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", minSecretLength, len(secret))
	}
	if c.GetAccessTokenExpiry() <= 0 || c.GetRefreshTokenExpiry() <= 0 {
		return fmt.Errorf("token expiries must be positive")
	}
	return nil
}
