package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-boardgame-service/internal/config"
)

type fakeSecurity struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func (f fakeSecurity) GetJWTSecret() string                 { return f.secret }
func (f fakeSecurity) GetAccessTokenExpiry() time.Duration  { return f.accessTTL }
func (f fakeSecurity) GetRefreshTokenExpiry() time.Duration { return f.refreshTTL }
func (f fakeSecurity) GetBCryptCost() int                   { return 10 }

type fakeConfig struct {
	config.EnvVars
	config.Cors
	fakeSecurity
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		security fakeSecurity
		valid    bool
	}{
		{
			name:     "valid",
			security: fakeSecurity{"0123456789abcdef0123456789abcdef", time.Hour, 7 * 24 * time.Hour},
			valid:    true,
		},
		{
			name:     "missing secret",
			security: fakeSecurity{"", time.Hour, 7 * 24 * time.Hour},
			valid:    false,
		},
		{
			name:     "whitespace secret",
			security: fakeSecurity{"                                  ", time.Hour, 7 * 24 * time.Hour},
			valid:    false,
		},
		{
			name:     "short secret",
			security: fakeSecurity{"too-short", time.Hour, 7 * 24 * time.Hour},
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.Validate(fakeConfig{fakeSecurity: tt.security})
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_NAME", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_DSN", "")
	env := config.EnvVars{}

	require.Equal(t, ":8080", env.GetPort())
	require.Equal(t, "Board Game Service", env.GetAppName())
	require.Equal(t, "DEV", env.GetEnv())
	require.NotEmpty(t, env.GetDatabaseDSN())
}

func TestSecurityDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY_MINUTES", "")
	t.Setenv("REFRESH_TOKEN_EXPIRY_DAYS", "")
	sec := config.Security{}

	require.Equal(t, time.Hour, sec.GetAccessTokenExpiry())
	require.Equal(t, 7*24*time.Hour, sec.GetRefreshTokenExpiry())
}
