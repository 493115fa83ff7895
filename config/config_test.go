package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeLocal, cfg.Auth.Mode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "plugashop", cfg.Postgres.User)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http", cfg.Services)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, cfg.Tenancy.LocalHosts)
	assert.Equal(t, []string{".lovableproject.com"}, cfg.Tenancy.LocalHostSuffixes)
	assert.Equal(t, 15*time.Minute, cfg.CartReaper.Interval)
	assert.Equal(t, 30*24*time.Hour, cfg.CartReaper.MaxIdle)
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "gotrue")
	t.Setenv("GOTRUE_URL", "http://localhost:9999/auth/v1")
	t.Setenv("GOTRUE_ANON_KEY", "anon")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVICES", "http,cart-reaper")
	t.Setenv("TENANCY_LOCAL_HOSTS", "localhost;dev.local")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeGoTrue, cfg.Auth.Mode)
	assert.Equal(t, "http://localhost:9999/auth/v1", cfg.Auth.GoTrue.URL)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, []string{"localhost", "dev.local"}, cfg.Tenancy.LocalHosts)
	assert.True(t, cfg.IsHTTPServerEnabled())
	assert.True(t, cfg.IsCartReaperEnabled())
}

func TestAppConfig_InvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "ldap")

	var cfg AppConfig
	assert.Error(t, env.Parse(&cfg))
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestParseServices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    map[ServiceMode]bool
		wantErr bool
	}{
		{
			name:  "single service",
			input: "http",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:  "multiple services with spaces",
			input: "http, cart-reaper",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeCartReaper: true},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "unknown service",
			input:   "http,scheduler",
			wantErr: true,
		},
		{
			name:    "only separators",
			input:   ", ,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseServices(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCartReaperConfig_Sanitize(t *testing.T) {
	t.Parallel()

	cfg := CartReaperConfig{Interval: time.Second, MaxIdle: time.Minute, BatchSize: 0}
	cfg.Sanitize()

	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, time.Hour, cfg.MaxIdle)
	assert.Equal(t, 1, cfg.BatchSize)

	cfg = CartReaperConfig{Interval: time.Hour, MaxIdle: 48 * time.Hour, BatchSize: 50000}
	cfg.Sanitize()
	assert.Equal(t, 10000, cfg.BatchSize)
}

func TestHTTPConfig_SanitizeClampsCompression(t *testing.T) {
	t.Parallel()

	cfg := HTTPConfig{CompressionLevel: 42}
	cfg.Sanitize()
	assert.Equal(t, 9, cfg.CompressionLevel)

	cfg = HTTPConfig{CompressionLevel: -1}
	cfg.Sanitize()
	assert.Equal(t, 1, cfg.CompressionLevel)
}

func TestAuthConfig_SanitizeEnforcesMinimumSession(t *testing.T) {
	t.Parallel()

	cfg := AuthConfig{SessionDuration: time.Second}
	cfg.Sanitize()
	assert.Equal(t, time.Minute, cfg.SessionDuration)
}
