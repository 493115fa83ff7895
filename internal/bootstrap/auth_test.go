package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plugashop/storefront/config"
)

func TestBuildAuthServiceRequiresRedis(t *testing.T) {
	t.Parallel()

	_, err := BuildAuthService(AuthBuildConfig{
		Auth:   config.AuthConfig{Mode: config.AuthModeMock},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.ErrorContains(t, err, "redis")
}

func TestBuildSSOProviderIncompleteConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sso  config.SSOConfig
	}{
		{name: "all empty", sso: config.SSOConfig{}},
		{name: "missing secret", sso: config.SSOConfig{
			ClientID:  "client-id",
			IssuerURL: "https://issuer.example.com",
		}},
		{name: "missing issuer", sso: config.SSOConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prov := buildSSOProvider(AuthBuildConfig{
				Auth: config.AuthConfig{
					Mode: config.AuthModeSSO,
					SSO:  tt.sso,
				},
				Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			assert.Nil(t, prov, "incomplete sso config should disable sso, not fail")
		})
	}
}
