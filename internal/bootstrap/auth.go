package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/plugashop/storefront/config"
	"github.com/plugashop/storefront/internal/adapters/devauth"
	"github.com/plugashop/storefront/internal/adapters/gotrue"
	"github.com/plugashop/storefront/internal/adapters/localauth"
	"github.com/plugashop/storefront/internal/adapters/oidcsso"
	redisadapter "github.com/plugashop/storefront/internal/adapters/redis"
	"github.com/plugashop/storefront/internal/data"
	"github.com/plugashop/storefront/internal/ports"
	"github.com/plugashop/storefront/internal/service"
)

// AuthBuildConfig groups dependencies for auth service construction.
type AuthBuildConfig struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates the auth service for the configured auth mode.
// Sessions always live in Redis; the identity provider varies by mode.
func BuildAuthService(cfg AuthBuildConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, errors.New("auth service requires a redis client for sessions")
	}
	if cfg.DB == nil {
		return nil, errors.New("auth service requires a database for roles and profiles")
	}

	provider, err := buildIdentityProvider(cfg)
	if err != nil {
		return nil, err
	}

	sso := buildSSOProvider(cfg)

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		SSO:      sso,
		Sessions: redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:"),
		Roles:    data.NewUserRoleRepo(cfg.DB),
		Profiles: data.NewProfileRepo(cfg.DB),
		Logger:   cfg.Logger,
	})
}

//nolint:ireturn // the provider varies by configured auth mode.
func buildIdentityProvider(cfg AuthBuildConfig) (ports.IdentityProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeGoTrue:
		prov, err := gotrue.NewProvider(gotrue.Config{
			BaseURL: cfg.Auth.GoTrue.URL,
			APIKey:  cfg.Auth.GoTrue.AnonKey,
		})
		if err != nil {
			return nil, fmt.Errorf("build gotrue provider: %w", err)
		}
		return prov, nil

	case config.AuthModeMock:
		return devauth.NewProvider(devauth.Config{
			SessionDuration: cfg.Auth.SessionDuration,
		}), nil

	case config.AuthModeLocal, config.AuthModeSSO:
		// SSO mode still needs a password backend for the local login form.
		prov, err := localauth.NewProvider(localauth.ProviderOptions{
			Users:           data.NewUserRepo(cfg.DB),
			SessionDuration: cfg.Auth.SessionDuration,
			BcryptCost:      cfg.Auth.Local.BcryptCost,
		})
		if err != nil {
			return nil, fmt.Errorf("build local auth provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Auth.Mode)
	}
}

// buildSSOProvider returns the OIDC provider when SSO is fully configured,
// nil otherwise. A nil provider keeps the SSO routes answering 404 instead
// of failing startup.
//
//nolint:ireturn // nil has to flow through as the interface value.
func buildSSOProvider(cfg AuthBuildConfig) ports.SSOProvider {
	sso := cfg.Auth.SSO
	if sso.ClientID == "" || sso.ClientSecret == "" || sso.IssuerURL == "" {
		if cfg.Auth.Mode == config.AuthModeSSO && cfg.Logger != nil {
			cfg.Logger.Warn("sso mode selected but sso config incomplete; sso sign-in disabled",
				"client_id_empty", sso.ClientID == "",
				"client_secret_empty", sso.ClientSecret == "",
				"issuer_url_empty", sso.IssuerURL == "",
			)
		}
		return nil
	}

	prov, err := oidcsso.NewProvider(oidcsso.ProviderConfig{
		ClientID:     sso.ClientID,
		ClientSecret: sso.ClientSecret,
		RedirectURL:  sso.RedirectURL,
		Scope:        sso.Scope,
		IssuerURL:    sso.IssuerURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create oidc provider; sso sign-in disabled", "error", err)
		}
		return nil
	}
	return prov
}
