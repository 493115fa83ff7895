package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/plugashop/storefront/internal/core"
	"github.com/plugashop/storefront/internal/domain/tenant"
)

const tenantListCacheKey = "tenants:active"

// TenantServiceOptions groups dependencies for TenantService.
type TenantServiceOptions struct {
	Repo     core.TenantRepository // Required
	Cache    core.CacheRepository  // Optional: tenant list cache
	Resolver *tenant.Resolver      // Optional: defaults to NewResolver()
	CacheTTL time.Duration         // default 30s when zero
	Logger   *slog.Logger          // Optional
}

// TenantService resolves request hostnames to tenants over a cached store
// list.
type TenantService struct {
	repo     core.TenantRepository
	cache    core.CacheRepository
	resolver *tenant.Resolver
	cacheTTL time.Duration
	logger   *slog.Logger
	reload   singleflight.Group
}

// NewTenantService constructs a new TenantService.
func NewTenantService(opts TenantServiceOptions) (*TenantService, error) {
	if opts.Repo == nil {
		return nil, errors.New("TenantRepository is required")
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = tenant.NewResolver()
	}
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "tenant_service")
	}
	return &TenantService{
		repo:     opts.Repo,
		cache:    opts.Cache,
		resolver: resolver,
		cacheTTL: ttl,
		logger:   logger,
	}, nil
}

// ListActive returns the active tenants, from cache when fresh. A cache
// outage falls through to the database.
func (s *TenantService) ListActive(ctx context.Context) ([]tenant.Tenant, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, tenantListCacheKey); err == nil && data != nil {
			var tenants []tenant.Tenant
			if unmarshalErr := json.Unmarshal(data, &tenants); unmarshalErr == nil {
				return tenants, nil
			}
		} else if err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "tenant cache read failed", "error", err)
		}
	}

	// Collapse concurrent cache misses into one database read. Every
	// request resolves a tenant, so a cold cache would otherwise fan out.
	result, err, _ := s.reload.Do(tenantListCacheKey, func() (any, error) {
		tenants, repoErr := s.repo.ListActive(ctx)
		if repoErr != nil {
			return nil, repoErr
		}
		if s.cache != nil {
			if data, marshalErr := json.Marshal(tenants); marshalErr == nil {
				if setErr := s.cache.Set(ctx, tenantListCacheKey, data, s.cacheTTL); setErr != nil && s.logger != nil {
					s.logger.WarnContext(ctx, "tenant cache write failed", "error", setErr)
				}
			}
		}
		return tenants, nil
	})
	if err != nil {
		return nil, err
	}
	tenants, ok := result.([]tenant.Tenant)
	if !ok {
		return nil, errors.New("unexpected tenant list type from reload")
	}
	return tenants, nil
}

// InvalidateCache drops the cached tenant list, forcing the next resolve to
// hit the database.
func (s *TenantService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, tenantListCacheKey); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "tenant cache invalidation failed", "error", err)
	}
}

// Resolve maps the request hostname (and ?store= override on local hosts)
// to a tenant. With at least one active store configured, a page always
// renders under some tenant; unmatched production hostnames fall back to
// the default store and are logged for the operator.
func (s *TenantService) Resolve(
	ctx context.Context,
	hostname string,
	query url.Values,
) (tenant.Tenant, tenant.Via, error) {
	tenants, err := s.ListActive(ctx)
	if err != nil {
		return tenant.Tenant{}, tenant.ViaDefault, err
	}

	resolved, via, err := s.resolver.Resolve(hostname, query, tenants)
	if err != nil {
		return tenant.Tenant{}, via, err
	}
	if via == tenant.ViaFallback && s.logger != nil {
		s.logger.WarnContext(ctx, "hostname matched no store, using default",
			"hostname", hostname, "store_id", resolved.ID)
	}
	return resolved, via, nil
}
