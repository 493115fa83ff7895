package tenant

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ErrNoTenants is returned when resolution is attempted with no stores
// configured at all. Callers fall back to a null tenant state.
var ErrNoTenants = errors.New("no tenants configured")

// Via records which path of the resolution algorithm produced the result.
// It is logged so silent fallbacks stay visible to operators.
type Via string

const (
	ViaDefault   Via = "default"   // local host, first tenant
	ViaOverride  Via = "override"  // local host, ?store= simulation
	ViaDomain    Via = "domain"    // exact custom-domain match
	ViaSubdomain Via = "subdomain" // first-label subdomain match
	ViaFallback  Via = "fallback"  // nothing matched, first tenant
)

// Resolver decides which tenant a hostname belongs to. LocalHosts are exact
// hostnames treated as development hosts; LocalHostSuffixes match preview
// deployment domains (e.g. ".lovableproject.com").
type Resolver struct {
	LocalHosts        []string
	LocalHostSuffixes []string
}

// NewResolver returns a Resolver with the default local/preview host set.
func NewResolver() *Resolver {
	return &Resolver{
		LocalHosts:        []string{"localhost", "127.0.0.1"},
		LocalHostSuffixes: []string{".lovableproject.com"},
	}
}

// Resolve picks the active tenant for a request hostname.
//
// Local/preview hosts default to the first tenant and honour a ?store=
// override matched against each tenant's subdomain or the first label of its
// domain. Production hosts try an exact domain match first, then a subdomain
// match when the hostname has more than two labels. When nothing matches the
// first tenant is returned with ViaFallback; the caller logs that condition
// but never surfaces it to the visitor.
func (r *Resolver) Resolve(hostname string, query url.Values, tenants []Tenant) (Tenant, Via, error) {
	if len(tenants) == 0 {
		return Tenant{}, "", ErrNoTenants
	}

	host := NormalizeHostname(hostname)

	if r.isLocalHost(host) {
		if override := strings.TrimSpace(query.Get("store")); override != "" {
			for _, t := range tenants {
				if matchesOverride(t, override) {
					return t, ViaOverride, nil
				}
			}
		}
		return tenants[0], ViaDefault, nil
	}

	for _, t := range tenants {
		if t.Domain != "" && NormalizeHostname(t.Domain) == host {
			return t, ViaDomain, nil
		}
	}

	if labels := strings.Split(host, "."); len(labels) > 2 {
		sub := labels[0]
		for _, t := range tenants {
			if t.Subdomain != nil && *t.Subdomain == sub {
				return t, ViaSubdomain, nil
			}
		}
	}

	return tenants[0], ViaFallback, nil
}

func (r *Resolver) isLocalHost(host string) bool {
	for _, h := range r.LocalHosts {
		if host == h {
			return true
		}
	}
	for _, suffix := range r.LocalHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// matchesOverride checks a ?store= simulation value against a tenant's
// subdomain or the first label of its custom domain.
func matchesOverride(t Tenant, override string) bool {
	if t.Subdomain != nil && *t.Subdomain == override {
		return true
	}
	if t.Domain != "" {
		if first, _, found := strings.Cut(t.Domain, "."); found && first == override {
			return true
		}
	}
	return false
}

// NormalizeHostname lowercases a hostname, strips any port, and folds
// internationalised domains to their ASCII (punycode) form so stored tenant
// domains compare consistently.
func NormalizeHostname(hostname string) string {
	host := strings.ToLower(strings.TrimSpace(hostname))
	if host == "" {
		return host
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	return host
}
