package config

import "strings"

// TenancyConfig controls hostname-to-store resolution.
type TenancyConfig struct {
	// LocalHosts are exact hostnames treated as development hosts: they
	// resolve to the first store and honour the ?store= override.
	LocalHosts []string `env:"TENANCY_LOCAL_HOSTS" envDefault:"localhost;127.0.0.1" envSeparator:";"`

	// LocalHostSuffixes match preview deployment domains, e.g.
	// ".lovableproject.com". Matching hosts behave like local hosts.
	LocalHostSuffixes []string `env:"TENANCY_LOCAL_HOST_SUFFIXES" envDefault:".lovableproject.com" envSeparator:";"`
}

// Sanitize normalises host entries; empty entries are dropped.
func (t *TenancyConfig) Sanitize() {
	t.LocalHosts = cleanHostList(t.LocalHosts)
	t.LocalHostSuffixes = cleanHostList(t.LocalHostSuffixes)
}

func cleanHostList(hosts []string) []string {
	out := hosts[:0]
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
