package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeCartReaper runs the idle-cart cleanup worker.
	ServiceModeCartReaper ServiceMode = "cart-reaper"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeCartReaper,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeCartReaper:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, cart-reaper)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// CartReaperConfig contains idle-cart cleanup configuration.
type CartReaperConfig struct {
	// Interval is the reaper tick interval.
	Interval time.Duration `env:"CART_REAPER_INTERVAL" envDefault:"15m"`

	// MaxIdle is how long a cart may go untouched before deletion.
	MaxIdle time.Duration `env:"CART_REAPER_MAX_IDLE" envDefault:"720h"` // 30 days

	// BatchSize is the maximum number of carts to delete per sweep.
	// Batching keeps individual Redis calls small.
	BatchSize int `env:"CART_REAPER_BATCH_SIZE" envDefault:"500"`
}

// Sanitize applies guardrails to cart reaper configuration values.
func (r *CartReaperConfig) Sanitize() {
	// Enforce minimum intervals to prevent excessive Redis load
	if r.Interval < 1*time.Minute {
		r.Interval = 1 * time.Minute
	}
	if r.MaxIdle < 1*time.Hour {
		r.MaxIdle = 1 * time.Hour
	}

	if r.BatchSize < 1 {
		r.BatchSize = 1
	}
	if r.BatchSize > 10000 {
		r.BatchSize = 10000
	}
}
