package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to use. If nil, uses prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace overrides the default "rxflow" namespace for metrics.
	Namespace string
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Registry:  prometheus.DefaultRegisterer,
		Namespace: "rxflow",
	}
}

// registryFor materializes a Registry from a Config, falling back to the
// package defaults for zero values. Configs that resolve to the default
// registerer and namespace share DefaultRegistry; registering the same
// metric names twice would panic.
func registryFor(cfg Config) *Registry {
	if !cfg.Enabled {
		return nil
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "rxflow"
	}
	if reg == prometheus.DefaultRegisterer && namespace == "rxflow" {
		return DefaultRegistry
	}
	return newRegistry(reg, namespace)
}
