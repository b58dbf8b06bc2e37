// Package providers contains dependency injection providers for the storefront.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/digitalbookstore/storefront/internal/config"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/metrics"
	"github.com/digitalbookstore/storefront/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Digital Bookstore",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"storage_backend", cfg.Storage.Backend,
		"storage_path", cfg.Storage.Path,
		"locale", cfg.Catalog.Locale,
	)

	return log, nil
}

// ProvideMetrics provides the Prometheus registry and collectors.
func ProvideMetrics(_ do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}

// ProvideValidator provides the struct validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
