// Package di provides dependency injection configuration for the storefront.
package di

import (
	"github.com/samber/do/v2"

	"github.com/digitalbookstore/storefront/internal/browse"
	"github.com/digitalbookstore/storefront/internal/cart"
	"github.com/digitalbookstore/storefront/internal/catalog"
	"github.com/digitalbookstore/storefront/internal/config"
	"github.com/digitalbookstore/storefront/internal/di/providers"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/metrics"
	"github.com/digitalbookstore/storefront/internal/notify"
	"github.com/digitalbookstore/storefront/internal/storefront"
	"github.com/digitalbookstore/storefront/internal/validation"
)

// NewContainer creates and configures the DI container for the HTTP server.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	provideDomain(injector)

	// Events
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideNotifier)
	do.Provide(injector, providers.ProvideEventBridge)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// NewLocalContainer creates a container for working on the stored cart
// without a server. Toasts go to sink and logs to log.
func NewLocalContainer(cfg *config.Config, log *logger.Logger, sink notify.Sink) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)
	do.ProvideValue(injector, sink)
	provideDomain(injector)

	return injector
}

// provideDomain registers the providers shared by every entry point.
func provideDomain(injector do.Injector) {
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStorage)

	// Catalog and stores
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideCollator)
	do.Provide(injector, providers.ProvideBrowseStore)
	do.Provide(injector, providers.ProvideCartStore)
	do.Provide(injector, providers.ProvideStorefront)
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.StorageHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*catalog.Catalog](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[notify.Sink](injector)
	_ = do.MustInvoke[*browse.Store](injector)
	_ = do.MustInvoke[*cart.Store](injector)
	_ = do.MustInvoke[*storefront.Storefront](injector)
	_ = do.MustInvoke[*providers.EventBridgeHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}

// Storefront resolves the storefront from a local container.
func Storefront(injector *do.RootScope) (*storefront.Storefront, error) {
	return do.Invoke[*storefront.Storefront](injector)
}
