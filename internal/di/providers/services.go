package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/do/v2"

	"github.com/digitalbookstore/storefront/internal/browse"
	"github.com/digitalbookstore/storefront/internal/cart"
	"github.com/digitalbookstore/storefront/internal/catalog"
	"github.com/digitalbookstore/storefront/internal/config"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/metrics"
	"github.com/digitalbookstore/storefront/internal/notify"
	"github.com/digitalbookstore/storefront/internal/storefront"
	"github.com/digitalbookstore/storefront/internal/validation"
)

// cartLoadTimeout bounds restoring the saved cart at startup.
const cartLoadTimeout = 5 * time.Second

// ProvideCatalog loads and validates the catalog.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	cat, err := catalog.Load(cfg.Catalog.Path, v)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	source := cfg.Catalog.Path
	if source == "" {
		source = "bundled"
	}
	log.Info("Catalog loaded", "books", cat.Len(), "source", source)

	return cat, nil
}

// ProvideCollator provides the title collator for the configured locale.
func ProvideCollator(i do.Injector) (*catalog.Collator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return catalog.NewCollator(cfg.LocaleTag()), nil
}

// ProvideBrowseStore provides the UI state store.
func ProvideBrowseStore(i do.Injector) (*browse.Store, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return browse.New(log), nil
}

// ProvideCartStore restores the cart from the storage backend.
func ProvideCartStore(i do.Injector) (*cart.Store, error) {
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	storage := do.MustInvoke[*StorageHandle](i)
	sink := do.MustInvoke[notify.Sink](i)

	ctx, cancel := context.WithTimeout(context.Background(), cartLoadTimeout)
	defer cancel()

	c := cart.New(ctx, storage,
		cart.WithLogger(log),
		cart.WithMetrics(m),
		cart.WithNotifier(sink),
	)

	sum := c.Summary()
	log.Info("Cart restored", "lines", c.Lines(), "items", sum.ItemCount)

	return c, nil
}

// ProvideStorefront composes the stores into the storefront.
func ProvideStorefront(i do.Injector) (*storefront.Storefront, error) {
	return storefront.New(
		do.MustInvoke[*catalog.Catalog](i),
		do.MustInvoke[*browse.Store](i),
		do.MustInvoke[*cart.Store](i),
		do.MustInvoke[*catalog.Collator](i),
		do.MustInvoke[notify.Sink](i),
	), nil
}
