package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/digitalbookstore/storefront/internal/config"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/store"
	"github.com/digitalbookstore/storefront/internal/store/sqlite"
)

// StorageHandle wraps the configured cart storage backend with shutdown capability.
type StorageHandle struct {
	store.Backend
	Name string
}

// Shutdown implements do.Shutdownable.
func (h *StorageHandle) Shutdown() error {
	return h.Close()
}

// ProvideStorage opens the cart storage backend selected in the config.
func ProvideStorage(i do.Injector) (*StorageHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		backend store.Backend
		err     error
	)

	switch cfg.Storage.Backend {
	case config.BackendBadger:
		backend, err = store.New(cfg.Storage.Path, log.Logger)
	case config.BackendSQLite:
		backend, err = sqlite.Open(cfg.Storage.Path, log.Logger)
	case config.BackendMemory:
		backend = store.NewMemory()
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	log.Info("Cart storage initialized",
		"backend", cfg.Storage.Backend,
		"path", cfg.Storage.Path,
	)

	return &StorageHandle{Backend: backend, Name: cfg.Storage.Backend}, nil
}
