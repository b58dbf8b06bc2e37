package di

import (
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalbookstore/storefront/internal/config"
	"github.com/digitalbookstore/storefront/internal/di/providers"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/notify"
)

func localConfig(backend, path string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Environment: "development"},
		Logger:  config.LoggerConfig{Level: "error"},
		Storage: config.StorageConfig{Backend: backend, Path: path},
		Catalog: config.CatalogConfig{Locale: "en"},
	}
}

func TestLocalContainer_ResolvesStorefront(t *testing.T) {
	rec := &notify.Recorder{}
	injector := NewLocalContainer(localConfig(config.BackendMemory, ""), logger.Discard(), rec)
	defer injector.Shutdown()

	sf, err := Storefront(injector)
	require.NoError(t, err)
	assert.Equal(t, 8, sf.Catalog().Len())

	added, err := sf.AddToCart("2", 1)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []notify.Message{{Severity: notify.Success, Text: `"Moby-Dick" added to cart`}}, rec.Messages())

	storage := do.MustInvoke[*providers.StorageHandle](injector)
	assert.Equal(t, config.BackendMemory, storage.Name)
}

func TestLocalContainer_CartSurvivesRestart(t *testing.T) {
	for _, backend := range []string{config.BackendBadger, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cart")
			cfg := localConfig(backend, path)

			first := NewLocalContainer(cfg, logger.Discard(), notify.Discard)
			sf, err := Storefront(first)
			require.NoError(t, err)
			_, err = sf.AddToCart("7", 3)
			require.NoError(t, err)
			first.Shutdown()

			second := NewLocalContainer(cfg, logger.Discard(), notify.Discard)
			defer second.Shutdown()
			sf, err = Storefront(second)
			require.NoError(t, err)

			assert.Equal(t, 3, sf.Cart().Quantity("7"))
		})
	}
}

func TestLocalContainer_BadCatalogPath(t *testing.T) {
	cfg := localConfig(config.BackendMemory, "")
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.json")

	injector := NewLocalContainer(cfg, logger.Discard(), notify.Discard)
	defer injector.Shutdown()

	_, err := Storefront(injector)
	assert.Error(t, err)
}
