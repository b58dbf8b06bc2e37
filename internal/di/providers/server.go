package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/digitalbookstore/storefront/internal/api"
	"github.com/digitalbookstore/storefront/internal/browse"
	"github.com/digitalbookstore/storefront/internal/cart"
	"github.com/digitalbookstore/storefront/internal/config"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/metrics"
	"github.com/digitalbookstore/storefront/internal/notify"
	"github.com/digitalbookstore/storefront/internal/ratelimit"
	"github.com/digitalbookstore/storefront/internal/sse"
	"github.com/digitalbookstore/storefront/internal/storefront"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Manager.Shutdown(ctx)
	h.cancel()
	return err
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	manager := sse.NewManager(log.Logger, m)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// ProvideNotifier fans toasts out to the log, the metrics, and every
// connected event stream.
func ProvideNotifier(i do.Injector) (notify.Sink, error) {
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	return notify.Fanout{
		notify.NewLogSink(log),
		notify.NewMetricsSink(m),
		notify.NewEmitterSink(sseHandle.Manager),
	}, nil
}

// EventBridgeHandle keeps the stores subscribed to the SSE manager.
type EventBridgeHandle struct {
	stop func()
}

// Shutdown implements do.Shutdownable.
func (h *EventBridgeHandle) Shutdown() error {
	h.stop()
	return nil
}

// ProvideEventBridge broadcasts every cart and browse change.
func ProvideEventBridge(i do.Injector) (*EventBridgeHandle, error) {
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	c := do.MustInvoke[*cart.Store](i)
	b := do.MustInvoke[*browse.Store](i)

	return &EventBridgeHandle{stop: sse.Watch(c, b, sseHandle.Manager)}, nil
}

// RateLimiterHandle wraps the per-IP limiter so its cleanup goroutine stops.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-IP API rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &RateLimiterHandle{
		KeyedRateLimiter: ratelimit.NewPerMinute(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	sf := do.MustInvoke[*storefront.Storefront](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)

	// The stream must be wired before the first client connects.
	_ = do.MustInvoke[*EventBridgeHandle](i)

	sseHandler := sse.NewHandler(sseHandle.Manager, log.Logger, sse.Snapshot(sf.Cart(), sf.Browse()))

	handler := api.NewServer(sf, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Limiter:        limiter.KeyedRateLimiter,
		Metrics:        m,
		SSEHandler:     sseHandler,
		SSEManager:     sseHandle.Manager,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
