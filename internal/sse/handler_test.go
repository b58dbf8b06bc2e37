package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalbookstore/storefront/internal/browse"
)

type wireEvent struct {
	name string
	data map[string]any
}

// readEvent reads one "event:/data:" frame.
func readEvent(t *testing.T, r *bufio.Reader) wireEvent {
	t.Helper()

	var ev wireEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")

		switch {
		case line == "":
			return ev
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev.data))
		}
	}
}

func TestHandler_StreamsEvents(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	initial := func() []Event { return []Event{NewBrowseChangedEvent(browse.State{SearchQuery: "hello"})} }
	srv := httptest.NewServer(NewHandler(m, slog.New(slog.DiscardHandler), initial))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	r := bufio.NewReader(resp.Body)

	connected := readEvent(t, r)
	assert.Equal(t, "connected", connected.name)
	data := connected.data["data"].(map[string]any)
	assert.Contains(t, data["client_id"], "client-")

	snapshot := readEvent(t, r)
	assert.Equal(t, "browse.changed", snapshot.name)
	assert.Equal(t, "hello", snapshot.data["data"].(map[string]any)["search_query"])

	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	m.Emit(NewBrowseChangedEvent(browse.State{IsCartOpen: true}))

	live := readEvent(t, r)
	assert.Equal(t, "browse.changed", live.name)
	assert.Equal(t, true, live.data["data"].(map[string]any)["is_cart_open"])
}

func TestHandler_DisconnectsOnClientClose(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler), nil)
	srv := httptest.NewServer(NewHandler(m, slog.New(slog.DiscardHandler), nil))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	assert.Equal(t, "connected", readEvent(t, bufio.NewReader(resp.Body)).name)
	require.Equal(t, 1, m.ClientCount())

	cancel()
	resp.Body.Close()

	assert.Eventually(t, func() bool { return m.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_RejectsNonGet(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler), nil)
	rec := httptest.NewRecorder()

	NewHandler(m, slog.New(slog.DiscardHandler), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
