package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/digitalbookstore/storefront/internal/domain"
	"github.com/digitalbookstore/storefront/internal/store"
)

// StorageKey is the fixed key the cart snapshot lives under.
const StorageKey = "digital-bookstore:cart"

// snapshotVersion is written with every snapshot. Older or newer versions are
// read as-is since the item shape has never changed.
const snapshotVersion = 0

// envelope is the persisted document:
// {"state":{"items":[{"book":{...},"quantity":n}]},"version":0}
type envelope struct {
	State   envelopeState `json:"state"`
	Version int           `json:"version"`
}

type envelopeState struct {
	Items []domain.CartItem `json:"items"`
}

// EncodeSnapshot serialises items into the persisted document format.
func EncodeSnapshot(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(envelope{State: envelopeState{Items: items}, Version: snapshotVersion})
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a persisted document and sanitises its items.
func DecodeSnapshot(data []byte) ([]domain.CartItem, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return sanitize(env.State.Items), nil
}

// sanitize enforces the cart invariants on externally sourced items: one
// line per book id (first wins), quantity at least one, non-empty id.
func sanitize(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Book.ID == "" || item.Quantity < 1 {
			continue
		}
		if _, dup := seen[item.Book.ID]; dup {
			continue
		}
		seen[item.Book.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// loadItems reads the snapshot. A missing key is reported as (nil, nil).
func loadItems(ctx context.Context, kv store.KV) ([]domain.CartItem, error) {
	data, err := kv.Load(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(data)
}
