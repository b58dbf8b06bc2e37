package sse

import (
	"github.com/digitalbookstore/storefront/internal/browse"
	"github.com/digitalbookstore/storefront/internal/cart"
)

// Watch subscribes m to both stores so every change is broadcast. The
// returned function unsubscribes.
func Watch(c *cart.Store, b *browse.Store, m *Manager) func() {
	stopCart := c.Subscribe(func(s cart.Snapshot) { m.Emit(NewCartChangedEvent(s)) })
	stopBrowse := b.Subscribe(func(s browse.State) { m.Emit(NewBrowseChangedEvent(s)) })
	return func() {
		stopCart()
		stopBrowse()
	}
}

// Snapshot returns the events that bring a new client up to date.
func Snapshot(c *cart.Store, b *browse.Store) func() []Event {
	return func() []Event {
		return []Event{
			NewCartChangedEvent(c.Snapshot()),
			NewBrowseChangedEvent(b.State()),
		}
	}
}
