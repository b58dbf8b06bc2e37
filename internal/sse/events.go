// Package sse implements Server-Sent Events: it pushes cart and browse state
// changes and toast notifications to connected storefront clients.
package sse

import (
	"time"

	"github.com/digitalbookstore/storefront/internal/browse"
	"github.com/digitalbookstore/storefront/internal/cart"
	"github.com/digitalbookstore/storefront/internal/domain"
	"github.com/digitalbookstore/storefront/internal/notify"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventCartChanged is sent after every cart mutation.
	EventCartChanged EventType = "cart.changed"
	// EventBrowseChanged is sent after every browse state change.
	EventBrowseChanged EventType = "browse.changed"
	// EventToast carries a user-facing notification.
	EventToast EventType = "toast"
	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
	// EventConnected is the first event on every stream.
	EventConnected EventType = "connected"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// CartEventData is the payload of cart.changed.
type CartEventData struct {
	Items   []domain.CartItem  `json:"items"`
	Summary domain.CartSummary `json:"summary"`
	Lines   int                `json:"lines"`
}

// BrowseEventData is the payload of browse.changed.
type BrowseEventData struct {
	SelectedBookID string `json:"selected_book_id,omitempty"`
	IsModalOpen    bool   `json:"is_modal_open"`
	IsCartOpen     bool   `json:"is_cart_open"`
	SearchQuery    string `json:"search_query"`
	SortOrder      string `json:"sort_order"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// ConnectedEventData is the payload of the connected event.
type ConnectedEventData struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

// NewCartChangedEvent creates a cart.changed event.
func NewCartChangedEvent(snap cart.Snapshot) Event {
	return Event{
		Type:      EventCartChanged,
		Timestamp: time.Now(),
		Data: CartEventData{
			Items:   snap.Items,
			Summary: snap.Summary,
			Lines:   snap.Lines,
		},
	}
}

// NewBrowseChangedEvent creates a browse.changed event.
func NewBrowseChangedEvent(st browse.State) Event {
	data := BrowseEventData{
		IsModalOpen: st.IsModalOpen,
		IsCartOpen:  st.IsCartOpen,
		SearchQuery: st.SearchQuery,
		SortOrder:   st.SortOrder.String(),
	}
	if st.SelectedBook != nil {
		data.SelectedBookID = st.SelectedBook.ID
	}
	return Event{Type: EventBrowseChanged, Timestamp: time.Now(), Data: data}
}

// NewToastEvent creates a toast event.
func NewToastEvent(t notify.Toast) Event {
	return Event{Type: EventToast, Timestamp: t.CreatedAt, Data: t}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}

// NewConnectedEvent creates the greeting sent to a new client.
func NewConnectedEvent(clientID string) Event {
	return Event{
		Type:      EventConnected,
		Timestamp: time.Now(),
		Data: ConnectedEventData{
			ClientID: clientID,
			Message:  "SSE connection established",
		},
	}
}
