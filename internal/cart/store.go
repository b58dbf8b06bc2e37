// Package cart implements the shopping cart state container: an ordered list
// of line items, one per book, persisted after every change.
package cart

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/digitalbookstore/storefront/internal/dispatch"
	"github.com/digitalbookstore/storefront/internal/domain"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/metrics"
	"github.com/digitalbookstore/storefront/internal/notify"
	"github.com/digitalbookstore/storefront/internal/store"
)

const persistTimeout = 5 * time.Second

// Snapshot is an immutable view of the cart handed to listeners.
type Snapshot struct {
	Items   []domain.CartItem  `json:"items"`
	Summary domain.CartSummary `json:"summary"`
	// Lines is the number of distinct books, shown on the header badge.
	Lines int `json:"lines"`
}

// Listener is called after every state-changing mutation.
// A listener that mutates the cart has that change delivered after it returns.
type Listener func(Snapshot)

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets where add-to-cart toasts go.
func WithNotifier(sink notify.Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithLogger sets the logger used for persistence problems.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) { s.logger = log.Component("cart") }
}

// WithMetrics records cart mutations and persistence failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// Store is the cart state container. All methods are safe for concurrent use;
// mutations are applied one at a time.
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem

	// queue delivers listener calls and toasts in mutation order.
	queue     dispatch.Queue
	listeners dispatch.Listeners[Snapshot]

	kv      store.KV
	sink    notify.Sink
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// New creates a cart backed by kv, restoring any previously saved snapshot.
// A missing or unreadable snapshot yields an empty cart.
func New(ctx context.Context, kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		sink:   notify.Discard,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := loadItems(ctx, kv)
	if err != nil {
		s.logger.Warn("Discarding unreadable cart snapshot", "key", StorageKey, "error", err)
		s.metrics.PersistFailure("load")
		items = nil
	}
	s.items = items
	if len(items) > 0 {
		s.logger.Debug("Restored cart", "lines", len(items))
	}

	sum := domain.Summarize(s.items)
	s.metrics.CartSize(len(s.items), sum.ItemCount)

	return s
}

// Add appends a line for book with the given quantity. A quantity below one
// is treated as one. If the book is already in the cart nothing changes and
// an info toast is emitted; otherwise a success toast follows the change.
// It reports whether a line was added.
func (s *Store) Add(book domain.Book, quantity int) bool {
	quantity = max(quantity, 1)

	s.mu.Lock()
	if s.indexOf(book.ID) >= 0 {
		s.queue.Push(func() {
			s.sink.Emit(notify.Info, quoted(book.Title)+" is already in your cart")
		})
		s.mu.Unlock()
		s.queue.Flush()
		return false
	}

	s.items = append(slices.Clip(s.items), domain.CartItem{Book: book, Quantity: quantity})
	s.commitLocked("add")
	s.queue.Push(func() {
		s.sink.Emit(notify.Success, quoted(book.Title)+" added to cart")
	})
	s.mu.Unlock()

	s.logger.Debug("Added to cart", "book_id", book.ID, "quantity", quantity)
	s.queue.Flush()
	return true
}

// AddOne adds a single copy of book.
func (s *Store) AddOne(book domain.Book) bool {
	return s.Add(book, 1)
}

// Remove deletes the line for bookID. Unknown ids are ignored.
func (s *Store) Remove(bookID string) {
	s.mutate("remove", func() bool {
		i := s.indexOf(bookID)
		if i < 0 {
			return false
		}
		s.items = slices.Delete(slices.Clone(s.items), i, i+1)
		return true
	})
}

// UpdateQuantity sets the quantity for bookID. A quantity of zero or less
// removes the line. Unknown ids are ignored.
func (s *Store) UpdateQuantity(bookID string, quantity int) {
	if quantity <= 0 {
		s.Remove(bookID)
		return
	}

	s.mutate("update_quantity", func() bool {
		i := s.indexOf(bookID)
		if i < 0 {
			return false
		}
		s.items = slices.Clone(s.items)
		s.items[i].Quantity = max(1, quantity)
		return true
	})
}

// Increment adds one to the quantity of bookID.
func (s *Store) Increment(bookID string) {
	s.adjust("increment", bookID, 1)
}

// Decrement subtracts one from the quantity of bookID, removing the line when
// it reaches zero.
func (s *Store) Decrement(bookID string) {
	s.adjust("decrement", bookID, -1)
}

// adjust applies UpdateQuantity(bookID, current+delta) as a single mutation.
func (s *Store) adjust(action, bookID string, delta int) {
	s.mutate(action, func() bool {
		i := s.indexOf(bookID)
		if i < 0 {
			return false
		}
		q := s.items[i].Quantity + delta
		if q <= 0 {
			s.items = slices.Delete(slices.Clone(s.items), i, i+1)
			return true
		}
		s.items = slices.Clone(s.items)
		s.items[i].Quantity = q
		return true
	})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mutate("clear", func() bool {
		s.items = nil
		return true
	})
}

// Contains reports whether bookID has a line.
func (s *Store) Contains(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(bookID) >= 0
}

// Quantity returns the quantity for bookID, or 0 when absent.
func (s *Store) Quantity(bookID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(bookID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Lines returns the number of distinct books in the cart.
func (s *Store) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Summary derives subtotal, discount, total, and item count.
func (s *Store) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.items)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for change notifications and returns a function
// that unregisters it.
func (s *Store) Subscribe(fn Listener) func() {
	return s.listeners.Subscribe(fn)
}

// mutate runs fn under the lock. When fn reports a change the new state is
// persisted and listeners are notified after the lock is released.
func (s *Store) mutate(action string, fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	s.commitLocked(action)
	s.mu.Unlock()

	s.queue.Flush()
}

// commitLocked persists the current items and queues listener delivery of
// the new state.
func (s *Store) commitLocked(action string) {
	snap := s.snapshotLocked()
	s.metrics.CartMutation(action, snap.Lines, snap.Summary.ItemCount)
	s.persistLocked()
	s.queue.Push(func() { s.listeners.Notify(snap) })
}

// persistLocked writes the snapshot. Failures are logged and otherwise ignored.
func (s *Store) persistLocked() {
	data, err := EncodeSnapshot(s.items)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err = s.kv.Save(ctx, StorageKey, data)
		cancel()
	}
	if err != nil {
		s.logger.Warn("Failed to persist cart", "key", StorageKey, "error", err)
		s.metrics.PersistFailure("save")
	}
}

func (s *Store) snapshotLocked() Snapshot {
	items := slices.Clone(s.items)
	if items == nil {
		items = []domain.CartItem{}
	}
	return Snapshot{
		Items:   items,
		Summary: domain.Summarize(items),
		Lines:   len(items),
	}
}

func (s *Store) indexOf(bookID string) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.Book.ID == bookID
	})
}

func quoted(title string) string {
	return `"` + title + `"`
}

// LogValue summarises the cart for structured logs.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("lines", s.Lines),
		slog.Int("item_count", s.Summary.ItemCount),
		slog.Float64("total", s.Summary.Total),
	)
}
