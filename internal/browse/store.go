// Package browse holds the catalog UI state: the selected book, whether the
// details modal and cart drawer are open, the search query, and the sort order.
package browse

import (
	"sync"

	"github.com/digitalbookstore/storefront/internal/dispatch"
	"github.com/digitalbookstore/storefront/internal/domain"
	"github.com/digitalbookstore/storefront/internal/logger"
)

// State is a snapshot of the UI state. SelectedBook points at a catalog
// record and must not be modified.
type State struct {
	SelectedBook *domain.Book
	IsModalOpen  bool
	IsCartOpen   bool
	SearchQuery  string
	SortOrder    domain.SortOrder
}

// Listener is called after every change to the state.
type Listener func(State)

// Store is the UI state container. It is never persisted.
type Store struct {
	mu    sync.Mutex
	state State

	queue     dispatch.Queue
	listeners dispatch.Listeners[State]

	logger *logger.Logger
}

// New creates a store with the default state: nothing selected, modal and
// cart closed, empty query, ascending order.
func New(log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{logger: log.Component("browse")}
}

// OpenCart shows the cart drawer.
func (s *Store) OpenCart() {
	s.update("open_cart", func(st *State) { st.IsCartOpen = true })
}

// CloseCart hides the cart drawer.
func (s *Store) CloseCart() {
	s.update("close_cart", func(st *State) { st.IsCartOpen = false })
}

// OpenModal shows the details modal without changing the selection.
func (s *Store) OpenModal() {
	s.update("open_modal", func(st *State) { st.IsModalOpen = true })
}

// CloseModal hides the details modal. The selection is kept.
func (s *Store) CloseModal() {
	s.update("close_modal", func(st *State) { st.IsModalOpen = false })
}

// SelectBook selects book and opens the modal in one step.
func (s *Store) SelectBook(book *domain.Book) {
	s.update("select_book", func(st *State) {
		st.SelectedBook = book
		st.IsModalOpen = true
	})
}

// SetSearchQuery stores q verbatim. Matching is done by the catalog projection.
func (s *Store) SetSearchQuery(q string) {
	s.update("search", func(st *State) { st.SearchQuery = q })
}

// ToggleSortOrder flips between ascending and descending.
func (s *Store) ToggleSortOrder() {
	s.update("toggle_sort", func(st *State) { st.SortOrder = st.SortOrder.Toggle() })
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn and returns a function that unregisters it.
func (s *Store) Subscribe(fn Listener) func() {
	return s.listeners.Subscribe(fn)
}

// update applies fn and notifies listeners if the state changed.
func (s *Store) update(action string, fn func(*State)) {
	s.mu.Lock()
	before := s.state
	fn(&s.state)
	after := s.state
	changed := before != after
	if changed {
		s.queue.Push(func() { s.listeners.Notify(after) })
	}
	s.mu.Unlock()

	if changed {
		s.logger.Debug("Browse state changed", "action", action)
		s.queue.Flush()
	}
}
