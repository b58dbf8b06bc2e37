// Package storefront derives the views shown to shoppers (catalog grid,
// details modal, cart drawer) from the catalog, browse, and cart stores, and
// offers the id-based actions the presentation layers call.
package storefront

import (
	"fmt"

	"github.com/digitalbookstore/storefront/internal/browse"
	"github.com/digitalbookstore/storefront/internal/cart"
	"github.com/digitalbookstore/storefront/internal/catalog"
	"github.com/digitalbookstore/storefront/internal/domain"
	domainerrors "github.com/digitalbookstore/storefront/internal/errors"
	"github.com/digitalbookstore/storefront/internal/notify"
)

// CheckoutMessage is the toast shown when a shopper tries to check out.
const CheckoutMessage = "Checkout not implemented"

// Storefront composes the stores. It holds no state of its own.
type Storefront struct {
	catalog  *catalog.Catalog
	browse   *browse.Store
	cart     *cart.Store
	collator *catalog.Collator
	sink     notify.Sink
}

// New creates a storefront over the given stores. A nil sink discards toasts.
func New(cat *catalog.Catalog, b *browse.Store, c *cart.Store, coll *catalog.Collator, sink notify.Sink) *Storefront {
	if sink == nil {
		sink = notify.Discard
	}
	return &Storefront{catalog: cat, browse: b, cart: c, collator: coll, sink: sink}
}

// Catalog returns the catalog.
func (s *Storefront) Catalog() *catalog.Catalog { return s.catalog }

// Browse returns the UI state store.
func (s *Storefront) Browse() *browse.Store { return s.browse }

// Cart returns the cart store.
func (s *Storefront) Cart() *cart.Store { return s.cart }

// Book looks a catalog book up by id.
func (s *Storefront) Book(id string) (*domain.Book, error) {
	return s.catalog.Get(id)
}

// ViewDetails selects the book and opens the details modal.
func (s *Storefront) ViewDetails(id string) error {
	book, err := s.catalog.Get(id)
	if err != nil {
		return err
	}
	s.browse.SelectBook(book)
	return nil
}

// AddToCart adds quantity copies of a catalog book. It reports whether a new
// line was created; adding a book already in the cart is not an error.
func (s *Storefront) AddToCart(id string, quantity int) (bool, error) {
	book, err := s.catalog.Get(id)
	if err != nil {
		return false, err
	}
	return s.cart.Add(*book, quantity), nil
}

// requireLine returns a not-found error when id has no cart line.
func (s *Storefront) requireLine(id string) error {
	if !s.cart.Contains(id) {
		return domainerrors.NotFoundf("book %q is not in the cart", id)
	}
	return nil
}

// SetQuantity sets a line's quantity; zero or less removes it.
func (s *Storefront) SetQuantity(id string, quantity int) error {
	if err := s.requireLine(id); err != nil {
		return err
	}
	s.cart.UpdateQuantity(id, quantity)
	return nil
}

// Increment raises a line's quantity by one.
func (s *Storefront) Increment(id string) error {
	if err := s.requireLine(id); err != nil {
		return err
	}
	s.cart.Increment(id)
	return nil
}

// Decrement lowers a line's quantity by one, removing it at zero.
func (s *Storefront) Decrement(id string) error {
	if err := s.requireLine(id); err != nil {
		return err
	}
	s.cart.Decrement(id)
	return nil
}

// RemoveFromCart deletes a line.
func (s *Storefront) RemoveFromCart(id string) error {
	if err := s.requireLine(id); err != nil {
		return err
	}
	s.cart.Remove(id)
	return nil
}

// Checkout is not supported. It tells the shopper so and returns a
// not-implemented error.
func (s *Storefront) Checkout() error {
	s.sink.Emit(notify.Info, CheckoutMessage)
	return domainerrors.NotImplemented("checkout is not implemented")
}

// FormatPrice renders an amount in rand, e.g. "R149.99".
func FormatPrice(amount float64) string {
	return fmt.Sprintf("R%.2f", amount)
}
