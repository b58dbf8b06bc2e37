package storefront

import (
	"fmt"

	"github.com/digitalbookstore/storefront/internal/domain"
)

// Card is one book in the catalog grid.
type Card struct {
	Book            domain.Book
	InCart          bool
	DiscountedPrice float64
	DiscountPercent int
	Price           string
	// OriginalPrice is set only for discounted books.
	OriginalPrice string
	Rating        string
}

// Header is the page header: cart badge, search box, and sort button.
type Header struct {
	CartLines   int
	SearchQuery string
	SortOrder   domain.SortOrder
	SortLabel   string
}

// Grid is the projected catalog with header state.
type Grid struct {
	Header Header
	Cards  []Card
}

// Details is the book-details modal.
type Details struct {
	Open bool
	// Book is nil until a book has been selected.
	Book   *domain.Book
	InCart bool
}

// Line is one row of the cart drawer.
type Line struct {
	Item            domain.CartItem
	LineTotal       float64
	LineSubtotal    float64
	DiscountPercent int
	Total           string
	// Subtotal is set only for discounted books.
	Subtotal string
}

// Drawer is the cart drawer.
type Drawer struct {
	Open        bool
	Empty       bool
	Description string
	Lines       []Line
	Summary     domain.CartSummary
	Subtotal    string
	// Discount is set only when the cart has a discount, e.g. "-R20.00".
	Discount string
	Total    string
}

// Grid builds the catalog grid for the current search query and sort order.
func (s *Storefront) Grid() Grid {
	st := s.browse.State()
	books := s.catalog.Project(st.SearchQuery, st.SortOrder, s.collator)

	cards := make([]Card, len(books))
	for i, b := range books {
		cards[i] = newCard(b, s.cart.Contains(b.ID))
	}

	return Grid{
		Header: Header{
			CartLines:   s.cart.Lines(),
			SearchQuery: st.SearchQuery,
			SortOrder:   st.SortOrder,
			SortLabel:   st.SortOrder.Label(),
		},
		Cards: cards,
	}
}

// Details builds the details modal.
func (s *Storefront) Details() Details {
	st := s.browse.State()
	d := Details{Open: st.IsModalOpen, Book: st.SelectedBook}
	if st.SelectedBook != nil {
		d.InCart = s.cart.Contains(st.SelectedBook.ID)
	}
	return d
}

// Drawer builds the cart drawer.
func (s *Storefront) Drawer() Drawer {
	snap := s.cart.Snapshot()

	lines := make([]Line, len(snap.Items))
	for i, item := range snap.Items {
		lines[i] = newLine(item)
	}

	d := Drawer{
		Open:        s.browse.State().IsCartOpen,
		Empty:       len(lines) == 0,
		Description: describe(snap.Summary.ItemCount),
		Lines:       lines,
		Summary:     snap.Summary,
		Subtotal:    FormatPrice(snap.Summary.Subtotal),
		Total:       FormatPrice(snap.Summary.Total),
	}
	if snap.Summary.Discount > 0 {
		d.Discount = "-" + FormatPrice(snap.Summary.Discount)
	}
	return d
}

func newCard(b domain.Book, inCart bool) Card {
	c := Card{
		Book:            b,
		InCart:          inCart,
		DiscountedPrice: b.DiscountedPrice(),
		Price:           FormatPrice(b.DiscountedPrice()),
		Rating:          fmt.Sprintf("%.1f", b.Rating),
	}
	if b.HasDiscount() {
		c.DiscountPercent = b.DiscountPercent()
		c.OriginalPrice = FormatPrice(b.Price)
	}
	return c
}

func newLine(item domain.CartItem) Line {
	l := Line{
		Item:         item,
		LineTotal:    item.LineTotal(),
		LineSubtotal: item.LineSubtotal(),
		Total:        FormatPrice(item.LineTotal()),
	}
	if item.Book.HasDiscount() {
		l.DiscountPercent = item.Book.DiscountPercent()
		l.Subtotal = FormatPrice(item.LineSubtotal())
	}
	return l
}

func describe(itemCount int) string {
	switch itemCount {
	case 0:
		return "Your cart is empty."
	case 1:
		return "1 item ready for checkout."
	default:
		return fmt.Sprintf("%d items ready for checkout.", itemCount)
	}
}
