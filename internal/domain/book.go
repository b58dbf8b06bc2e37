// Package domain contains the core entities of the digital bookstore: catalog
// books, cart line items, and the derived cart summary.
package domain

import "math"

// Book is an immutable catalog record.
// Books are value objects: nothing in the storefront mutates one after the
// catalog has been loaded.
type Book struct {
	ID          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author"`
	Price       float64 `json:"price" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lt=1"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	CoverImage  string  `json:"coverImage" validate:"omitempty,url"`
	Format      string  `json:"format"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Pages       int     `json:"pages" validate:"gte=0"`
	Language    string  `json:"language"`
	ReleaseDate string  `json:"releaseDate"`
}

// DiscountedPrice returns the unit price after the book's discount.
func (b *Book) DiscountedPrice() float64 {
	return b.Price * (1 - b.Discount)
}

// HasDiscount reports whether the book is on sale.
func (b *Book) HasDiscount() bool {
	return b.Discount > 0
}

// DiscountPercent returns the discount as a whole percentage, e.g. 25 for 0.25.
func (b *Book) DiscountPercent() int {
	return int(math.Round(b.Discount * 100))
}
