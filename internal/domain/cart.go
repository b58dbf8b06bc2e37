package domain

// CartItem pairs a book with a quantity of at least one.
type CartItem struct {
	Book     Book `json:"book"`
	Quantity int  `json:"quantity"`
}

// LineSubtotal is the undiscounted price of the line.
func (i CartItem) LineSubtotal() float64 {
	return i.Book.Price * float64(i.Quantity)
}

// LineDiscount is the amount taken off the line by the book's discount.
func (i CartItem) LineDiscount() float64 {
	return i.LineSubtotal() * i.Book.Discount
}

// LineTotal is what the line costs after discount.
func (i CartItem) LineTotal() float64 {
	return i.Book.DiscountedPrice() * float64(i.Quantity)
}

// CartSummary holds figures derived from the cart contents. It is never stored.
type CartSummary struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// Summarize derives the summary for a list of line items.
// Total is computed as Subtotal - Discount without rounding either term first,
// and ItemCount is the sum of quantities rather than the number of lines.
func Summarize(items []CartItem) CartSummary {
	var s CartSummary
	for _, item := range items {
		s.Subtotal += item.LineSubtotal()
		s.Discount += item.LineDiscount()
		s.ItemCount += item.Quantity
	}
	s.Total = s.Subtotal - s.Discount
	return s
}
