package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/digitalbookstore/storefront/internal/domain"
	"github.com/digitalbookstore/storefront/internal/storefront"
)

func (s *Server) registerCartRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get cart",
		Description: "Returns the cart drawer: lines, per-line figures, and totals",
		Tags:        []string{"Cart"},
	}, s.handleGetCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToCart",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/items",
		Summary:     "Add to cart",
		Description: "Adds a catalog book. A book already in the cart is left unchanged and added is false.",
		Tags:        []string{"Cart"},
	}, s.handleAddToCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "setCartQuantity",
		Method:      http.MethodPut,
		Path:        "/api/v1/cart/items/{id}",
		Summary:     "Set quantity",
		Description: "Sets a line's quantity. Zero or less removes the line.",
		Tags:        []string{"Cart"},
	}, s.handleSetQuantity)

	huma.Register(s.api, huma.Operation{
		OperationID: "incrementCartItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/items/{id}/increment",
		Summary:     "Increment quantity",
		Tags:        []string{"Cart"},
	}, s.handleIncrement)

	huma.Register(s.api, huma.Operation{
		OperationID: "decrementCartItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/items/{id}/decrement",
		Summary:     "Decrement quantity",
		Description: "Lowers a line's quantity by one, removing the line at zero",
		Tags:        []string{"Cart"},
	}, s.handleDecrement)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart/items/{id}",
		Summary:     "Remove from cart",
		Tags:        []string{"Cart"},
	}, s.handleRemoveFromCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart",
		Summary:     "Clear cart",
		Tags:        []string{"Cart"},
	}, s.handleClearCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkout",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/checkout",
		Summary:     "Checkout",
		Description: "Not implemented. Emits an info toast and returns 501.",
		Tags:        []string{"Cart"},
		Errors:      []int{http.StatusNotImplemented},
	}, s.handleCheckout)
}

// === DTOs ===

// LineResponse is one row of the cart drawer.
type LineResponse struct {
	Book            domain.Book `json:"book" doc:"Snapshot of the catalog record"`
	Quantity        int         `json:"quantity" doc:"Copies in the cart"`
	LineSubtotal    float64     `json:"line_subtotal" doc:"Price times quantity before discount"`
	LineTotal       float64     `json:"line_total" doc:"Discounted price times quantity"`
	DiscountPercent int         `json:"discount_percent,omitempty" doc:"Discount as a whole percentage"`
	TotalLabel      string      `json:"total_label" doc:"Formatted line total"`
	SubtotalLabel   string      `json:"subtotal_label,omitempty" doc:"Formatted line subtotal, set for discounted books"`
}

// CartResponse contains the cart drawer.
type CartResponse struct {
	Open          bool               `json:"open" doc:"Whether the drawer is open"`
	Empty         bool               `json:"empty" doc:"Whether the cart has no lines"`
	Description   string             `json:"description" doc:"Drawer subtitle"`
	Items         []LineResponse     `json:"items" doc:"Cart lines in insertion order"`
	Summary       domain.CartSummary `json:"summary" doc:"Derived totals"`
	SubtotalLabel string             `json:"subtotal_label" doc:"Formatted subtotal"`
	DiscountLabel string             `json:"discount_label,omitempty" doc:"Formatted discount, set when non-zero"`
	TotalLabel    string             `json:"total_label" doc:"Formatted total"`
}

// CartOutput wraps the cart response for Huma.
type CartOutput struct {
	Body CartResponse
}

// AddToCartRequest is the request body for adding a book.
type AddToCartRequest struct {
	BookID   string `json:"book_id" minLength:"1" doc:"Catalog book ID"`
	Quantity int    `json:"quantity,omitempty" minimum:"1" default:"1" doc:"Copies to add"`
}

// AddToCartInput wraps the add request for Huma.
type AddToCartInput struct {
	Body AddToCartRequest
}

// AddToCartResponse reports whether a line was created.
type AddToCartResponse struct {
	Added bool         `json:"added" doc:"False when the book was already in the cart"`
	Cart  CartResponse `json:"cart"`
}

// AddToCartOutput wraps the add response for Huma.
type AddToCartOutput struct {
	Body AddToCartResponse
}

// CartItemInput identifies a cart line.
type CartItemInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// SetQuantityRequest is the request body for setting a quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" doc:"New quantity; zero or less removes the line"`
}

// SetQuantityInput wraps the set quantity request for Huma.
type SetQuantityInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body SetQuantityRequest
}

// === Handlers ===

func (s *Server) handleGetCart(_ context.Context, _ *struct{}) (*CartOutput, error) {
	return s.cartOutput(), nil
}

func (s *Server) handleAddToCart(_ context.Context, input *AddToCartInput) (*AddToCartOutput, error) {
	added, err := s.storefront.AddToCart(input.Body.BookID, input.Body.Quantity)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &AddToCartOutput{
		Body: AddToCartResponse{
			Added: added,
			Cart:  newCartResponse(s.storefront.Drawer()),
		},
	}, nil
}

func (s *Server) handleSetQuantity(_ context.Context, input *SetQuantityInput) (*CartOutput, error) {
	if err := s.storefront.SetQuantity(input.ID, input.Body.Quantity); err != nil {
		return nil, toAPIError(err)
	}
	return s.cartOutput(), nil
}

func (s *Server) handleIncrement(_ context.Context, input *CartItemInput) (*CartOutput, error) {
	if err := s.storefront.Increment(input.ID); err != nil {
		return nil, toAPIError(err)
	}
	return s.cartOutput(), nil
}

func (s *Server) handleDecrement(_ context.Context, input *CartItemInput) (*CartOutput, error) {
	if err := s.storefront.Decrement(input.ID); err != nil {
		return nil, toAPIError(err)
	}
	return s.cartOutput(), nil
}

func (s *Server) handleRemoveFromCart(_ context.Context, input *CartItemInput) (*CartOutput, error) {
	if err := s.storefront.RemoveFromCart(input.ID); err != nil {
		return nil, toAPIError(err)
	}
	return s.cartOutput(), nil
}

func (s *Server) handleClearCart(_ context.Context, _ *struct{}) (*CartOutput, error) {
	s.storefront.Cart().Clear()
	return s.cartOutput(), nil
}

func (s *Server) handleCheckout(_ context.Context, _ *struct{}) (*struct{}, error) {
	return nil, toAPIError(s.storefront.Checkout())
}

func (s *Server) cartOutput() *CartOutput {
	return &CartOutput{Body: newCartResponse(s.storefront.Drawer())}
}

func newCartResponse(d storefront.Drawer) CartResponse {
	items := make([]LineResponse, len(d.Lines))
	for i, l := range d.Lines {
		items[i] = LineResponse{
			Book:            l.Item.Book,
			Quantity:        l.Item.Quantity,
			LineSubtotal:    l.LineSubtotal,
			LineTotal:       l.LineTotal,
			DiscountPercent: l.DiscountPercent,
			TotalLabel:      l.Total,
			SubtotalLabel:   l.Subtotal,
		}
	}

	return CartResponse{
		Open:          d.Open,
		Empty:         d.Empty,
		Description:   d.Description,
		Items:         items,
		Summary:       d.Summary,
		SubtotalLabel: d.Subtotal,
		DiscountLabel: d.Discount,
		TotalLabel:    d.Total,
	}
}
