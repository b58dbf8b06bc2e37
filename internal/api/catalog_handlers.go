package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/digitalbookstore/storefront/internal/domain"
	"github.com/digitalbookstore/storefront/internal/storefront"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Get catalog grid",
		Description: "Returns the catalog filtered by the current search query and sorted by the current sort order",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{id}",
		Summary:     "Get book",
		Description: "Returns a catalog book by ID",
		Tags:        []string{"Catalog"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDetails",
		Method:      http.MethodGet,
		Path:        "/api/v1/details",
		Summary:     "Get details modal",
		Description: "Returns the selected book and whether the details modal is open",
		Tags:        []string{"Catalog"},
	}, s.handleGetDetails)
}

// === DTOs ===

// CardResponse is one book in the catalog grid.
type CardResponse struct {
	Book            domain.Book `json:"book" doc:"Catalog record"`
	InCart          bool        `json:"in_cart" doc:"Whether the book already has a cart line"`
	DiscountedPrice float64     `json:"discounted_price" doc:"Unit price after discount"`
	DiscountPercent int         `json:"discount_percent" doc:"Discount as a whole percentage"`
	PriceLabel      string      `json:"price_label" doc:"Formatted price, e.g. R149.99"`
	OriginalLabel   string      `json:"original_price_label,omitempty" doc:"Formatted list price, set for discounted books"`
	RatingLabel     string      `json:"rating_label" doc:"Rating with one decimal"`
}

// HeaderResponse is the page header state.
type HeaderResponse struct {
	CartLines   int    `json:"cart_lines" doc:"Number of distinct books in the cart"`
	SearchQuery string `json:"search_query" doc:"Current search query"`
	SortOrder   string `json:"sort_order" enum:"a-z,z-a" doc:"Current sort order"`
	SortLabel   string `json:"sort_label" doc:"Sort button label"`
}

// GridResponse contains the projected catalog.
type GridResponse struct {
	Header HeaderResponse `json:"header"`
	Books  []CardResponse `json:"books" doc:"Filtered and sorted books"`
}

// GridOutput wraps the grid response for Huma.
type GridOutput struct {
	Body GridResponse
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookOutput wraps a catalog book for Huma.
type BookOutput struct {
	Body domain.Book
}

// DetailsResponse is the details modal state.
type DetailsResponse struct {
	Open   bool         `json:"open" doc:"Whether the modal is open"`
	Book   *domain.Book `json:"book,omitempty" doc:"Selected book, absent until one is selected"`
	InCart bool         `json:"in_cart" doc:"Whether the selected book is in the cart"`
}

// DetailsOutput wraps the details response for Huma.
type DetailsOutput struct {
	Body DetailsResponse
}

// === Handlers ===

func (s *Server) handleGetCatalog(_ context.Context, _ *struct{}) (*GridOutput, error) {
	grid := s.storefront.Grid()

	books := make([]CardResponse, len(grid.Cards))
	for i, c := range grid.Cards {
		books[i] = CardResponse{
			Book:            c.Book,
			InCart:          c.InCart,
			DiscountedPrice: c.DiscountedPrice,
			DiscountPercent: c.DiscountPercent,
			PriceLabel:      c.Price,
			OriginalLabel:   c.OriginalPrice,
			RatingLabel:     c.Rating,
		}
	}

	return &GridOutput{
		Body: GridResponse{
			Header: newHeaderResponse(grid.Header),
			Books:  books,
		},
	}, nil
}

func (s *Server) handleGetBook(_ context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.storefront.Book(input.ID)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleGetDetails(_ context.Context, _ *struct{}) (*DetailsOutput, error) {
	return &DetailsOutput{Body: newDetailsResponse(s.storefront.Details())}, nil
}

func newHeaderResponse(h storefront.Header) HeaderResponse {
	return HeaderResponse{
		CartLines:   h.CartLines,
		SearchQuery: h.SearchQuery,
		SortOrder:   h.SortOrder.String(),
		SortLabel:   h.SortLabel,
	}
}

func newDetailsResponse(d storefront.Details) DetailsResponse {
	resp := DetailsResponse{Open: d.Open, InCart: d.InCart}
	if d.Book != nil {
		b := *d.Book
		resp.Book = &b
	}
	return resp
}
