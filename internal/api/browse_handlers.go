package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/digitalbookstore/storefront/internal/browse"
)

func (s *Server) registerBrowseRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBrowseState",
		Method:      http.MethodGet,
		Path:        "/api/v1/browse",
		Summary:     "Get browse state",
		Description: "Returns the selected book, modal and drawer flags, search query, and sort order",
		Tags:        []string{"Browse"},
	}, s.handleGetBrowse)

	huma.Register(s.api, huma.Operation{
		OperationID: "setSearchQuery",
		Method:      http.MethodPut,
		Path:        "/api/v1/browse/search",
		Summary:     "Set search query",
		Description: "Stores the search query verbatim; matching is a case-insensitive title substring",
		Tags:        []string{"Browse"},
	}, s.handleSetSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSortOrder",
		Method:      http.MethodPost,
		Path:        "/api/v1/browse/sort/toggle",
		Summary:     "Toggle sort order",
		Description: "Flips the title sort between A to Z and Z to A",
		Tags:        []string{"Browse"},
	}, s.handleToggleSort)

	huma.Register(s.api, huma.Operation{
		OperationID: "selectBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/browse/select",
		Summary:     "Select book",
		Description: "Selects a catalog book and opens the details modal",
		Tags:        []string{"Browse"},
	}, s.handleSelectBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "setModal",
		Method:      http.MethodPost,
		Path:        "/api/v1/browse/modal/{action}",
		Summary:     "Open or close details modal",
		Description: "Closing keeps the selected book",
		Tags:        []string{"Browse"},
	}, s.handleSetModal)

	huma.Register(s.api, huma.Operation{
		OperationID: "setCartDrawer",
		Method:      http.MethodPost,
		Path:        "/api/v1/browse/cart/{action}",
		Summary:     "Open or close cart drawer",
		Tags:        []string{"Browse"},
	}, s.handleSetCartDrawer)
}

// === DTOs ===

// BrowseResponse contains the browse state.
type BrowseResponse struct {
	SelectedBookID string `json:"selected_book_id,omitempty" doc:"ID of the selected book"`
	IsModalOpen    bool   `json:"is_modal_open" doc:"Whether the details modal is open"`
	IsCartOpen     bool   `json:"is_cart_open" doc:"Whether the cart drawer is open"`
	SearchQuery    string `json:"search_query" doc:"Current search query"`
	SortOrder      string `json:"sort_order" enum:"a-z,z-a" doc:"Current sort order"`
	SortLabel      string `json:"sort_label" doc:"Sort button label"`
}

// BrowseOutput wraps the browse response for Huma.
type BrowseOutput struct {
	Body BrowseResponse
}

// SetSearchRequest is the request body for setting the search query.
type SetSearchRequest struct {
	Query string `json:"query" maxLength:"200" doc:"Search text, empty clears the filter"`
}

// SetSearchInput wraps the search request for Huma.
type SetSearchInput struct {
	Body SetSearchRequest
}

// SelectBookRequest is the request body for selecting a book.
type SelectBookRequest struct {
	BookID string `json:"book_id" minLength:"1" doc:"Catalog book ID"`
}

// SelectBookInput wraps the select request for Huma.
type SelectBookInput struct {
	Body SelectBookRequest
}

// ToggleInput names an open or close action.
type ToggleInput struct {
	Action string `path:"action" enum:"open,close" doc:"open or close"`
}

// === Handlers ===

func (s *Server) handleGetBrowse(_ context.Context, _ *struct{}) (*BrowseOutput, error) {
	return s.browseOutput(), nil
}

func (s *Server) handleSetSearch(_ context.Context, input *SetSearchInput) (*BrowseOutput, error) {
	s.storefront.Browse().SetSearchQuery(input.Body.Query)
	return s.browseOutput(), nil
}

func (s *Server) handleToggleSort(_ context.Context, _ *struct{}) (*BrowseOutput, error) {
	s.storefront.Browse().ToggleSortOrder()
	return s.browseOutput(), nil
}

func (s *Server) handleSelectBook(_ context.Context, input *SelectBookInput) (*BrowseOutput, error) {
	if err := s.storefront.ViewDetails(input.Body.BookID); err != nil {
		return nil, toAPIError(err)
	}
	return s.browseOutput(), nil
}

func (s *Server) handleSetModal(_ context.Context, input *ToggleInput) (*BrowseOutput, error) {
	b := s.storefront.Browse()
	if input.Action == "open" {
		b.OpenModal()
	} else {
		b.CloseModal()
	}
	return s.browseOutput(), nil
}

func (s *Server) handleSetCartDrawer(_ context.Context, input *ToggleInput) (*BrowseOutput, error) {
	b := s.storefront.Browse()
	if input.Action == "open" {
		b.OpenCart()
	} else {
		b.CloseCart()
	}
	return s.browseOutput(), nil
}

func (s *Server) browseOutput() *BrowseOutput {
	return &BrowseOutput{Body: newBrowseResponse(s.storefront.Browse().State())}
}

func newBrowseResponse(st browse.State) BrowseResponse {
	resp := BrowseResponse{
		IsModalOpen: st.IsModalOpen,
		IsCartOpen:  st.IsCartOpen,
		SearchQuery: st.SearchQuery,
		SortOrder:   st.SortOrder.String(),
		SortLabel:   st.SortOrder.Label(),
	}
	if st.SelectedBook != nil {
		resp.SelectedBookID = st.SelectedBook.ID
	}
	return resp
}
