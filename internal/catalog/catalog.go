// Package catalog holds the static book list and the search/sort projection
// shown in the storefront grid.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/digitalbookstore/storefront/internal/domain"
	domainerrors "github.com/digitalbookstore/storefront/internal/errors"
	"github.com/digitalbookstore/storefront/internal/validation"
)

//go:embed books.json
var seedJSON []byte

// Catalog is the immutable list of books offered by the store.
type Catalog struct {
	books []domain.Book
	index map[string]int
}

// document is the shape validated on load.
type document struct {
	Books []domain.Book `json:"books" validate:"unique=ID,dive"`
}

// Load reads a catalog from a JSON file. An empty path loads the bundled seed catalog.
func Load(path string, v *validation.Validator) (*Catalog, error) {
	if path == "" {
		return Parse(seedJSON, v)
	}

	data, err := os.ReadFile(path) //#nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	c, err := Parse(data, v)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a JSON array of books.
func Parse(data []byte, v *validation.Validator) (*Catalog, error) {
	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "malformed catalog JSON")
	}
	return New(books, v)
}

// New builds a catalog from books, validating each record and id uniqueness.
// The slice is copied.
func New(books []domain.Book, v *validation.Validator) (*Catalog, error) {
	if v != nil {
		if err := v.Validate(document{Books: books}); err != nil {
			return nil, err
		}
	}

	c := &Catalog{
		books: append([]domain.Book(nil), books...),
		index: make(map[string]int, len(books)),
	}
	for i, b := range c.books {
		if _, dup := c.index[b.ID]; dup {
			return nil, domainerrors.Conflictf("duplicate book id %q", b.ID)
		}
		c.index[b.ID] = i
	}
	return c, nil
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Books returns a copy of the books in catalog order.
func (c *Catalog) Books() []domain.Book {
	return append([]domain.Book(nil), c.books...)
}

// Lookup returns the catalog's own record for id. The pointer is shared and
// must be treated as read-only.
func (c *Catalog) Lookup(id string) (*domain.Book, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.books[i], true
}

// Get is Lookup returning a not-found error.
func (c *Catalog) Get(id string) (*domain.Book, error) {
	b, ok := c.Lookup(id)
	if !ok {
		return nil, domainerrors.NotFoundf("book %q not found", id)
	}
	return b, nil
}
