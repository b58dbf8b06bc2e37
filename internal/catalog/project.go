package catalog

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/digitalbookstore/storefront/internal/domain"
)

// Collator compares titles using locale-aware collation.
// x/text collators keep scratch buffers, so access is serialised.
type Collator struct {
	mu  sync.Mutex
	c   *collate.Collator
	tag language.Tag
}

// NewCollator creates a collator for the given locale.
func NewCollator(tag language.Tag) *Collator {
	return &Collator{c: collate.New(tag), tag: tag}
}

// Locale returns the collation locale.
func (c *Collator) Locale() language.Tag {
	return c.tag
}

// Compare returns -1, 0, or +1.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// Project returns the books whose title contains query (case-insensitive),
// stably sorted by title in the given order. An empty query keeps every book.
// The input slice is never modified.
func Project(books []domain.Book, query string, order domain.SortOrder, coll *Collator) []domain.Book {
	needle := strings.ToLower(query)

	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if needle == "" || strings.Contains(strings.ToLower(b.Title), needle) {
			out = append(out, b)
		}
	}

	if coll == nil {
		coll = NewCollator(language.English)
	}

	coll.mu.Lock()
	defer coll.mu.Unlock()

	slices.SortStableFunc(out, func(a, b domain.Book) int {
		if order == domain.Descending {
			return coll.c.CompareString(b.Title, a.Title)
		}
		return coll.c.CompareString(a.Title, b.Title)
	})

	return out
}

// Project applies the projection to this catalog's books.
func (c *Catalog) Project(query string, order domain.SortOrder, coll *Collator) []domain.Book {
	return Project(c.books, query, order, coll)
}
