package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/digitalbookstore/storefront/internal/domain"
	domainerrors "github.com/digitalbookstore/storefront/internal/errors"
	"github.com/digitalbookstore/storefront/internal/validation"
)

func book(id, title string) domain.Book {
	return domain.Book{ID: id, Title: title, Price: 10}
}

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func ids(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestLoad_Seed(t *testing.T) {
	c, err := Load("", validation.New())
	require.NoError(t, err)

	assert.Equal(t, 8, c.Len())

	b, ok := c.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "Pride and Prejudice", b.Title)
	assert.Equal(t, 20, b.DiscountPercent())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"z","title":"Zebra","price":10,"discount":0},
		{"id":"a","title":"Apple","price":20,"discount":0.5,"coverImage":"https://example.com/a.jpg"}
	]`), 0o600))

	c, err := Load(path, validation.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a"}, ids(c.Books()))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), validation.New())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantField string
	}{
		{"duplicate ids", `[{"id":"1","title":"A"},{"id":"1","title":"B"}]`, "books"},
		{"discount of one", `[{"id":"1","title":"A","discount":1}]`, "books[0].discount"},
		{"rating above five", `[{"id":"1","title":"A"},{"id":"2","title":"B","rating":7}]`, "books[1].rating"},
		{"negative price", `[{"id":"1","title":"A","price":-5}]`, "books[0].price"},
		{"missing title", `[{"id":"1"}]`, "books[0].title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json), validation.New())
			require.ErrorIs(t, err, domainerrors.ErrValidation)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"id":`), validation.New())
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestNew_DuplicateWithoutValidator(t *testing.T) {
	_, err := New([]domain.Book{book("1", "A"), book("1", "B")}, nil)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestCatalog_IsImmutable(t *testing.T) {
	src := []domain.Book{book("1", "A")}
	c, err := New(src, nil)
	require.NoError(t, err)

	src[0].Title = "changed"
	got := c.Books()
	got[0].Title = "changed again"

	b, _ := c.Lookup("1")
	assert.Equal(t, "A", b.Title)
}

func TestCatalog_LookupSharesRecord(t *testing.T) {
	c, err := New([]domain.Book{book("1", "A")}, nil)
	require.NoError(t, err)

	first, ok := c.Lookup("1")
	require.True(t, ok)
	second, _ := c.Lookup("1")
	assert.Same(t, first, second)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProject_SeedOrder(t *testing.T) {
	c, err := Load("", validation.New())
	require.NoError(t, err)

	coll := NewCollator(language.English)

	assert.Equal(t, []string{
		"Don Quixote",
		"Dracula",
		"Émile, or On Education",
		"Frankenstein",
		"Great Expectations",
		"Moby-Dick",
		"Pride and Prejudice",
		"The Picture of Dorian Gray",
	}, titles(c.Project("", domain.Ascending, coll)))

	desc := titles(c.Project("", domain.Descending, coll))
	assert.Equal(t, "The Picture of Dorian Gray", desc[0])
	assert.Equal(t, "Don Quixote", desc[len(desc)-1])
}

func TestProject_ZebraApple(t *testing.T) {
	books := []domain.Book{book("1", "Zebra"), book("2", "Apple")}

	assert.Equal(t, []string{"Apple", "Zebra"}, titles(Project(books, "", domain.Ascending, nil)))
	assert.Equal(t, []string{"Zebra", "Apple"}, titles(Project(books, "", domain.Descending, nil)))
}

func TestProject_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	books := []domain.Book{book("1", "Dracula"), book("2", "Moby-Dick"), book("3", "The Hobbit")}

	assert.Equal(t, []string{"Dracula"}, titles(Project(books, "DRAC", domain.Ascending, nil)))
	assert.Equal(t, []string{"Moby-Dick"}, titles(Project(books, "y-d", domain.Ascending, nil)))
	assert.Equal(t, []string{"Moby-Dick", "The Hobbit"}, titles(Project(books, "b", domain.Ascending, nil)))

	none := Project(books, "zzz", domain.Ascending, nil)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProject_IsStable(t *testing.T) {
	books := []domain.Book{book("x", "Same"), book("a", "Alpha"), book("y", "Same"), book("z", "Same")}

	assert.Equal(t, []string{"a", "x", "y", "z"}, ids(Project(books, "", domain.Ascending, nil)))
	assert.Equal(t, []string{"x", "y", "z", "a"}, ids(Project(books, "", domain.Descending, nil)))
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	books := []domain.Book{book("1", "Zebra"), book("2", "Apple"), book("3", "Mango")}
	before := append([]domain.Book(nil), books...)

	_ = Project(books, "a", domain.Ascending, nil)
	_ = Project(books, "", domain.Descending, nil)

	assert.Equal(t, before, books)
}

func TestProject_IdempotentAndToggleTwice(t *testing.T) {
	books := []domain.Book{book("1", "Zebra"), book("2", "Apple"), book("3", "Mango"), book("4", "apple pie")}
	coll := NewCollator(language.English)

	for _, query := range []string{"", "a", "APP"} {
		for _, order := range []domain.SortOrder{domain.Ascending, domain.Descending} {
			once := Project(books, query, order, coll)
			assert.Equal(t, once, Project(once, query, order, coll))
			assert.Equal(t, once, Project(books, query, order.Toggle().Toggle(), coll))
		}
	}
}

func TestCollator_Locale(t *testing.T) {
	coll := NewCollator(language.Swedish)

	assert.Equal(t, language.Swedish, coll.Locale())
	// Swedish sorts ö after z.
	assert.Equal(t, 1, coll.Compare("ö", "z"))
	assert.Equal(t, -1, NewCollator(language.German).Compare("ö", "z"))
}
