package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalbookstore/storefront/internal/domain"
	domainerrors "github.com/digitalbookstore/storefront/internal/errors"
	"github.com/digitalbookstore/storefront/internal/validation"
)

type shelf struct {
	Books []domain.Book `json:"books" validate:"min=1,unique=ID,dive"`
}

func validBook(id string) domain.Book {
	return domain.Book{
		ID:         id,
		Title:      "Title " + id,
		Price:      12.5,
		Discount:   0.1,
		Rating:     4.2,
		Pages:      300,
		CoverImage: "https://covers.example.com/" + id + ".jpg",
	}
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	return fields
}

func TestValidator_ValidBook(t *testing.T) {
	v := validation.New()

	b := validBook("a")
	assert.NoError(t, v.Validate(b))
}

func TestValidator_BookRules(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		mutate    func(b *domain.Book)
		wantField string
	}{
		{"missing id", func(b *domain.Book) { b.ID = "" }, "id"},
		{"missing title", func(b *domain.Book) { b.Title = "" }, "title"},
		{"negative price", func(b *domain.Book) { b.Price = -1 }, "price"},
		{"discount of one", func(b *domain.Book) { b.Discount = 1 }, "discount"},
		{"negative discount", func(b *domain.Book) { b.Discount = -0.2 }, "discount"},
		{"rating above five", func(b *domain.Book) { b.Rating = 5.5 }, "rating"},
		{"negative pages", func(b *domain.Book) { b.Pages = -3 }, "pages"},
		{"bad cover url", func(b *domain.Book) { b.CoverImage = "not a url" }, "coverImage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBook("a")
			tt.mutate(&b)

			fields := details(t, v.Validate(b))
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidator_EmptyCoverAllowed(t *testing.T) {
	v := validation.New()

	b := validBook("a")
	b.CoverImage = ""
	assert.NoError(t, v.Validate(b))
}

func TestValidator_NestedPathAndUniqueness(t *testing.T) {
	v := validation.New()

	bad := validBook("c")
	bad.Discount = 2
	fields := details(t, v.Validate(shelf{Books: []domain.Book{validBook("a"), validBook("b"), bad}}))
	assert.Equal(t, "must be less than 1", fields["books[2].discount"])

	fields = details(t, v.Validate(shelf{Books: []domain.Book{validBook("a"), validBook("a")}}))
	assert.Equal(t, "must not repeat ID", fields["books"])

	fields = details(t, v.Validate(shelf{}))
	assert.Equal(t, "must contain at least 1 entries", fields["books"])
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("quantity", 3, "gte=1"))

	fields := details(t, v.Var("quantity", 0, "gte=1"))
	assert.Equal(t, "must be greater than or equal to 1", fields["quantity"])
}
