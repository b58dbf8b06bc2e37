package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalbookstore/storefront/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	s := New(nil)

	assert.Equal(t, State{SortOrder: domain.Ascending}, s.State())
	assert.Nil(t, s.State().SelectedBook)
}

func TestSelectBook_OpensModal(t *testing.T) {
	s := New(nil)
	book := &domain.Book{ID: "d", Title: "Dune"}

	s.SelectBook(book)

	st := s.State()
	assert.Same(t, book, st.SelectedBook)
	assert.True(t, st.IsModalOpen)
}

func TestCloseModal_KeepsSelection(t *testing.T) {
	s := New(nil)
	book := &domain.Book{ID: "d", Title: "Dune"}

	s.SelectBook(book)
	s.CloseModal()

	st := s.State()
	assert.False(t, st.IsModalOpen)
	assert.Same(t, book, st.SelectedBook)

	s.OpenModal()
	assert.True(t, s.State().IsModalOpen)
	assert.Same(t, book, s.State().SelectedBook)
}

func TestCartFlags(t *testing.T) {
	s := New(nil)

	s.OpenCart()
	s.OpenCart()
	assert.True(t, s.State().IsCartOpen)

	s.CloseCart()
	s.CloseCart()
	assert.False(t, s.State().IsCartOpen)
}

func TestSetSearchQuery_Verbatim(t *testing.T) {
	s := New(nil)

	s.SetSearchQuery("  The HOBBIT ")
	assert.Equal(t, "  The HOBBIT ", s.State().SearchQuery)

	s.SetSearchQuery("")
	assert.Empty(t, s.State().SearchQuery)
}

func TestToggleSortOrder(t *testing.T) {
	s := New(nil)

	s.ToggleSortOrder()
	assert.Equal(t, domain.Descending, s.State().SortOrder)

	s.ToggleSortOrder()
	assert.Equal(t, domain.Ascending, s.State().SortOrder)
}

func TestSubscribe_OnlyOnChange(t *testing.T) {
	s := New(nil)

	var got []State
	unsubscribe := s.Subscribe(func(st State) { got = append(got, st) })

	s.OpenCart()
	s.OpenCart()
	s.SetSearchQuery("dune")
	s.SetSearchQuery("dune")
	s.ToggleSortOrder()

	require.Len(t, got, 3)
	assert.True(t, got[0].IsCartOpen)
	assert.Equal(t, "dune", got[1].SearchQuery)
	assert.Equal(t, domain.Descending, got[2].SortOrder)

	unsubscribe()
	s.CloseCart()
	assert.Len(t, got, 3)
}

func TestSubscribe_StateAppliedBeforeListener(t *testing.T) {
	s := New(nil)

	s.Subscribe(func(st State) {
		assert.Equal(t, st, s.State())
	})

	s.SelectBook(&domain.Book{ID: "x"})
	s.ToggleSortOrder()
}
