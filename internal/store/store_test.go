package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	return s, func() { _ = s.Close() }
}

func TestBadger_SaveLoad(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	_, err := s.Load(ctx, "digital-bookstore:cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "digital-bookstore:cart", []byte(`{"version":0}`)))

	got, err := s.Load(ctx, "digital-bookstore:cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":0}`, string(got))

	require.NoError(t, s.Save(ctx, "digital-bookstore:cart", []byte(`{"version":1}`)))
	got, err = s.Load(ctx, "digital-bookstore:cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(got))
}

func TestBadger_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = New(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestBadger_DeleteExists(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "k", []byte("v")))
	ok, err = s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadger_CancelledContext(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, "k", []byte("v")), context.Canceled)
	_, err := s.Load(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBadger_InMemory(t *testing.T) {
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "k", []byte("v")))

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, m.Save(ctx, "k", in))
	in[0] = 'x'

	out, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[0] = 'y'
	again, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemory_SaveErr(t *testing.T) {
	m := NewMemory()
	m.SaveErr = errors.New("disk full")

	assert.EqualError(t, m.Save(context.Background(), "k", nil), "disk full")

	_, err := m.Load(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*Memory)(nil)
)
