package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("products", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("products", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("products")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = r.Get("sales")
	assert.False(t, ok)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[string]()
	calls := 0
	create := func() (string, error) {
		calls++
		return "handle", nil
	}

	v, err := r.GetOrCreate("sales", create)
	require.NoError(t, err)
	assert.Equal(t, "handle", v)

	_, err = r.GetOrCreate("sales", create)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = r.GetOrCreate("broken", func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, []string{"sales"}, r.Names())
}

func TestRegistry_ClearAll(t *testing.T) {
	r := NewRegistry[string]()
	_, _ = r.Register("a", "1")
	_, _ = r.Register("b", "2")

	var cleaned []string
	count, err := r.ClearAll(func(s string) error {
		cleaned = append(cleaned, s)
		if s == "2" {
			return errors.New("close failed")
		}
		return nil
	})
	assert.Equal(t, 2, count)
	assert.Error(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, cleaned)
	assert.Empty(t, r.Names())
}
