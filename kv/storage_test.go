package kv

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New().
			Add("Foo", "bar").
			Add("Hello", "World").
			Add("Lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("get is case-insensitive", func(t *testing.T) {
		kv := getHeaders()
		value, found := kv.Get("HELLO")
		require.True(t, found)
		require.Equal(t, "World", value)
		require.True(t, kv.Has("lorem"))
		require.False(t, kv.Has("ipsum"))
		require.Equal(t, "default", kv.ValueOr("nope", "default"))
	})

	t.Run("values", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, []string{"World", "Pavlo"}, slices.Collect(kv.Values("hello")))
		require.Empty(t, slices.Collect(kv.Values("nope")))
	})

	t.Run("delete", func(t *testing.T) {
		kv := getHeaders().Delete("HELLO")

		want := []Pair{
			{"Foo", "bar"},
			{"Lorem", "ipsum"},
		}

		require.Equal(t, want, kv.Expose())
		require.Equal(t, map[string]string{"Foo": "bar", "Lorem": "ipsum"}, maps.Collect(kv.Pairs()))
	})

	t.Run("set", func(t *testing.T) {
		kv := getHeaders().Set("HELLO", "no more Pavlo")

		want := []Pair{
			{"Foo", "bar"},
			{"HELLO", "no more Pavlo"},
			{"Lorem", "ipsum"},
		}

		require.Equal(t, want, kv.Expose())
	})

	t.Run("set new key", func(t *testing.T) {
		kv := New().
			Add("Pavlo", "the best").
			Set("Glory to", "Ukraine")

		want := []Pair{
			{"Pavlo", "the best"},
			{"Glory to", "Ukraine"},
		}

		require.Equal(t, want, kv.Expose())
	})

	t.Run("keys", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, []string{"Foo", "Hello", "Lorem"}, slices.Collect(kv.Keys()))

		kv.Delete("hello")
		require.Equal(t, []string{"Foo", "Lorem"}, slices.Collect(kv.Keys()))
	})

	t.Run("empty", func(t *testing.T) {
		kv := getHeaders()
		for key := range kv.Keys() {
			kv.Delete(key)
		}

		require.True(t, kv.Empty())
	})

	t.Run("clone is independent", func(t *testing.T) {
		kv := getHeaders()
		cloned := kv.Clone()
		kv.Clear()
		require.Zero(t, kv.Len())
		require.Equal(t, 4, cloned.Len())
		require.Equal(t, "bar", cloned.Value("foo"))
	})

	t.Run("from map", func(t *testing.T) {
		kv := NewFromMap(map[string][]string{
			"Accept": {"one", "two"},
		})
		require.Equal(t, []string{"one", "two"}, slices.Collect(kv.Values("accept")))
	})
}
