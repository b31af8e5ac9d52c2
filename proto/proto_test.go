package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	t.Run("supported", func(t *testing.T) {
		v, ok := FromBytes([]byte("HTTP/1.1"))
		require.True(t, ok)
		require.Equal(t, HTTP11, v)
		require.True(t, v.Supported())

		v, ok = FromBytes([]byte("HTTP/1.0"))
		require.True(t, ok)
		require.Equal(t, HTTP10, v)
		require.True(t, v.Supported())
	})

	t.Run("well-formed but unsupported", func(t *testing.T) {
		v, ok := FromBytes([]byte("HTTP/2.0"))
		require.True(t, ok)
		require.Equal(t, Version{Major: 2}, v)
		require.False(t, v.Supported())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{
			"", "HTTP/1", "HTTP/1.11", "HTTPS/1.1", "http/1.1", "HTTP/x.1", "HTTP/1.x", "HTTP/1,1",
		} {
			_, ok := FromBytes([]byte(raw))
			require.False(t, ok, raw)
		}
	})
}

func TestHasScheme(t *testing.T) {
	require.True(t, HasScheme([]byte("HTTP/1.1")))
	require.True(t, HasScheme([]byte("HTTP/")))
	require.False(t, HasScheme([]byte("HTTP")))
	require.False(t, HasScheme([]byte("GET")))
}

func TestString(t *testing.T) {
	require.Equal(t, "HTTP/1.1", HTTP11.String())
	require.Equal(t, "HTTP/1.0", HTTP10.String())
}
