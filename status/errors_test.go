package status

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestHTTPError(t *testing.T) {
	t.Run("unwraps to invalid message", func(t *testing.T) {
		for _, err := range []error{
			ErrBadRequest, ErrBadChunk, ErrURITooLong, ErrTooManyHeaders, ErrLateEvent,
		} {
			require.ErrorIs(t, err, ErrInvalidMessage, err.Error())
			require.NotErrorIs(t, err, ErrStreamEmpty)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		err := errors.Wrap(ErrHeaderFieldsTooLarge, "feeding tokenizer")
		require.ErrorIs(t, err, ErrHeaderFieldsTooLarge)
		require.ErrorIs(t, err, ErrInvalidMessage)
		require.Equal(t, RequestHeaderFieldsTooLarge, CodeOf(err))
	})

	t.Run("code of", func(t *testing.T) {
		require.Equal(t, HTTPVersionNotSupported, CodeOf(ErrUnsupportedProtocol))
		require.Equal(t, BadRequest, CodeOf(errors.Mark(errors.New("whatever"), ErrInvalidMessage)))
		require.Zero(t, CodeOf(ErrStreamEmpty))
	})
}

func TestHasBody(t *testing.T) {
	require.True(t, HasBody(OK))
	require.True(t, HasBody(BadRequest))
	require.False(t, HasBody(Continue))
	require.False(t, HasBody(SwitchingProtocols))
	require.False(t, HasBody(NoContent))
	require.False(t, HasBody(NotModified))
}
