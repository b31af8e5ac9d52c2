package main

import (
	"bytes"
	"testing"

	"github.com/indigo-web/h1stream"
	"github.com/indigo-web/h1stream/config"
	"github.com/indigo-web/h1stream/peer"
	"github.com/indigo-web/h1stream/transport/dummy"
	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestRender(t *testing.T) {
	parse := func(t *testing.T, chunks ...string) *bytes.Buffer {
		msg, err := h1stream.New(config.Default()).Parse(dummy.NewStringSource(chunks...))
		require.NoError(t, err)

		buff := new(bytes.Buffer)
		addr := peer.Resolve(msg.Headers, "192.0.2.1", "5000")
		require.NoError(t, render(buff, msg, &addr))

		return buff
	}

	t.Run("request", func(t *testing.T) {
		out := parse(t, "POST /submit HTTP/1.1\r\nhost: example.com\r\nX-Forwarded-For: 10.0.0.1\r\nContent-Length: 2\r\n\r\nhi")

		var got renderedMessage
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Equal(t, renderedMessage{
			Kind:    "request",
			Method:  "POST",
			URL:     "/submit",
			Version: "HTTP/1.1",
			Headers: []renderedHeader{
				{Key: "Host", Value: "example.com"},
				{Key: "X-Forwarded-For", Value: "10.0.0.1"},
				{Key: "Content-Length", Value: "2"},
			},
			Body: "hi",
			Peer: &renderedPeer{Stream: "192.0.2.1:5000", XForwardedFor: "10.0.0.1"},
		}, got)
	})

	t.Run("response", func(t *testing.T) {
		out := parse(t, "HTTP/1.0 204 No Content\r\n\r\n")
		require.Equal(t, byte('\n'), out.Bytes()[out.Len()-1])

		var got renderedMessage
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Equal(t, "response", got.Kind)
		require.Equal(t, uint16(204), got.Code)
		require.Equal(t, "No Content", got.Reason)
		require.Equal(t, "HTTP/1.0", got.Version)
		require.Empty(t, got.Headers)
		require.Empty(t, got.URL)
	})
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]h1stream.Mode{
		"request":  h1stream.Request,
		"response": h1stream.Response,
		"both":     h1stream.Both,
		"":         h1stream.Both,
	} {
		mode, err := parseMode(name)
		require.NoError(t, err)
		require.Equal(t, want, mode)
	}

	_, err := parseMode("trailers")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(zapcore.DebugLevel)
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.DebugLevel))
}
