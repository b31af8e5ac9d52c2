package message

import (
	"github.com/indigo-web/h1stream/kv"
	"github.com/indigo-web/h1stream/proto"
	"github.com/indigo-web/h1stream/status"
)

type Kind uint8

const (
	Request Kind = iota + 1
	Response
)

func (k Kind) String() string {
	switch k {
	case Request:
		return "request"
	case Response:
		return "response"
	default:
		return "unknown"
	}
}

// Message is a single HTTP/1.x message, assembled from the tokenizer events. Until Complete
// returns true, the message must not be trusted.
type Message struct {
	Kind Kind
	// Method is set for requests only.
	Method string
	// URL is the raw request-target, exactly as it was on the wire.
	URL []byte
	// Code and Reason are set for responses only.
	Code   status.Code
	Reason string
	// Headers are looked up case-insensitively. A header repeated on the wire keeps the
	// value of its last occurrence.
	Headers *kv.Storage
	// Body is already de-framed from the chunked transfer coding, if any.
	Body    []byte
	Version proto.Version

	complete bool
}

// New returns an empty message. headersPrealloc pre-allocates the headers storage.
func New(headersPrealloc int) *Message {
	return &Message{
		Headers: kv.NewPrealloc(headersPrealloc),
	}
}

// Complete reports whether the message was fully received. Once it becomes true,
// the message isn't mutated anymore.
func (m *Message) Complete() bool {
	return m.complete
}

func (m *Message) IsRequest() bool {
	return m.Kind == Request
}
