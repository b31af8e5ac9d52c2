package main

import (
	"io"

	"github.com/indigo-web/h1stream/message"
	"github.com/indigo-web/h1stream/peer"
	json "github.com/json-iterator/go"
)

type renderedHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type renderedPeer struct {
	Stream        string `json:"stream"`
	Forwarded     string `json:"forwarded,omitempty"`
	XForwardedFor string `json:"x_forwarded_for,omitempty"`
}

type renderedMessage struct {
	Kind    string           `json:"kind"`
	Method  string           `json:"method,omitempty"`
	URL     string           `json:"url,omitempty"`
	Code    uint16           `json:"code,omitempty"`
	Reason  string           `json:"reason,omitempty"`
	Version string           `json:"version"`
	Headers []renderedHeader `json:"headers"`
	Body    string           `json:"body"`
	Peer    *renderedPeer    `json:"peer,omitempty"`
}

// render writes the message as a single line of JSON. The peer is omitted when nil.
func render(w io.Writer, msg *message.Message, addr *peer.Address) error {
	model := renderedMessage{
		Kind:    msg.Kind.String(),
		Method:  msg.Method,
		URL:     string(msg.URL),
		Code:    uint16(msg.Code),
		Reason:  msg.Reason,
		Version: msg.Version.String(),
		Headers: make([]renderedHeader, 0, msg.Headers.Len()),
		Body:    string(msg.Body),
	}

	for key, value := range msg.Headers.Pairs() {
		model.Headers = append(model.Headers, renderedHeader{Key: key, Value: value})
	}

	if addr != nil {
		model.Peer = &renderedPeer{Stream: addr.Stream}
		model.Peer.Forwarded, _ = addr.Forwarded()
		model.Peer.XForwardedFor, _ = addr.XForwardedFor()
	}

	stream := json.ConfigDefault.BorrowStream(w)
	stream.WriteVal(model)
	stream.WriteRaw("\n")
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return err
}
