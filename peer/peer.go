// Package peer describes who sent the message: the socket endpoint and whatever the
// proxies in between claim about it. Header values are passed through as is.
package peer

import (
	"net"

	"github.com/indigo-web/h1stream/kv"
)

// Address is the peer descriptor. Stream is always set, the proxy headers only when
// they were present in the message.
type Address struct {
	Stream        string
	forwarded     string
	xForwardedFor string
	hasForwarded  bool
	hasXFF        bool
}

// Resolve composes the peer address from the message headers and the transport endpoint.
// IPv6 hosts are bracketed in Stream.
func Resolve(headers *kv.Storage, host, port string) Address {
	addr := Address{
		Stream: net.JoinHostPort(host, port),
	}

	if headers != nil {
		addr.forwarded, addr.hasForwarded = headers.Get("Forwarded")
		addr.xForwardedFor, addr.hasXFF = headers.Get("X-Forwarded-For")
	}

	return addr
}

// Forwarded returns the value of the Forwarded header (RFC 7239).
func (a Address) Forwarded() (string, bool) {
	return a.forwarded, a.hasForwarded
}

// XForwardedFor returns the value of the X-Forwarded-For header.
func (a Address) XForwardedFor() (string, bool) {
	return a.xForwardedFor, a.hasXFF
}
