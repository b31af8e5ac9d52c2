package transport

import (
	"net"
	"time"
)

// Conn is a byte source over a network connection. A read deadline is set before every read,
// so a stalled peer results in a timeout error instead of blocking forever.
type Conn struct {
	conn    net.Conn
	timeout time.Duration
}

// NewConn wraps the connection. Zero timeout disables read deadlines.
func NewConn(conn net.Conn, timeout time.Duration) *Conn {
	return &Conn{
		conn:    conn,
		timeout: timeout,
	}
}

func (c *Conn) Read(b []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}

	return c.conn.Read(b)
}

// Endpoint returns host and port of the remote peer. Both are empty if the address is
// unknown or isn't in the host:port form.
func (c *Conn) Endpoint() (host, port string) {
	addr := c.conn.RemoteAddr()
	if addr == nil {
		return "", ""
	}

	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "", ""
	}

	return host, port
}

// Conn unwraps the underlying net.Conn.
func (c *Conn) Conn() net.Conn {
	return c.conn
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
