package dummy

import (
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is a net.Conn reading from a Source. Written data is kept unless the conn is Nop,
// read deadlines are recorded.
type Conn struct {
	Data      []byte
	Deadlines []time.Time
	src       *Source
	remote    net.Addr
	nop       bool
}

func NewConn(src *Source) *Conn {
	return &Conn{
		src: src,
	}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	return c.src.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if !c.nop {
		c.Data = append(c.Data, b...)
	}

	return len(b), nil
}

func (c *Conn) Close() error {
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.remote
}

func (c *Conn) SetDeadline(t time.Time) error {
	return c.SetReadDeadline(t)
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	c.Deadlines = append(c.Deadlines, t)
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// Remote sets the address returned by RemoteAddr.
func (c *Conn) Remote(addr net.Addr) *Conn {
	c.remote = addr
	return c
}

func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}
