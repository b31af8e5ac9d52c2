package transport

import (
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/h1stream/config"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP accepts connections and serves each of them in its own goroutine. The accept loop
// wakes up periodically to check whether it was stopped.
type TCP struct {
	l    listener
	wg   *sync.WaitGroup
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
	}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", addr)
	}

	l, err := net.ListenTCP("tcp", tcpaddr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}

	t.l = l
	return nil
}

// Addr returns the bound address. Useful when bound to the port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen runs the accept loop until Stop is called. Every connection is passed to the
// callback wrapped into Conn and closed right after the callback returns.
func (t *TCP) Listen(cfg config.NET, cb func(conn *Conn)) error {
	for !t.stop.Load() {
		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			return err
		}

		t.wg.Add(1)
		go func(conn *Conn) {
			defer t.wg.Done()
			cb(conn)
			_ = conn.Close()
		}(NewConn(conn, cfg.ReadTimeout))
	}

	return nil
}

func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() error {
	return t.l.Close()
}

// Wait blocks until every served connection is done.
func (t *TCP) Wait() {
	t.wg.Wait()
}
