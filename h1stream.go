// Package h1stream parses HTTP/1.x messages incrementally, as they stream in from a byte
// source. The data is tokenized right after every read, so neither a message nor any of its
// parts have to be buffered whole before parsing.
package h1stream

import (
	"io"
	"net"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/h1stream/config"
	"github.com/indigo-web/h1stream/internal/tokenizer"
	"github.com/indigo-web/h1stream/message"
	"github.com/indigo-web/h1stream/status"
	"go.uber.org/zap"
)

type Mode = tokenizer.Mode

const (
	Request  = tokenizer.Request
	Response = tokenizer.Response
	Both     = tokenizer.Both
)

var (
	ErrStreamEmpty    = status.ErrStreamEmpty
	ErrInvalidMessage = status.ErrInvalidMessage
	ErrReadTimeout    = status.ErrReadTimeout
)

// Parser holds nothing but the immutable configuration, so a single instance can serve
// any number of concurrent Parse calls, as long as each uses its own source.
type Parser struct {
	cfg  *config.Config
	mode Mode
	log  *zap.Logger
}

// New returns a parser accepting both requests and responses. A nil config is replaced
// by config.Default().
func New(cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Parser{
		cfg:  cfg,
		mode: Both,
		log:  zap.NewNop(),
	}
}

// Mode restricts the kind of accepted messages.
func (p *Parser) Mode(mode Mode) *Parser {
	p.mode = mode
	return p
}

// Logger sets the logger for reads and failures. Everything is logged at the debug level.
func (p *Parser) Logger(log *zap.Logger) *Parser {
	p.log = log
	return p
}

// Parse reads a single message from the source, using a buffer of
// config.NET.ReadBufferSize bytes.
func (p *Parser) Parse(src io.Reader) (*message.Message, error) {
	return p.parse(src, p.cfg.NET.ReadBufferSize)
}

// ParseMessage reads a single message from the source with the default config, using
// a buffer of the given capacity.
func ParseMessage(src io.Reader, bufferCapacity int) (*message.Message, error) {
	return New(nil).parse(src, bufferCapacity)
}

// parse reads until the message is complete. A read of zero bytes, as well as io.EOF,
// is considered the end of the stream. Either the complete message or an error is returned,
// never both.
func (p *Parser) parse(src io.Reader, capacity int) (*message.Message, error) {
	if capacity <= 0 {
		return nil, errors.Newf("buffer capacity must be positive, got %d", capacity)
	}

	msg := message.New(p.cfg.Headers.Number.Default)
	tok := tokenizer.New(message.NewAccumulator(msg), p.mode, p.cfg)
	buff := make([]byte, capacity)

	for {
		n, err := src.Read(buff)
		if n > 0 {
			if ferr := p.feed(tok, buff[:n]); ferr != nil {
				return nil, ferr
			}
		}

		if msg.Complete() {
			p.log.Debug("message parsed",
				zap.Stringer("kind", msg.Kind),
				zap.Stringer("version", msg.Version),
				zap.Int("headers", msg.Headers.Len()),
				zap.Int("body", len(msg.Body)),
			)

			return msg, nil
		}

		switch {
		case err == nil && n > 0:
		case err == nil || errors.Is(err, io.EOF):
			p.log.Debug("end of stream", zap.Int("bytes", n))
			if ferr := tok.Finish(); ferr != nil {
				return nil, ferr
			}

			if !msg.Complete() {
				return nil, status.ErrStreamEmpty
			}

			return msg, nil
		case isTimeout(err):
			p.log.Debug("read timed out", zap.Error(err))
			// ErrReadTimeout stays reachable through Unwrap, the transport error is attached aside
			return nil, errors.WithSecondaryError(errors.Wrap(status.ErrReadTimeout, "read"), err)
		default:
			p.log.Debug("read failed", zap.Error(err))
			return nil, errors.Wrap(err, "read")
		}
	}
}

func (p *Parser) feed(tok *tokenizer.Tokenizer, data []byte) error {
	consumed, err := tok.Feed(data)
	if err != nil {
		p.log.Debug("malformed message",
			zap.Int("consumed", consumed),
			zap.Int("fed", len(data)),
			zap.Error(err),
		)

		if !errors.Is(err, status.ErrInvalidMessage) {
			err = errors.Mark(err, status.ErrInvalidMessage)
		}

		return err
	}

	if consumed != len(data) {
		return errors.Wrapf(status.ErrInvalidMessage, "consumed %d out of %d bytes", consumed, len(data))
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
