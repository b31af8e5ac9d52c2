package message

import (
	"github.com/indigo-web/h1stream/internal/strutil"
	"github.com/indigo-web/h1stream/internal/tokenizer"
	"github.com/indigo-web/h1stream/proto"
	"github.com/indigo-web/h1stream/status"
	"github.com/indigo-web/utils/uf"
)

// headerState tracks the hand-off between header names and values. Exactly one of the
// variants below is active at a time.
type headerState interface {
	headerState()
}

// headerNone is active before the first header and after the headers are complete.
type headerNone struct{}

// parsingKey holds the header name received so far.
type parsingKey struct {
	key []byte
}

// parsingValue holds the finalized header name and the value received so far.
type parsingValue struct {
	key   string
	value []byte
}

func (headerNone) headerState()   {}
func (parsingKey) headerState()   {}
func (parsingValue) headerState() {}

var _ tokenizer.Handler = new(Accumulator)

// Accumulator assembles tokenizer events into a Message. Every fragment is copied, so the
// buffer the events came from may be reused as soon as the feed returns. The accumulator
// serves a single message: any event after the completion is rejected.
type Accumulator struct {
	msg    *Message
	state  headerState
	reason []byte
}

func NewAccumulator(msg *Message) *Accumulator {
	return &Accumulator{
		msg:   msg,
		state: headerNone{},
	}
}

// Message returns the message being assembled.
func (a *Accumulator) Message() *Message {
	return a.msg
}

func (a *Accumulator) OnURL(fragment []byte) error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	a.msg.URL = append(a.msg.URL, fragment...)
	return nil
}

func (a *Accumulator) OnStatus(fragment []byte) error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	a.reason = append(a.reason, fragment...)
	return nil
}

func (a *Accumulator) OnStartLine(line tokenizer.StartLine) error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	if len(line.Method) > 0 {
		a.msg.Kind = Request
		a.msg.Method = line.Method
		return nil
	}

	a.msg.Kind = Response
	a.msg.Code = line.Code
	a.msg.Reason = string(a.reason)
	return nil
}

func (a *Accumulator) OnHeaderField(fragment []byte) error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	switch state := a.state.(type) {
	case headerNone:
		a.state = parsingKey{key: clone(fragment)}
	case parsingKey:
		a.state = parsingKey{key: append(state.key, fragment...)}
	case parsingValue:
		a.commit(state)
		a.state = parsingKey{key: clone(fragment)}
	}

	return nil
}

func (a *Accumulator) OnHeaderValue(fragment []byte) error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	switch state := a.state.(type) {
	case headerNone:
		return status.ErrOrphanValue
	case parsingKey:
		// the key buffer is owned and never touched again, so it can back the string
		key := uf.B2S(strutil.CanonicalizeKey(state.key))
		a.state = parsingValue{key: key, value: clone(fragment)}
	case parsingValue:
		state.value = append(state.value, fragment...)
		a.state = state
	}

	return nil
}

func (a *Accumulator) OnHeadersComplete() error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	if state, ok := a.state.(parsingValue); ok {
		a.commit(state)
	}

	a.state = headerNone{}
	return nil
}

func (a *Accumulator) OnBody(fragment []byte) error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	a.msg.Body = append(a.msg.Body, fragment...)
	return nil
}

func (a *Accumulator) OnMessageComplete(major, minor uint8) error {
	if a.msg.complete {
		return status.ErrLateEvent
	}

	a.msg.Version = proto.Version{Major: major, Minor: minor}
	a.msg.complete = true
	return nil
}

func (a *Accumulator) commit(state parsingValue) {
	a.msg.Headers.Set(state.key, strutil.RStripWS(uf.B2S(state.value)))
}

func clone(b []byte) []byte {
	return append(make([]byte, 0, len(b)), b...)
}
