package tokenizer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/h1stream/config"
	"github.com/indigo-web/h1stream/internal/strutil"
	"github.com/indigo-web/h1stream/proto"
	"github.com/indigo-web/h1stream/status"
	"github.com/indigo-web/utils/uf"
)

// Mode restricts which kind of messages the tokenizer accepts.
type Mode uint8

const (
	Request Mode = iota + 1
	Response
	// Both detects the kind by the first token of the start line: HTTP/x.x
	// begins a status line, anything else is a request method.
	Both
)

const (
	maxMethodLength  = 32
	maxVersionLength = len("HTTP/x.x")
)

// StartLine describes the start line as soon as it has been fully received. For requests
// Method is set, for responses Code.
type StartLine struct {
	Method string
	Code   status.Code
}

// Handler receives tokenizer events. Byte slices passed to it alias the data given to Feed,
// so whatever must outlive the call has to be copied. Returning a non-nil error aborts
// the current Feed.
type Handler interface {
	OnURL(fragment []byte) error
	OnStatus(fragment []byte) error
	OnStartLine(line StartLine) error
	OnHeaderField(fragment []byte) error
	OnHeaderValue(fragment []byte) error
	OnHeadersComplete() error
	OnBody(fragment []byte) error
	OnMessageComplete(major, minor uint8) error
}

// Tokenizer is a stream-based HTTP/1.x tokenizer. It recognizes the message grammar byte
// by byte as the data arrives and reports the recognized pieces to its Handler without
// assembling them. A piece split between two Feed calls is reported as two fragments. The
// only data it keeps between calls is the method and protocol tokens and the values of the
// headers which define the body framing.
type Tokenizer struct {
	handler Handler
	cfg     *config.Config
	mode    Mode
	state   tokenizerState

	token      []byte
	method     string
	version    proto.Version
	code       status.Code
	codeDigits int
	isResponse bool

	lineLength    int
	headersNumber int
	keyLength     int
	valueLength   int
	field         [len("transfer-encoding")]byte
	header        knownHeader

	clState          contentLengthState
	clValue          uint64
	contentLength    uint64
	hasContentLength bool
	te               []byte
	hasTE            bool
	chunked          bool
	hasTrailer       bool

	chunkedParser *chunkedbody.Parser
	bodyLeft      uint64
	bodyReceived  uint64
}

func New(handler Handler, mode Mode, cfg *config.Config) *Tokenizer {
	if mode == 0 {
		mode = Both
	}

	return &Tokenizer{
		handler: handler,
		cfg:     cfg,
		mode:    mode,
		state:   eStart,
		token:   make([]byte, 0, maxVersionLength),
	}
}

// Feed consumes the data, returning how many bytes were consumed. The number is less than
// len(data) only together with a non-nil error, after which the tokenizer is dead. When a
// message completes, the tokenizer is ready for the next one, which may start in the very
// same data.
func (t *Tokenizer) Feed(data []byte) (n int, err error) {
	total := len(data)
	if total == 0 {
		return 0, nil
	}

	switch t.state {
	case eStart:
		goto start
	case eFirstToken:
		goto firstToken
	case eURL:
		goto url
	case eReqVersion:
		goto reqVersion
	case eStatusCode:
		goto statusCode
	case eReason:
		goto reason
	case eStartLineLF:
		goto startLineLF
	case eHeaderStart:
		goto headerStart
	case eHeaderField:
		goto headerField
	case eHeaderValueWS:
		goto headerValueWS
	case eHeaderValue:
		goto headerValue
	case eHeaderValueLF:
		goto headerValueLF
	case eHeadersLF:
		goto headersLF
	case eBodyIdentity:
		goto bodyIdentity
	case eBodyChunked:
		goto bodyChunked
	case eBodyEOF:
		goto bodyEOF
	case eDead:
		return 0, status.ErrParserIsDead
	default:
		panic(fmt.Sprintf("BUG: unexpected state: %v", t.state))
	}

start:
	// empty lines preceding the start line are ignored (RFC 9112, 2.2)
	for len(data) > 0 && (data[0] == '\r' || data[0] == '\n') {
		data = data[1:]
	}

	if len(data) == 0 {
		return total, nil
	}

	t.state = eFirstToken
	goto firstToken

firstToken:
	{
		sp := -1
		for i, c := range data {
			if c == ' ' {
				sp = i
				break
			}

			if !isTokenChar(c) && c != '/' {
				return t.fail(total, data[i:], status.ErrBadStartLine)
			}
		}

		chunk := data
		if sp != -1 {
			chunk = data[:sp]
		}

		if len(t.token)+len(chunk) > maxMethodLength {
			return t.fail(total, data, status.ErrMethodNotImplemented)
		}

		t.token = append(t.token, chunk...)
		if sp == -1 {
			return total, nil
		}

		if err = t.classify(); err != nil {
			return t.fail(total, data[sp:], err)
		}

		data = data[sp+1:]
		if t.isResponse {
			t.state = eStatusCode
			goto statusCode
		}

		t.state = eURL
		goto url
	}

url:
	{
		end := indexURLEnd(data)
		fragment := data
		if end != -1 {
			fragment = data[:end]
		}

		for i, c := range fragment {
			if !isURLChar(c) {
				return t.fail(total, data[i:], status.ErrBadStartLine)
			}
		}

		if t.lineLength += len(fragment); t.lineLength > t.cfg.URI.MaxLength {
			return t.fail(total, data, status.ErrURITooLong)
		}

		if len(fragment) > 0 {
			if err = t.handler.OnURL(fragment); err != nil {
				return t.fail(total, data, err)
			}
		}

		if end == -1 {
			return total, nil
		}

		if t.lineLength == 0 {
			return t.fail(total, data[end:], status.ErrBadStartLine)
		}

		if data[end] != ' ' {
			// HTTP/0.9 simple requests carry no protocol token
			return t.fail(total, data[end:], status.ErrUnsupportedProtocol)
		}

		data = data[end+1:]
		t.state = eReqVersion
		goto reqVersion
	}

reqVersion:
	{
		end := indexLineEnd(data)
		chunk := data
		if end != -1 {
			chunk = data[:end]
		}

		if len(t.token)+len(chunk) > maxVersionLength {
			return t.fail(total, data, status.ErrUnsupportedProtocol)
		}

		t.token = append(t.token, chunk...)
		if end == -1 {
			return total, nil
		}

		version, ok := proto.FromBytes(t.token)
		if !ok || !version.Supported() {
			return t.fail(total, data[end:], status.ErrUnsupportedProtocol)
		}

		t.version = version
		t.token = t.token[:0]
		data = data[end:]
		goto startLineEnd
	}

statusCode:
	for i, c := range data {
		switch {
		case '0' <= c && c <= '9':
			if t.codeDigits++; t.codeDigits > 3 {
				return t.fail(total, data[i:], status.ErrBadStatusCode)
			}

			t.code = t.code*10 + status.Code(c-'0')
		case c == ' ' || c == '\r' || c == '\n':
			if t.codeDigits != 3 {
				return t.fail(total, data[i:], status.ErrBadStatusCode)
			}

			if c == ' ' {
				data = data[i+1:]
				t.state = eReason
				goto reason
			}

			data = data[i:]
			goto startLineEnd
		default:
			return t.fail(total, data[i:], status.ErrBadStatusCode)
		}
	}

	return total, nil

reason:
	{
		end := indexLineEnd(data)
		fragment := data
		if end != -1 {
			fragment = data[:end]
		}

		for i, c := range fragment {
			if !isTextChar(c) {
				return t.fail(total, data[i:], status.ErrBadStartLine)
			}
		}

		if t.lineLength += len(fragment); t.lineLength > t.cfg.URI.MaxLength {
			return t.fail(total, data, status.ErrBadStartLine)
		}

		if len(fragment) > 0 {
			if err = t.handler.OnStatus(fragment); err != nil {
				return t.fail(total, data, err)
			}
		}

		if end == -1 {
			return total, nil
		}

		data = data[end:]
		goto startLineEnd
	}

startLineEnd:
	// data[0] is guaranteed to be either CR or LF
	if data[0] == '\r' {
		data = data[1:]
		t.state = eStartLineLF
		goto startLineLF
	}

	data = data[1:]
	goto startLineDone

startLineLF:
	if len(data) == 0 {
		return total, nil
	}

	if data[0] != '\n' {
		return t.fail(total, data, status.ErrBadStartLine)
	}

	data = data[1:]
	goto startLineDone

startLineDone:
	if err = t.handler.OnStartLine(StartLine{Method: t.method, Code: t.code}); err != nil {
		return t.fail(total, data, err)
	}

	t.state = eHeaderStart
	goto headerStart

headerStart:
	if len(data) == 0 {
		return total, nil
	}

	switch data[0] {
	case '\r':
		data = data[1:]
		t.state = eHeadersLF
		goto headersLF
	case '\n':
		goto headersDone
	case ' ', '\t':
		// obsolete line folding
		return t.fail(total, data, status.ErrBadHeader)
	}

	if t.headersNumber++; t.headersNumber > t.cfg.Headers.Number.Maximal {
		return t.fail(total, data, status.ErrTooManyHeaders)
	}

	t.keyLength, t.header = 0, hdrOther
	t.state = eHeaderField
	goto headerField

headerField:
	{
		colon := bytes.IndexByte(data, ':')
		fragment := data
		if colon != -1 {
			fragment = data[:colon]
		}

		for i, c := range fragment {
			if !isTokenChar(c) {
				return t.fail(total, data[i:], status.ErrBadHeader)
			}
		}

		if t.keyLength+len(fragment) > t.cfg.Headers.MaxKeyLength {
			return t.fail(total, data, status.ErrHeaderFieldsTooLarge)
		}

		t.matchField(fragment)

		if len(fragment) > 0 {
			if err = t.handler.OnHeaderField(fragment); err != nil {
				return t.fail(total, data, err)
			}
		}

		if colon == -1 {
			return total, nil
		}

		if t.keyLength == 0 {
			return t.fail(total, data[colon:], status.ErrBadHeader)
		}

		t.header = t.knownHeader()
		if t.header == hdrTransferEncoding && len(t.te) > 0 {
			t.te = append(t.te, ',')
		}

		t.valueLength = 0
		data = data[colon+1:]
		t.state = eHeaderValueWS
		goto headerValueWS
	}

headerValueWS:
	for i, c := range data {
		if c != ' ' && c != '\t' {
			data = data[i:]
			t.state = eHeaderValue
			goto headerValue
		}
	}

	return total, nil

headerValue:
	{
		end := indexLineEnd(data)
		fragment := data
		if end != -1 {
			fragment = data[:end]
		}

		for i, c := range fragment {
			if !isTextChar(c) {
				return t.fail(total, data[i:], status.ErrBadHeader)
			}
		}

		if t.valueLength += len(fragment); t.valueLength > t.cfg.Headers.MaxValueLength {
			return t.fail(total, data, status.ErrHeaderFieldsTooLarge)
		}

		if err = t.inspectValue(fragment); err != nil {
			return t.fail(total, data, err)
		}

		// an empty value is still reported once, so the field/value alternation holds
		if len(fragment) > 0 || (end != -1 && t.valueLength == 0) {
			if err = t.handler.OnHeaderValue(fragment); err != nil {
				return t.fail(total, data, err)
			}
		}

		if end == -1 {
			return total, nil
		}

		if err = t.finishValue(); err != nil {
			return t.fail(total, data[end:], err)
		}

		if data[end] == '\r' {
			data = data[end+1:]
			t.state = eHeaderValueLF
			goto headerValueLF
		}

		data = data[end+1:]
		t.state = eHeaderStart
		goto headerStart
	}

headerValueLF:
	if len(data) == 0 {
		return total, nil
	}

	if data[0] != '\n' {
		return t.fail(total, data, status.ErrBadHeader)
	}

	data = data[1:]
	t.state = eHeaderStart
	goto headerStart

headersLF:
	if len(data) == 0 {
		return total, nil
	}

	if data[0] != '\n' {
		return t.fail(total, data, status.ErrBadHeader)
	}

	goto headersDone

headersDone:
	// data[0] is the LF terminating the headers
	if err = t.enterBody(); err != nil {
		return t.fail(total, data, err)
	}

	if err = t.handler.OnHeadersComplete(); err != nil {
		return t.fail(total, data, err)
	}

	data = data[1:]
	switch t.state {
	case eBodyIdentity:
		goto bodyIdentity
	case eBodyChunked:
		goto bodyChunked
	case eBodyEOF:
		goto bodyEOF
	default:
		goto messageComplete
	}

bodyIdentity:
	{
		if len(data) == 0 {
			return total, nil
		}

		piece := data
		if uint64(len(piece)) > t.bodyLeft {
			piece = piece[:t.bodyLeft]
		}

		if err = t.handler.OnBody(piece); err != nil {
			return t.fail(total, data, err)
		}

		t.bodyLeft -= uint64(len(piece))
		data = data[len(piece):]
		if t.bodyLeft > 0 {
			return total, nil
		}

		goto messageComplete
	}

bodyChunked:
	for len(data) > 0 {
		chunk, extra, perr := t.chunkedParser.Parse(data, t.hasTrailer)
		switch perr {
		case nil, io.EOF:
		default:
			return t.fail(total, data, status.ErrBadChunk)
		}

		if len(chunk) > 0 {
			if err = t.receive(chunk); err != nil {
				return t.fail(total, data, err)
			}

			if err = t.handler.OnBody(chunk); err != nil {
				return t.fail(total, data, err)
			}
		}

		data = extra
		if perr == io.EOF {
			goto messageComplete
		}
	}

	return total, nil

bodyEOF:
	if err = t.receive(data); err != nil {
		return t.fail(total, data, err)
	}

	if len(data) > 0 {
		if err = t.handler.OnBody(data); err != nil {
			return t.fail(total, data, err)
		}
	}

	return total, nil

messageComplete:
	if err = t.handler.OnMessageComplete(t.version.Major, t.version.Minor); err != nil {
		return t.fail(total, data, err)
	}

	t.reset()
	if len(data) == 0 {
		return total, nil
	}

	goto start
}

// Finish tells the tokenizer that the stream has ended. A body delimited by the end of the
// stream completes the message; in any other state status.ErrStreamEmpty is returned and
// the tokenizer dies.
func (t *Tokenizer) Finish() error {
	if t.state != eBodyEOF {
		t.state = eDead
		return status.ErrStreamEmpty
	}

	if err := t.handler.OnMessageComplete(t.version.Major, t.version.Minor); err != nil {
		t.state = eDead
		return err
	}

	t.reset()
	return nil
}

func (t *Tokenizer) fail(total int, rest []byte, err error) (int, error) {
	t.state = eDead
	return total - len(rest), err
}

// classify decides by the first start line token whether a request or a response is
// being parsed.
func (t *Tokenizer) classify() error {
	token := t.token

	switch {
	case t.mode != Request && proto.HasScheme(token):
		version, ok := proto.FromBytes(token)
		if !ok || !version.Supported() {
			return status.ErrUnsupportedProtocol
		}

		t.version, t.isResponse = version, true
	case t.mode == Response || len(token) == 0:
		return status.ErrBadStartLine
	default:
		for _, c := range token {
			if !isTokenChar(c) {
				return status.ErrMethodNotImplemented
			}
		}

		t.method = string(token)
	}

	t.token = t.token[:0]
	return nil
}

// matchField keeps the lower-cased beginning of the header field name, enough to recognize
// the headers defining body framing.
func (t *Tokenizer) matchField(fragment []byte) {
	for _, c := range fragment {
		if t.keyLength < len(t.field) {
			t.field[t.keyLength] = c | 0x20
		}

		t.keyLength++
	}
}

func (t *Tokenizer) knownHeader() knownHeader {
	if t.keyLength > len(t.field) {
		return hdrOther
	}

	switch uf.B2S(t.field[:t.keyLength]) {
	case "content-length":
		return hdrContentLength
	case "transfer-encoding":
		return hdrTransferEncoding
	case "trailer":
		return hdrTrailer
	default:
		return hdrOther
	}
}

func (t *Tokenizer) inspectValue(fragment []byte) error {
	switch t.header {
	case hdrContentLength:
		for _, c := range fragment {
			switch {
			case '0' <= c && c <= '9' && t.clState != clTrailingWS:
				if t.clValue > (1<<63-1-9)/10 {
					return status.ErrBadContentLength
				}

				t.clValue = t.clValue*10 + uint64(c-'0')
				t.clState = clDigits
			case (c == ' ' || c == '\t') && t.clState != clNone:
				t.clState = clTrailingWS
			default:
				return status.ErrBadContentLength
			}
		}
	case hdrTransferEncoding:
		for _, c := range fragment {
			t.te = append(t.te, c|0x20)
		}
	}

	return nil
}

func (t *Tokenizer) finishValue() error {
	switch t.header {
	case hdrContentLength:
		if t.clState == clNone {
			return status.ErrBadContentLength
		}

		if t.hasContentLength && t.contentLength != t.clValue {
			return status.ErrBadContentLength
		}

		t.contentLength, t.hasContentLength = t.clValue, true
		t.clValue, t.clState = 0, clNone
	case hdrTransferEncoding:
		t.hasTE = true
		t.chunked = lastCoding(uf.B2S(t.te)) == "chunked"
	case hdrTrailer:
		t.hasTrailer = true
	}

	return nil
}

// enterBody chooses the body framing as of RFC 9112, 6.3. The state is left at eStart when
// the message has no body.
func (t *Tokenizer) enterBody() error {
	switch {
	case t.isResponse && !status.HasBody(t.code):
		t.state = eStart
	case t.chunked:
		t.chunkedParser = chunkedbody.NewParser(chunkedbody.DefaultSettings())
		t.state = eBodyChunked
	case t.hasTE && !t.isResponse:
		return status.ErrBadEncoding
	case t.hasTE:
		t.state = eBodyEOF
	case t.hasContentLength:
		if t.contentLength > t.cfg.Body.MaxSize {
			return status.ErrBodyTooLarge
		}

		t.bodyLeft = t.contentLength
		t.state = eBodyIdentity
		if t.bodyLeft == 0 {
			t.state = eStart
		}
	case t.isResponse:
		t.state = eBodyEOF
	default:
		t.state = eStart
	}

	return nil
}

func (t *Tokenizer) receive(body []byte) error {
	if t.bodyReceived += uint64(len(body)); t.bodyReceived > t.cfg.Body.MaxSize {
		return status.ErrBodyTooLarge
	}

	return nil
}

func (t *Tokenizer) reset() {
	*t = Tokenizer{
		handler: t.handler,
		cfg:     t.cfg,
		mode:    t.mode,
		state:   eStart,
		token:   t.token[:0],
		te:      t.te[:0],
	}
}

// lastCoding returns the last non-empty coding of a comma-separated transfer-coding list.
func lastCoding(te string) string {
	for len(te) > 0 {
		comma := strings.LastIndexByte(te, ',')
		coding := strutil.RStripWS(strutil.LStripWS(te[comma+1:]))
		if len(coding) > 0 {
			return coding
		}

		if comma == -1 {
			break
		}

		te = te[:comma]
	}

	return ""
}
