package status

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrStreamEmpty is returned when the byte source reaches its end before a
	// complete message was assembled.
	ErrStreamEmpty = errors.New("stream ended before the message was complete")
	// ErrInvalidMessage is the common cause of every syntax, limit and consistency
	// violation. Use errors.Is against it to catch any of them.
	ErrInvalidMessage = errors.New("invalid message")
	// ErrReadTimeout marks read deadline expiry at the byte source.
	ErrReadTimeout = errors.New("read deadline exceeded")
)

// HTTPError is a detailed parse failure. It always unwraps to ErrInvalidMessage.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

func (h HTTPError) Unwrap() error {
	return ErrInvalidMessage
}

var (
	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrBadStartLine         = NewError(BadRequest, "malformed start line")
	ErrBadStatusCode        = NewError(BadRequest, "malformed status code")
	ErrBadHeader            = NewError(BadRequest, "malformed header line")
	ErrBadContentLength     = NewError(BadRequest, "invalid value for content-length header")
	ErrBadEncoding          = NewError(BadRequest, "message length cannot be determined from transfer-encoding")
	ErrBadChunk             = NewError(BadRequest, "malformed chunk-encoded data")
	ErrMethodNotImplemented = NewError(NotImplemented, "request method is malformed or too long")
	ErrUnsupportedProtocol  = NewError(HTTPVersionNotSupported, "protocol is not supported")
	ErrURITooLong           = NewError(RequestURITooLong, "request URI too long")
	ErrHeaderFieldsTooLarge = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders       = NewError(RequestHeaderFieldsTooLarge, "too many headers")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "message body is too large")

	ErrLateEvent    = NewError(BadRequest, "event arrived after the message was complete")
	ErrOrphanValue  = NewError(BadRequest, "header value without a header name")
	ErrParserIsDead = NewError(BadRequest, "once an error occurred, the parser cannot be used anymore")
)

// CodeOf returns the code of the first HTTPError in the chain, or BadRequest
// for any other error marked invalid. Zero is returned otherwise.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	if errors.Is(err, ErrInvalidMessage) {
		return BadRequest
	}

	return 0
}
