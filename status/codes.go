package status

// Code is an HTTP status code. Parsed responses carry one; parse errors carry the
// code a server would answer such a malformed request with.
type Code uint16

// Codes the parser itself reasons about.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	Continue           Code = 100 // RFC 9110, 15.2.1
	SwitchingProtocols Code = 101 // RFC 9110, 15.2.2

	OK          Code = 200 // RFC 9110, 15.3.1
	NoContent   Code = 204 // RFC 9110, 15.3.5
	NotModified Code = 304 // RFC 9110, 15.4.5

	BadRequest                  Code = 400 // RFC 9110, 15.5.1
	RequestTimeout              Code = 408 // RFC 9110, 15.5.9
	RequestEntityTooLarge       Code = 413 // RFC 9110, 15.5.14
	RequestURITooLong           Code = 414 // RFC 9110, 15.5.15
	RequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5

	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// HasBody reports whether a response with the code may carry a message body.
// Informational, 204 and 304 responses never do (RFC 9112, 6.3).
func HasBody(code Code) bool {
	return code >= OK && code != NoContent && code != NotModified
}
