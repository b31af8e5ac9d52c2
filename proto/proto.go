package proto

import (
	"strconv"

	"github.com/indigo-web/utils/uf"
)

// Version is an HTTP protocol version as presented in a start line.
type Version struct {
	Major, Minor uint8
}

var (
	Unknown = Version{}
	HTTP10  = Version{Major: 1, Minor: 0}
	HTTP11  = Version{Major: 1, Minor: 1}
)

const (
	protoTokenLength   = len("HTTP/x.x")
	majorVersionOffset = len("HTTP/x") - 1
	dotOffset          = len("HTTP/x.") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

// FromBytes parses a protocol token in the HTTP/x.x form. Only single-digit
// major and minor versions are recognized.
func FromBytes(raw []byte) (Version, bool) {
	if len(raw) != protoTokenLength || uf.B2S(raw[:majorVersionOffset]) != httpScheme {
		return Unknown, false
	}

	major, minor := raw[majorVersionOffset]-'0', raw[minorVersionOffset]-'0'
	if major > 9 || minor > 9 || raw[dotOffset] != '.' {
		return Unknown, false
	}

	return Version{Major: major, Minor: minor}, true
}

// HasScheme tells whether the token starts with the HTTP scheme prefix.
func HasScheme(raw []byte) bool {
	return len(raw) >= len(httpScheme) && uf.B2S(raw[:len(httpScheme)]) == httpScheme
}

// Supported reports whether the version is one of HTTP/1.0 or HTTP/1.1.
func (v Version) Supported() bool {
	return v == HTTP10 || v == HTTP11
}

func (v Version) String() string {
	return httpScheme + strconv.Itoa(int(v.Major)) + "." + strconv.Itoa(int(v.Minor))
}
