package tokenizer

// tchar as of RFC 9110, 5.6.2
var tokenChars = [256]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true, '\'': true, '*': true,
	'+': true, '-': true, '.': true, '^': true, '_': true, '`': true, '|': true, '~': true,
	'0': true, '1': true, '2': true, '3': true, '4': true, '5': true, '6': true, '7': true,
	'8': true, '9': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true, 'H': true,
	'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true, 'O': true, 'P': true,
	'Q': true, 'R': true, 'S': true, 'T': true, 'U': true, 'V': true, 'W': true, 'X': true,
	'Y': true, 'Z': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true, 'h': true,
	'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true, 'o': true, 'p': true,
	'q': true, 'r': true, 's': true, 't': true, 'u': true, 'v': true, 'w': true, 'x': true,
	'y': true, 'z': true,
}

func isTokenChar(c byte) bool {
	return tokenChars[c]
}

// isTextChar covers field-value, reason-phrase and obs-text octets: HTAB, SP, VCHAR and
// everything above 0x7f.
func isTextChar(c byte) bool {
	return c == '\t' || (c >= ' ' && c != 0x7f)
}

// isURLChar accepts any visible octet, leaving the request-target grammar to the consumer.
func isURLChar(c byte) bool {
	return c > ' ' && c != 0x7f
}

// indexLineEnd returns the index of the first CR or LF, or -1.
func indexLineEnd(data []byte) int {
	for i, c := range data {
		if c == '\r' || c == '\n' {
			return i
		}
	}

	return -1
}

// indexURLEnd returns the index of the first SP, CR or LF, or -1.
func indexURLEnd(data []byte) int {
	for i, c := range data {
		if c == ' ' || c == '\r' || c == '\n' {
			return i
		}
	}

	return -1
}
