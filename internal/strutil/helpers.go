package strutil

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// CanonicalizeKey converts a header field name into its canonical form in place: the first
// letter and every letter following a hyphen are upper-cased, the rest are lower-cased.
// Non-letters are left untouched.
func CanonicalizeKey(key []byte) []byte {
	upper := true
	for i, c := range key {
		switch {
		case upper && 'a' <= c && c <= 'z':
			key[i] = c &^ 0x20
		case !upper && 'A' <= c && c <= 'Z':
			key[i] = c | 0x20
		}

		upper = c == '-'
	}

	return key
}
