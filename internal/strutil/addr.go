package strutil

const defaultAddress = "0.0.0.0"

// NormalizeAddress fills in the wildcard host for addresses like ":8080".
func NormalizeAddress(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = defaultAddress + addr
	}

	return addr
}
