// Package uri holds the validity predicates the serializers consult before
// writing a request path or query fragment.
package uri

// Validator reports whether s may be written as-is. It must not modify or
// retain s.
type Validator func(s string) bool

// Character classes from RFC 3986 Section 2 and 3.3/3.4
const (
	classUnreserved uint8 = 1 << iota
	classSubDelim
	classPchar // ':' and '@'
	classSlash
	classQuestion
)

var charTable = func() (t [256]uint8) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= classUnreserved
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] |= classUnreserved
	}
	for c := '0'; c <= '9'; c++ {
		t[c] |= classUnreserved
	}
	for _, c := range "-._~" {
		t[c] |= classUnreserved
	}
	for _, c := range "!$&'()*+,;=" {
		t[c] |= classSubDelim
	}
	t[':'] |= classPchar
	t['@'] |= classPchar
	t['/'] |= classSlash
	t['?'] |= classQuestion
	return t
}()

const (
	pathMask  = classUnreserved | classSubDelim | classPchar | classSlash
	queryMask = pathMask | classQuestion
)

// ValidPath reports whether s only holds path characters (pchar and '/') and
// well-formed percent-encodings. The empty string is valid here; callers that
// need a non-empty path check that themselves.
func ValidPath(s string) bool {
	return scan(s, pathMask) < 0
}

// ValidQuery reports whether s only holds query characters (pchar, '/' and
// '?') and well-formed percent-encodings.
func ValidQuery(s string) bool {
	return scan(s, queryMask) < 0
}

// InvalidPathIndex returns the index of the first byte that makes s an invalid
// path, or -1.
func InvalidPathIndex(s string) int {
	return scan(s, pathMask)
}

// InvalidQueryIndex returns the index of the first byte that makes s an
// invalid query fragment, or -1.
func InvalidQueryIndex(s string) int {
	return scan(s, queryMask)
}

func scan(s string, mask uint8) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' {
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return i
			}
			i += 2
			continue
		}
		if charTable[c]&mask == 0 {
			return i
		}
	}
	return -1
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
