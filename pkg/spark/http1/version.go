package http1

// VersionKind tags the variants of Version.
type VersionKind uint8

const (
	VersionKindUnspecified VersionKind = iota
	VersionKind10
	VersionKind11
	VersionKindDynamic
)

// Version is the protocol version written after "HTTP/". The zero value is
// VersionUnspecified, whose wire string is empty and which every checked
// serialization rejects with ErrInvalidVersion.
type Version struct {
	kind VersionKind
	s    string
}

var (
	VersionUnspecified = Version{}
	Version10          = Version{kind: VersionKind10, s: "1.0"}
	Version11          = Version{kind: VersionKind11, s: "1.1"}
)

// DynamicVersion returns a version whose wire string is chosen at run time.
// It is not checked here; the assemblers check it when the message is written.
func DynamicVersion(s string) Version {
	return Version{kind: VersionKindDynamic, s: s}
}

// String returns the wire string ("1.0", "1.1", "" or the dynamic value).
func (v Version) String() string { return v.s }

func (v Version) Kind() VersionKind { return v.kind }

// validVersion is a coarse sanity check, not a grammar: exactly three bytes,
// at least one of which is an ASCII digit or '.'. It accepts "1.x" and rejects
// "10.0"; the wire behavior depends on exactly this rule.
func validVersion(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; (c >= '0' && c <= '9') || c == '.' {
			return true
		}
	}
	return false
}
