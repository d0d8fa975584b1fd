package http1

import (
	"io"
	"unsafe"
)

// stringToBytes converts a string to a byte slice without allocation.
// WARNING: The returned slice references the string's backing array and must
// never be modified. io.Writer implementations are not allowed to modify the
// slice they are given, so handing it to a sink is fine.
//
// Allocation behavior: 0 allocs/op
func stringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// writeString writes s to w and adds the bytes w accepted to *n, also when w
// fails part way. Sinks without WriteString get s without a copy.
func writeString(w io.Writer, s string, n *int64) error {
	var m int
	var err error
	if sw, ok := w.(io.StringWriter); ok {
		m, err = sw.WriteString(s)
	} else {
		m, err = w.Write(stringToBytes(s))
	}
	*n += int64(m)
	return ioError(err)
}
