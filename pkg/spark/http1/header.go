package http1

import (
	"io"
	"iter"
)

// Header is a borrowed name/value pair. Neither half is copied; both must stay
// unchanged until the message that holds them has been written.
type Header struct {
	Name  string
	Value []byte
}

// headerNameTable marks the bytes allowed in a header name. This is narrower
// than the RFC 9110 token grammar: only ASCII letters, digits, '-' and '_'.
var headerNameTable = func() (t [256]bool) {
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}
	t['-'] = true
	t['_'] = true
	return t
}()

// ValidateHeader checks h against the header wire grammar. The name is checked
// before the value; the first offending byte is reported. An empty name or
// value has no offending byte and passes.
//
// Allocation behavior: 0 allocs/op for valid headers
func ValidateHeader(h Header) error {
	for i := 0; i < len(h.Name); i++ {
		if !headerNameTable[h.Name[i]] {
			return &HeaderError{Kind: InvalidName, Index: i}
		}
	}
	for i, b := range h.Value {
		if b == '\r' || b == '\n' || b == 0 {
			return &HeaderError{Kind: InvalidValue, Index: i}
		}
	}
	return nil
}

// WriteHeader validates h and writes "name: value\r\n" to w. It returns the
// number of bytes w accepted, len(name)+2+len(value)+2 on success. Nothing is
// written when validation fails.
//
// An empty name is not rejected: Header{Value: v} goes out as ": v\r\n".
// Check the name yourself when that line must never reach the wire.
//
// The returned error is a *HeaderError or a *WriteError.
func WriteHeader(w io.Writer, h Header) (int, error) {
	if err := ValidateHeader(h); err != nil {
		return 0, err
	}
	return WriteHeaderUnchecked(w, h)
}

// WriteHeaderUnchecked writes "name: value\r\n" to w without validating h.
// On a sink failure the count still includes the bytes w accepted.
//
// The caller guarantees that the name only holds [A-Za-z0-9_-] and that the
// value holds no CR, LF or NUL. Never pass untrusted input: a stray CRLF here
// lets the input inject headers or a whole message.
func WriteHeaderUnchecked(w io.Writer, h Header) (int, error) {
	var n int64
	if err := writeString(w, h.Name, &n); err != nil {
		return int(n), err
	}
	if err := writeString(w, colonSpace, &n); err != nil {
		return int(n), err
	}
	m, err := w.Write(h.Value)
	n += int64(m)
	if err != nil {
		return int(n), ioError(err)
	}
	err = writeString(w, crlf, &n)
	return int(n), err
}

// writeHeaders drains c through WriteHeader (or WriteHeaderUnchecked when
// checked is false). offset is the number of bytes already written for the
// message; a validation failure is reported relative to it.
func writeHeaders(w io.Writer, c *chain[Header], offset int64, checked bool) (int64, error) {
	var n int64
	for {
		h, seq, ok := c.next()
		if !ok {
			return n, nil
		}
		var m int64
		var err error
		if seq == nil {
			m, err = writeHeaderAt(w, h, offset+n, checked)
		} else {
			m, err = writeHeaderSeq(w, seq, offset+n, checked)
		}
		n += m
		if err != nil {
			return n, err
		}
	}
}

// writeHeaderAt writes one header that starts at message offset off.
func writeHeaderAt(w io.Writer, h Header, off int64, checked bool) (int64, error) {
	if checked {
		if err := ValidateHeader(h); err != nil {
			return 0, &InvalidHeaderError{Offset: off, Err: err.(*HeaderError)}
		}
	}
	m, err := WriteHeaderUnchecked(w, h)
	return int64(m), err
}

// writeHeaderSeq walks a sequence segment. The range body becomes a closure
// that escapes into seq, so single headers must not come through here.
func writeHeaderSeq(w io.Writer, seq iter.Seq[Header], off int64, checked bool) (int64, error) {
	var n int64
	for h := range seq {
		m, err := writeHeaderAt(w, h, off+n, checked)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
