package http1

import (
	"io"
	"iter"
)

// Response accumulates the head of an HTTP/1.x response: status line, headers
// and the blank line that ends them. Like Request, it borrows everything and
// drains its headers when written.
//
// As with Request, a Response declared as a local variable (see Reset) stays
// on the stack; NewResponse may cost one allocation.
//
// A Response is not safe for concurrent use.
type Response struct {
	code    StatusCode
	version Version
	headers chain[Header]
}

// NewResponse starts a response with no headers and an unspecified version.
func NewResponse(code StatusCode) *Response {
	return &Response{code: code}
}

// Reset discards everything r holds and starts it over as NewResponse(code)
// would.
func (r *Response) Reset(code StatusCode) *Response {
	*r = Response{code: code}
	return r
}

// StatusCode returns the response status code.
func (r *Response) StatusCode() StatusCode { return r.code }

// Version sets the protocol version, replacing any earlier one.
func (r *Response) Version(v Version) *Response {
	r.version = v
	return r
}

// V10 sets the version to HTTP/1.0.
func (r *Response) V10() *Response { return r.Version(Version10) }

// V11 sets the version to HTTP/1.1.
func (r *Response) V11() *Response { return r.Version(Version11) }

// Header appends one header. Duplicate names are kept and written in order.
func (r *Response) Header(name string, value []byte) *Response {
	r.headers.add(Header{Name: name, Value: value})
	return r
}

// HeaderString is Header for a string value. The value is not copied.
func (r *Response) HeaderString(name, value string) *Response {
	return r.Header(name, stringToBytes(value))
}

// Headers appends a whole sequence of headers, walked once when the response
// is written.
func (r *Response) Headers(seq iter.Seq[Header]) *Response {
	r.headers.addSeq(seq)
	return r
}

// WriteTo validates and writes the status line, headers and the terminating
// blank line to w. It implements io.WriterTo.
//
// The reason phrase is the canonical one for the code, or empty. Errors are
// ErrInvalidVersion, an *InvalidHeaderError or a *WriteError; bytes written
// before a failure are not rolled back.
//
// Allocation behavior: 0 allocs/op for a stack-held Response with at most 32
// single headers, when w does not allocate
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	version := r.version.String()
	if !validVersion(version) {
		return 0, ErrInvalidVersion
	}
	return r.write(w, version, true)
}

// WriteToUnchecked writes the response exactly like WriteTo without checking
// the version or the headers.
//
// The caller guarantees their validity. Never use it with untrusted headers.
func (r *Response) WriteToUnchecked(w io.Writer) (int64, error) {
	return r.write(w, r.version.String(), false)
}

func (r *Response) write(w io.Writer, version string, checked bool) (int64, error) {
	n, err := writeStatusLine(w, version, r.code)
	if err != nil {
		return n, err
	}

	hn, err := writeHeaders(w, &r.headers, n, checked)
	n += hn
	if err != nil {
		return n, err
	}

	err = writeString(w, crlf, &n)
	return n, err
}

// writeStatusLine writes "HTTP/" VERSION SP CODE SP REASON CRLF. HTTP/1.1 with
// a common code goes out as one pre-compiled string.
func writeStatusLine(w io.Writer, version string, code StatusCode) (int64, error) {
	var n int64
	if version == "1.1" {
		if line, ok := statusLine11(code); ok {
			err := writeString(w, line, &n)
			return n, err
		}
	}

	for _, part := range [...]string{httpSlash, version, " ", code.String(), " ", code.Reason(), crlf} {
		if err := writeString(w, part, &n); err != nil {
			return n, err
		}
	}
	return n, nil
}

// StatusLineLen returns the length of the status line for the given version
// and code, CRLF included.
func StatusLineLen(v Version, code StatusCode) int {
	return len(v.String()) + len(code.String()) + len(code.Reason()) + statusLineOverhead
}
