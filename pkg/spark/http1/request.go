package http1

import (
	"io"
	"iter"

	"github.com/yourusername/spark/pkg/spark/uri"
)

// Request accumulates the head of an HTTP/1.x request and writes it to a sink
// in one pass.
//
// Design:
// - Every field is borrowed: path, query fragments, header names and values
//   are referenced, never copied
// - Inline storage for the first 32 headers and 32 query segments
// - Nothing is validated until WriteTo, so configuration order is free-form
// - Headers and query fragments are drained by the write; writing the same
//   Request again emits none of them
//
// The zero value has an empty custom method; call Reset to pick one. A
// Request declared as a local variable stays on the stack, so building and
// writing it need not allocate (see WriteTo). NewRequest and the per-method helpers return
// a pointer, which costs one allocation whenever the compiler cannot keep the
// Request on the stack.
//
// A Request is not safe for concurrent use.
type Request struct {
	method  Method
	path    string
	hasPath bool
	version Version

	queries chain[string]
	headers chain[Header]

	validPath  uri.Validator
	validQuery uri.Validator
}

// NewRequest starts a request with no path, no headers, no query and an
// unspecified version.
func NewRequest(m Method) *Request {
	return &Request{method: m}
}

func Get() *Request     { return NewRequest(MethodGet) }
func Head() *Request    { return NewRequest(MethodHead) }
func Post() *Request    { return NewRequest(MethodPost) }
func Put() *Request     { return NewRequest(MethodPut) }
func Delete() *Request  { return NewRequest(MethodDelete) }
func Connect() *Request { return NewRequest(MethodConnect) }
func Options() *Request { return NewRequest(MethodOptions) }
func Trace() *Request   { return NewRequest(MethodTrace) }
func Patch() *Request   { return NewRequest(MethodPatch) }

// Reset discards everything r holds, including undrained headers and query
// fragments, and starts it over as NewRequest(m) would.
func (r *Request) Reset(m Method) *Request {
	*r = Request{method: m}
	return r
}

// Method returns the request method.
func (r *Request) Method() Method { return r.method }

// Path sets the request path, replacing any earlier one. Without a path the
// request is written for "/".
func (r *Request) Path(path string) *Request {
	r.path = path
	r.hasPath = true
	return r
}

// Version sets the protocol version, replacing any earlier one.
func (r *Request) Version(v Version) *Request {
	r.version = v
	return r
}

// V10 sets the version to HTTP/1.0.
func (r *Request) V10() *Request { return r.Version(Version10) }

// V11 sets the version to HTTP/1.1.
func (r *Request) V11() *Request { return r.Version(Version11) }

// Header appends one header. Duplicate names are kept and written in order.
func (r *Request) Header(name string, value []byte) *Request {
	r.headers.add(Header{Name: name, Value: value})
	return r
}

// HeaderString is Header for a string value. The value is not copied.
func (r *Request) HeaderString(name, value string) *Request {
	return r.Header(name, stringToBytes(value))
}

// Headers appends a whole sequence of headers. seq is walked once, when the
// request is written.
func (r *Request) Headers(seq iter.Seq[Header]) *Request {
	r.headers.addSeq(seq)
	return r
}

// Query appends one query fragment, written after "?" (first) or "&".
// Fragments are written verbatim, never split or decoded.
func (r *Request) Query(q string) *Request {
	r.queries.add(q)
	return r
}

// Queries appends a whole sequence of query fragments. seq is walked once,
// when the request is written.
func (r *Request) Queries(seq iter.Seq[string]) *Request {
	r.queries.addSeq(seq)
	return r
}

// SetPathValidator replaces the path predicate (uri.ValidPath by default).
func (r *Request) SetPathValidator(v uri.Validator) *Request {
	r.validPath = v
	return r
}

// SetQueryValidator replaces the query predicate (uri.ValidQuery by default).
func (r *Request) SetQueryValidator(v uri.Validator) *Request {
	r.validQuery = v
	return r
}

func (r *Request) pathValidator() uri.Validator {
	if r.validPath != nil {
		return r.validPath
	}
	return uri.ValidPath
}

func (r *Request) queryValidator() uri.Validator {
	if r.validQuery != nil {
		return r.validQuery
	}
	return uri.ValidQuery
}

// WriteTo validates and writes the request line, query string, headers and
// the terminating blank line to w. It implements io.WriterTo.
//
// On success n is the exact number of bytes written. The first invalid
// component stops the write; bytes already written stay in w and n counts
// them. Errors are ErrInvalidVersion, ErrInvalidPath, ErrInvalidQuery, an
// *InvalidHeaderError or a *WriteError. Serialize into a buffer first (see
// spark.WriteAtomic) when the sink must never see a partial head.
//
// Allocation behavior: 0 allocs/op for a stack-held Request with at most 32
// single headers and 32 single query fragments, when w does not allocate.
// Every Headers or Queries sequence adds the allocations of walking it.
func (r *Request) WriteTo(w io.Writer) (int64, error) {
	version := r.version.String()
	if !validVersion(version) {
		return 0, ErrInvalidVersion
	}

	path := rootPath
	if r.hasPath {
		if len(r.path) == 0 || !r.pathValidator()(r.path) {
			return 0, ErrInvalidPath
		}
		path = r.path
	}

	return r.write(w, path, version, true)
}

// WriteToUnchecked writes the request exactly like WriteTo but skips every
// check: version format, path, query fragments and headers.
//
// The caller guarantees that all of them are valid. Use it only for heads
// built from constants or from data that has already been validated; with
// untrusted input it allows header and request injection.
func (r *Request) WriteToUnchecked(w io.Writer) (int64, error) {
	path := rootPath
	if r.hasPath {
		path = r.path
	}
	return r.write(w, path, r.version.String(), false)
}

func (r *Request) write(w io.Writer, path, version string, checked bool) (int64, error) {
	var n int64

	// Request line: METHOD SP PATH
	if err := writeString(w, r.method.String(), &n); err != nil {
		return n, err
	}
	if err := writeString(w, " ", &n); err != nil {
		return n, err
	}
	if err := writeString(w, path, &n); err != nil {
		return n, err
	}

	// Query string: "?" frag *("&" frag)
	validQuery := r.queryValidator()
	first := true
	for {
		q, seq, ok := r.queries.next()
		if !ok {
			break
		}
		var err error
		if seq == nil {
			err = writeQuery(w, q, first, checked, validQuery, &n)
			first = false
		} else {
			var m int64
			m, first, err = writeQuerySeq(w, seq, first, checked, validQuery)
			n += m
		}
		if err != nil {
			return n, err
		}
	}

	// SP "HTTP/" VERSION CRLF
	if err := writeString(w, spHTTP, &n); err != nil {
		return n, err
	}
	if err := writeString(w, version, &n); err != nil {
		return n, err
	}
	if err := writeString(w, crlf, &n); err != nil {
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

// writeQuery writes one fragment behind "?" when it is the first one and "&"
// otherwise.
func writeQuery(w io.Writer, q string, first, checked bool, valid uri.Validator, n *int64) error {
	if checked && !valid(q) {
		return ErrInvalidQuery
	}
	sep := queryAmp
	if first {
		sep = querySep
	}
	if err := writeString(w, sep, n); err != nil {
		return err
	}
	return writeString(w, q, n)
}

// writeQuerySeq walks a sequence segment and reports the bytes written and
// whether the next fragment is still the first. The range body escapes into
// seq, so it keeps its own count instead of sharing the caller's.
func writeQuerySeq(w io.Writer, seq iter.Seq[string], first, checked bool, valid uri.Validator) (int64, bool, error) {
	var n int64
	for q := range seq {
		if err := writeQuery(w, q, first, checked, valid, &n); err != nil {
			return n, false, err
		}
		first = false
	}
	return n, first, nil
}

// RequestLineLen returns the length of the request line for the given method,
// path and version, CRLF included.
func RequestLineLen(m Method, path string, v Version) int {
	return len(m.String()) + len(path) + len(v.String()) + requestLineOverhead
}
