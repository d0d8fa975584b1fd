package http1

import (
	"errors"
	"strconv"
)

// Serialization errors - Pre-allocated, compare with errors.Is
var (
	// ErrInvalidVersion indicates the version wire string failed the
	// sanity check: exactly 3 bytes with at least one digit or '.'
	ErrInvalidVersion = errors.New("http1: invalid protocol version")

	// ErrInvalidPath indicates the request path is empty or is not a
	// valid URI path
	ErrInvalidPath = errors.New("http1: invalid request path")

	// ErrInvalidQuery indicates a query fragment is not a valid URI query
	ErrInvalidQuery = errors.New("http1: invalid query fragment")

	// ErrInvalidHeader matches every *InvalidHeaderError
	ErrInvalidHeader = errors.New("http1: invalid header")

	// ErrInvalidHeaderName indicates a header name contains a byte outside
	// [A-Za-z0-9_-]
	ErrInvalidHeaderName = errors.New("http1: invalid header name")

	// ErrInvalidHeaderValue indicates a header value contains CR, LF or NUL
	ErrInvalidHeaderValue = errors.New("http1: invalid header value")

	// ErrIO matches every *WriteError
	ErrIO = errors.New("http1: write failed")
)

// HeaderErrorKind tells which half of a header failed validation.
type HeaderErrorKind uint8

const (
	InvalidName HeaderErrorKind = iota + 1
	InvalidValue
)

func (k HeaderErrorKind) String() string {
	switch k {
	case InvalidName:
		return "InvalidName"
	case InvalidValue:
		return "InvalidValue"
	default:
		return "Unknown"
	}
}

// HeaderError reports the first offending byte of a header. Index is 0-based
// within the name or the value, depending on Kind.
type HeaderError struct {
	Kind  HeaderErrorKind
	Index int
}

func (e *HeaderError) Error() string {
	switch e.Kind {
	case InvalidName:
		return "http1: invalid header name at index " + strconv.Itoa(e.Index)
	case InvalidValue:
		return "http1: invalid header value at index " + strconv.Itoa(e.Index)
	default:
		return "http1: invalid header"
	}
}

func (e *HeaderError) Is(target error) bool {
	switch target {
	case ErrInvalidHeaderName:
		return e.Kind == InvalidName
	case ErrInvalidHeaderValue:
		return e.Kind == InvalidValue
	}
	return false
}

// InvalidHeaderError is returned by the assemblers when a header fails
// validation. Offset is the number of bytes already written to the sink when
// the header was reached; those bytes are not rolled back.
type InvalidHeaderError struct {
	Offset int64
	Err    *HeaderError
}

func (e *InvalidHeaderError) Error() string {
	return e.Err.Error() + " (after " + strconv.FormatInt(e.Offset, 10) + " bytes)"
}

func (e *InvalidHeaderError) Is(target error) bool {
	return target == ErrInvalidHeader
}

func (e *InvalidHeaderError) Unwrap() error {
	return e.Err
}

// WriteError wraps a failure reported by the sink.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return "http1: write failed: " + e.Err.Error()
}

func (e *WriteError) Is(target error) bool {
	return target == ErrIO
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func ioError(err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Err: err}
}
