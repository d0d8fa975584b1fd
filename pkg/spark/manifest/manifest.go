// Package manifest describes HTTP/1.x message heads as JSON and compiles
// them into http1 assemblers.
//
// A manifest looks like:
//
//	{
//	  "kind": "request",
//	  "method": "GET",
//	  "path": "/search",
//	  "query": ["q=go", "page=2"],
//	  "version": "1.1",
//	  "headers": [{"name": "Host", "value": "example.com"}],
//	  "requestId": true
//	}
//
// Responses use "status" instead of method, path and query.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/yourusername/spark/pkg/spark/http1"
)

// Kind selects the message type.
type Kind string

const (
	KindRequest  Kind = "request"
	KindResponse Kind = "response"
)

// Manifest errors
var (
	ErrUnknownKind    = errors.New("manifest: unknown message kind")
	ErrMissingStatus  = errors.New("manifest: response without status")
	ErrRequestOnly    = errors.New("manifest: method, path and query only apply to requests")
	ErrEmptyHeaderKey = errors.New("manifest: header without name")
)

// HeaderField is one header line. Order and duplicates are kept.
type HeaderField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Message is the JSON form of a request or response head.
type Message struct {
	Kind    Kind          `json:"kind"`
	Method  string        `json:"method,omitempty"`
	Path    *string       `json:"path,omitempty"`
	Query   []string      `json:"query,omitempty"`
	Version string        `json:"version,omitempty"`
	Status  int           `json:"status,omitempty"`
	Headers []HeaderField `json:"headers,omitempty"`

	// Unchecked writes the head without validation.
	Unchecked bool `json:"unchecked,omitempty"`

	// RequestID appends an X-Request-Id header holding a fresh UUIDv7.
	RequestID bool `json:"requestId,omitempty"`
}

// Decode parses a single manifest. Unknown fields are rejected.
func Decode(data []byte) (*Message, error) {
	return NewDecoder(bytes.NewReader(data)).Next()
}

// Decoder reads a stream of manifests, such as newline-delimited JSON.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return &Decoder{dec: dec}
}

// Next returns the next manifest, or io.EOF at the end of the stream.
func (d *Decoder) Next() (*Message, error) {
	var m Message
	if err := d.dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// Validate checks the manifest structure. Wire-level validity (path, query,
// headers, version) is left to the serializer.
func (m *Message) Validate() error {
	for _, h := range m.Headers {
		if h.Name == "" {
			return ErrEmptyHeaderKey
		}
	}
	switch m.Kind {
	case KindRequest:
		return nil
	case KindResponse:
		if m.Status == 0 {
			return ErrMissingStatus
		}
		if m.Method != "" || m.Path != nil || len(m.Query) > 0 {
			return ErrRequestOnly
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}
}

// Compile validates m and builds the assembler it describes. The result
// borrows the strings held by m; m must outlive it. Like the assemblers, the
// result writes its headers and query fragments once.
func (m *Message) Compile() (io.WriterTo, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	headers := m.Headers
	if m.RequestID {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate request id: %w", err)
		}
		headers = append(headers[:len(headers):len(headers)], HeaderField{
			Name:  http1.HeaderRequestID,
			Value: id.String(),
		})
	}

	if m.Kind == KindResponse {
		res := http1.NewResponse(http1.StatusCode(m.Status)).Version(version(m.Version))
		for _, h := range headers {
			res.HeaderString(h.Name, h.Value)
		}
		if m.Unchecked {
			return unchecked{res}, nil
		}
		return res, nil
	}

	method := http1.MethodGet
	if m.Method != "" {
		method = http1.ParseMethod([]byte(m.Method))
	}
	req := http1.NewRequest(method).Version(version(m.Version))
	if m.Path != nil {
		req.Path(*m.Path)
	}
	for _, q := range m.Query {
		req.Query(q)
	}
	for _, h := range headers {
		req.HeaderString(h.Name, h.Value)
	}
	if m.Unchecked {
		return unchecked{req}, nil
	}
	return req, nil
}

func version(s string) http1.Version {
	switch s {
	case "":
		return http1.VersionUnspecified
	case "1.0":
		return http1.Version10
	case "1.1":
		return http1.Version11
	default:
		return http1.DynamicVersion(s)
	}
}

type uncheckedWriter interface {
	WriteToUnchecked(w io.Writer) (int64, error)
}

// unchecked routes WriteTo to WriteToUnchecked.
type unchecked struct {
	u uncheckedWriter
}

func (u unchecked) WriteTo(w io.Writer) (int64, error) {
	return u.u.WriteToUnchecked(w)
}
