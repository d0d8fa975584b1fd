package manifest

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spark/pkg/spark/http1"
)

func compileAndWrite(t *testing.T, src string) (string, error) {
	t.Helper()
	m, err := Decode([]byte(src))
	require.NoError(t, err)
	wt, err := m.Compile()
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := wt.WriteTo(&buf)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.String(), err
}

// A manifest must produce the same bytes as the equivalent builder chain.
func TestRequestMatchesBuilder(t *testing.T) {
	got, err := compileAndWrite(t, `{
		"kind": "request",
		"method": "PUT",
		"path": "/items/9",
		"query": ["dry=1", "v=2"],
		"version": "1.1",
		"headers": [
			{"name": "Host", "value": "api"},
			{"name": "Accept", "value": "a"},
			{"name": "Accept", "value": "b"}
		]
	}`)
	require.NoError(t, err)

	var want bytes.Buffer
	_, err = http1.Put().Path("/items/9").V11().
		Query("dry=1").Query("v=2").
		HeaderString("Host", "api").
		HeaderString("Accept", "a").
		HeaderString("Accept", "b").
		WriteTo(&want)
	require.NoError(t, err)
	assert.Equal(t, want.String(), got)
}

func TestResponse(t *testing.T) {
	got, err := compileAndWrite(t, `{"kind":"response","status":301,"version":"1.0","headers":[{"name":"Location","value":"/new"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.0 301 Moved Permanently\r\nLocation: /new\r\n\r\n", got)
}

func TestDefaults(t *testing.T) {
	got, err := compileAndWrite(t, `{"kind":"request","version":"1.1"}`)
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.1\r\n\r\n", got)

	got, err = compileAndWrite(t, `{"kind":"request","method":"PURGE","version":"1.1"}`)
	require.NoError(t, err)
	assert.Equal(t, "PURGE / HTTP/1.1\r\n\r\n", got)
}

func TestSerializerErrorsSurface(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no version", `{"kind":"request"}`, http1.ErrInvalidVersion},
		{"bad version", `{"kind":"request","version":"10.0"}`, http1.ErrInvalidVersion},
		{"empty path", `{"kind":"request","version":"1.1","path":""}`, http1.ErrInvalidPath},
		{"bad query", `{"kind":"request","version":"1.1","query":["a b"]}`, http1.ErrInvalidQuery},
		{"bad header", `{"kind":"response","status":200,"version":"1.1","headers":[{"name":"A B","value":"x"}]}`, http1.ErrInvalidHeaderName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileAndWrite(t, tt.src)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnchecked(t *testing.T) {
	got, err := compileAndWrite(t, `{"kind":"request","path":"/a b","unchecked":true,"headers":[{"name":"X Y","value":"1"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "GET /a b HTTP/\r\nX Y: 1\r\n\r\n", got)
}

func TestRequestID(t *testing.T) {
	m, err := Decode([]byte(`{"kind":"request","version":"1.1","requestId":true,"headers":[{"name":"Host","value":"h"}]}`))
	require.NoError(t, err)
	wt, err := m.Compile()
	require.NoError(t, err)
	assert.Len(t, m.Headers, 1)

	var buf bytes.Buffer
	_, err = wt.WriteTo(&buf)
	require.NoError(t, err)

	lines := strings.Split(buf.String(), "\r\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Host: h", lines[1])
	id, ok := strings.CutPrefix(lines[2], http1.HeaderRequestID+": ")
	require.True(t, ok, "line %q", lines[2])
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown kind", `{"kind":"trailer"}`, ErrUnknownKind},
		{"missing kind", `{}`, ErrUnknownKind},
		{"missing status", `{"kind":"response"}`, ErrMissingStatus},
		{"response with path", `{"kind":"response","status":200,"path":"/"}`, ErrRequestOnly},
		{"empty header name", `{"kind":"request","headers":[{"name":"","value":"x"}]}`, ErrEmptyHeaderKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.src))
			require.NoError(t, err)
			_, err = m.Compile()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"request","body":"x"}`))
	assert.Error(t, err)
}

func TestDecoderStream(t *testing.T) {
	src := `{"kind":"request","version":"1.1"}
{"kind":"response","status":204,"version":"1.1"}
`
	dec := NewDecoder(strings.NewReader(src))

	var kinds []Kind
	for {
		m, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		kinds = append(kinds, m.Kind)
	}
	assert.Equal(t, []Kind{KindRequest, KindResponse}, kinds)
}
