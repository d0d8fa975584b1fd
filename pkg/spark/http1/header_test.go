package http1

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		kind    HeaderErrorKind
		index   int
		wantErr bool
	}{
		{"simple", Header{"Content-Type", []byte("text/plain")}, 0, 0, false},
		{"underscore", Header{"X_Custom_1", []byte("v")}, 0, 0, false},
		{"empty value", Header{"X-Empty", nil}, 0, 0, false},
		{"tab in value", Header{"X-Tab", []byte("a\tb")}, 0, 0, false},
		{"utf8 value", Header{"X-Utf8", []byte("héllo")}, 0, 0, false},
		{"space in name", Header{"Bad Name", []byte("v")}, InvalidName, 3, true},
		{"colon in name", Header{"Host:", []byte("v")}, InvalidName, 4, true},
		{"dot in name", Header{"x.y", []byte("v")}, InvalidName, 1, true},
		{"token char in name", Header{"X!", []byte("v")}, InvalidName, 1, true},
		{"leading CR in name", Header{"\rX", []byte("v")}, InvalidName, 0, true},
		{"CR in value", Header{"X", []byte("ab\rc")}, InvalidValue, 2, true},
		{"LF in value", Header{"X", []byte("\nabc")}, InvalidValue, 0, true},
		{"NUL in value", Header{"X", []byte("abc\x00")}, InvalidValue, 3, true},
		{"name checked first", Header{"X Y", []byte("\r\n")}, InvalidName, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeader(tt.header)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateHeader(%q) = %v, want nil", tt.header.Name, err)
				}
				return
			}
			var he *HeaderError
			if !errors.As(err, &he) {
				t.Fatalf("ValidateHeader(%q) = %v, want *HeaderError", tt.header.Name, err)
			}
			if he.Kind != tt.kind || he.Index != tt.index {
				t.Errorf("ValidateHeader(%q) = %v/%d, want %v/%d", tt.header.Name, he.Kind, he.Index, tt.kind, tt.index)
			}
		})
	}
}

func TestHeaderErrorIs(t *testing.T) {
	nameErr := ValidateHeader(Header{"a b", nil})
	if !errors.Is(nameErr, ErrInvalidHeaderName) {
		t.Errorf("errors.Is(%v, ErrInvalidHeaderName) = false", nameErr)
	}
	if errors.Is(nameErr, ErrInvalidHeaderValue) {
		t.Errorf("errors.Is(%v, ErrInvalidHeaderValue) = true", nameErr)
	}

	valueErr := ValidateHeader(Header{"a", []byte("\n")})
	if !errors.Is(valueErr, ErrInvalidHeaderValue) {
		t.Errorf("errors.Is(%v, ErrInvalidHeaderValue) = false", valueErr)
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer

	n, err := WriteHeader(&buf, Header{"Content-Type", []byte("application/json")})
	if err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}

	want := "Content-Type: application/json\r\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if n != len(want) {
		t.Errorf("n = %d, want %d", n, len(want))
	}
}

func TestWriteHeaderInvalidWritesNothing(t *testing.T) {
	var buf bytes.Buffer

	n, err := WriteHeader(&buf, Header{"X-Split", []byte("a\r\nInjected: 1")})
	if !errors.Is(err, ErrInvalidHeaderValue) {
		t.Fatalf("err = %v, want ErrInvalidHeaderValue", err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("wrote %d bytes (%q) for an invalid header", n, buf.String())
	}
}

func TestWriteHeaderUncheckedSkipsValidation(t *testing.T) {
	var buf bytes.Buffer

	n, err := WriteHeaderUnchecked(&buf, Header{"a b", []byte("c")})
	if err != nil {
		t.Fatalf("WriteHeaderUnchecked failed: %v", err)
	}
	if buf.String() != "a b: c\r\n" {
		t.Errorf("output = %q", buf.String())
	}
	if n != 8 {
		t.Errorf("n = %d, want 8", n)
	}
}

func TestWriteHeaderSinkFailure(t *testing.T) {
	w := &limitedWriter{limit: 3}

	_, err := WriteHeader(w, Header{"Name", []byte("value")})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	if !errors.Is(err, errSinkFull) {
		t.Errorf("err = %v does not wrap the sink error", err)
	}
}

// A sink that takes part of a write is still counted byte for byte.
func TestWriteHeaderCountsPartialWrite(t *testing.T) {
	full := "Name: value\r\n"
	for limit := 0; limit < len(full); limit++ {
		w := &shortWriter{limit: limit}
		n, err := WriteHeader(w, Header{"Name", []byte("value")})
		if !errors.Is(err, ErrIO) {
			t.Fatalf("limit %d: err = %v, want ErrIO", limit, err)
		}
		if n != w.buf.Len() || w.buf.String() != full[:limit] {
			t.Errorf("limit %d: n = %d, sink = %q", limit, n, w.buf.String())
		}
	}
}

func TestWriteHeaderEmptyName(t *testing.T) {
	var buf bytes.Buffer

	n, err := WriteHeader(&buf, Header{Value: []byte("v")})
	if err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if buf.String() != ": v\r\n" {
		t.Errorf("output = %q, want %q", buf.String(), ": v\r\n")
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}

	buf.Reset()
	if _, err := Get().V11().Header("", []byte("v")).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if want := "GET / HTTP/1.1\r\n: v\r\n\r\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

const (
	nameAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"
	badNameBytes  = " :;,.!#$%&'*+^`|~\"()/<>=?@[]{}\\\t\r\n\x00\x7f\xff"
	badValueBytes = "\r\n\x00"
)

func randomName(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = nameAlphabet[rng.Intn(len(nameAlphabet))]
	}
	return b
}

func randomValue(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		for {
			c := byte(rng.Intn(256))
			if c != '\r' && c != '\n' && c != 0 {
				b[i] = c
				break
			}
		}
	}
	return b
}

func TestWriteHeaderLengthProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		name := randomName(rng, 1+rng.Intn(40))
		value := randomValue(rng, rng.Intn(200))

		var buf bytes.Buffer
		n, err := WriteHeader(&buf, Header{string(name), value})
		if err != nil {
			t.Fatalf("WriteHeader(%q) failed: %v", name, err)
		}
		want := len(name) + 2 + len(value) + 2
		if n != want || buf.Len() != want {
			t.Fatalf("WriteHeader(%q) n = %d, buffered %d, want %d", name, n, buf.Len(), want)
		}
	}
}

func TestInvalidNameIndexProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		name := randomName(rng, 1+rng.Intn(30))
		at := rng.Intn(len(name))
		name[at] = badNameBytes[rng.Intn(len(badNameBytes))]
		// a second bad byte after the first must not change the index
		if at+1 < len(name) && rng.Intn(2) == 0 {
			name[at+1+rng.Intn(len(name)-at-1)] = ' '
		}

		err := ValidateHeader(Header{string(name), []byte("v")})
		var he *HeaderError
		if !errors.As(err, &he) || he.Kind != InvalidName || he.Index != at {
			t.Fatalf("ValidateHeader(%q) = %v, want InvalidName at %d", name, err, at)
		}
	}
}

func TestInvalidValueIndexProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		value := randomValue(rng, 1+rng.Intn(60))
		at := rng.Intn(len(value))
		value[at] = badValueBytes[rng.Intn(len(badValueBytes))]

		err := ValidateHeader(Header{"X-Value", value})
		var he *HeaderError
		if !errors.As(err, &he) || he.Kind != InvalidValue || he.Index != at {
			t.Fatalf("ValidateHeader(%q) = %v, want InvalidValue at %d", value, err, at)
		}
	}
}
