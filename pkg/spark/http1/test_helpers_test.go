package http1

import (
	"bytes"
	"errors"
	"iter"
)

var errSinkFull = errors.New("sink full")

// limitedWriter accepts up to limit bytes and then fails every write.
type limitedWriter struct {
	buf   bytes.Buffer
	limit int
	calls int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.buf.Len()+len(p) > w.limit {
		return 0, errSinkFull
	}
	return w.buf.Write(p)
}

// shortWriter keeps whatever part of a write still fits under limit and
// fails once it runs out of room.
type shortWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	room := w.limit - w.buf.Len()
	if len(p) <= room {
		return w.buf.Write(p)
	}
	w.buf.Write(p[:room])
	return room, errSinkFull
}

// countingWriter counts Write calls and bytes without storing them.
type countingWriter struct {
	calls int
	n     int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.calls++
	w.n += len(p)
	return len(p), nil
}

func (w *countingWriter) WriteString(s string) (int, error) {
	w.calls++
	w.n += len(s)
	return len(s), nil
}

func headerSeq(hs ...Header) iter.Seq[Header] {
	return func(yield func(Header) bool) {
		for _, h := range hs {
			if !yield(h) {
				return
			}
		}
	}
}

func stringSeq(ss ...string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range ss {
			if !yield(s) {
				return
			}
		}
	}
}
