package spark

import (
	"io"

	"github.com/yourusername/spark/pkg/spark/http1"
)

// WriteAtomic serializes m into a buffer from the default pool and forwards
// the result to dst in a single Write, only if serialization succeeded.
//
// On a validation error dst is untouched and n is 0. On a dst failure the
// error is an *http1.WriteError and n is what dst reported.
func WriteAtomic(dst io.Writer, m io.WriterTo) (int64, error) {
	return defaultBufferPool.WriteAtomic(dst, m)
}

// WriteAtomic is the package-level WriteAtomic over bp.
//
// Allocation behavior: 0 allocs/op once the pool is warm
func (bp *BufferPool) WriteAtomic(dst io.Writer, m io.WriterTo) (int64, error) {
	buf := bp.Get()
	defer bp.Put(buf)

	if _, err := m.WriteTo(buf); err != nil {
		return 0, err
	}

	n, err := dst.Write(buf.B)
	if err != nil {
		return int64(n), &http1.WriteError{Err: err}
	}
	if n != len(buf.B) {
		return int64(n), &http1.WriteError{Err: io.ErrShortWrite}
	}
	return int64(n), nil
}
