// Package sink provides io.Writer adapters to serialize message heads into.
package sink

// Counter is a sink that discards its input and counts it. It implements
// io.StringWriter so string writes are not converted.
type Counter struct {
	Bytes  int64 // Total bytes written
	Writes int   // Total Write/WriteString calls
}

func (c *Counter) Write(p []byte) (int, error) {
	c.Writes++
	c.Bytes += int64(len(p))
	return len(p), nil
}

func (c *Counter) WriteString(s string) (int, error) {
	c.Writes++
	c.Bytes += int64(len(s))
	return len(s), nil
}

// Reset zeroes the counters.
func (c *Counter) Reset() {
	*c = Counter{}
}
