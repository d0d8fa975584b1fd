package http1

import "iter"

// segment is one append to a chain: either a single item or a whole
// caller-supplied sequence that is only walked when the chain is drained.
type segment[T any] struct {
	one  T
	many iter.Seq[T]
}

// chain is the append-only, drain-once sequence behind a builder's headers and
// query fragments. The first MaxInlineSegments appends live inline in the
// builder; later ones spill into overflow.
//
// Draining is destructive: a drained segment is never visited again, so a
// second serialization of the same builder sees an empty chain.
type chain[T any] struct {
	inline   [MaxInlineSegments]segment[T]
	overflow []segment[T]
	n        int // segments appended
	pos      int // segments drained
}

func (c *chain[T]) push(s segment[T]) {
	if c.n < MaxInlineSegments {
		c.inline[c.n] = s
	} else {
		c.overflow = append(c.overflow, s)
	}
	c.n++
}

func (c *chain[T]) add(v T) {
	c.push(segment[T]{one: v})
}

func (c *chain[T]) addSeq(seq iter.Seq[T]) {
	if seq == nil {
		return
	}
	c.push(segment[T]{many: seq})
}

func (c *chain[T]) at(i int) *segment[T] {
	if i < MaxInlineSegments {
		return &c.inline[i]
	}
	return &c.overflow[i-MaxInlineSegments]
}

// remaining reports how many segments have not been drained yet.
func (c *chain[T]) remaining() int {
	return c.n - c.pos
}

// next removes the oldest remaining segment and returns it: either a single
// item, or many != nil for a sequence segment. A segment counts as drained as
// soon as it is returned, so a sequence that fails half way is not resumed by
// a later write.
func (c *chain[T]) next() (one T, many iter.Seq[T], ok bool) {
	if c.pos >= c.n {
		return one, nil, false
	}
	s := c.at(c.pos)
	c.pos++
	one, many = s.one, s.many
	*s = segment[T]{}
	return one, many, true
}
