// Package rm implements the binary parser for the reMarkable tablet's
// .lines page format: the v6 tagged/length-delimited stream and the
// simpler fixed-layout v5 stream, dispatched from a shared 43-byte header.
//
// The parser is a cursor over a caller-owned []byte. It is stateless
// between calls and holds no references to its input after Parse returns,
// so distinct buffers may be parsed concurrently on distinct goroutines
// (see notebookfs.ParseNotebook).
package rm

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/platinummonkey/rmlines/model"
)

// cursor wraps a byte slice with a read position, returning
// model.ParseError-typed errors with accurate offsets on underrun.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) unexpectedEnd() error {
	return model.NewParseError(model.UnexpectedEnd, c.pos, nil).
		WithMessagef("need more bytes than the %d remaining", c.remaining())
}

// take returns the next n bytes and advances the cursor, or UnexpectedEnd.
func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, c.unexpectedEnd()
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *cursor) f64() (float64, error) {
	v, err := c.u64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// varuint reads a LEB128-style variable-length unsigned integer: 7 data
// bits per byte, low-to-high, MSB set means "more bytes follow". More than
// 10 bytes (70 data bits) is a VarintOverflow.
func (c *cursor) varuint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; ; i++ {
		if i >= 10 {
			return 0, model.NewParseError(model.VarintOverflow, c.pos, nil)
		}
		b, err := c.u8()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// sub carves out the next n bytes as an independent cursor without
// advancing further than that — used by the fixed-length segment
// combinator (tag.go) so an inner parser's cursor can never read past its
// declared boundary.
func (c *cursor) sub(n int) (*cursor, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	return newCursor(b), nil
}

// bytesReader exposes the remaining bytes as a *bytes.Reader without
// advancing the cursor, for reading without the typed helpers above.
func (c *cursor) bytesReader() *bytes.Reader {
	return bytes.NewReader(c.buf[c.pos:])
}
