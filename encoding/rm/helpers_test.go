package rm

import (
	"encoding/binary"
	"math"
)

// bufBuilder is a tiny byte-buffer assembler used only by this package's
// tests to construct synthetic .lines bodies field by field.
type bufBuilder struct {
	buf []byte
}

func (b *bufBuilder) bytes() []byte { return b.buf }

func (b *bufBuilder) raw(p []byte) *bufBuilder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *bufBuilder) u8(v uint8) *bufBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *bufBuilder) u16(v uint16) *bufBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return b.raw(tmp[:])
}

func (b *bufBuilder) u32(v uint32) *bufBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return b.raw(tmp[:])
}

func (b *bufBuilder) f32(v float32) *bufBuilder {
	return b.u32(math.Float32bits(v))
}

func (b *bufBuilder) f64(v float64) *bufBuilder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	return b.raw(tmp[:])
}

func (b *bufBuilder) varuint(v uint64) *bufBuilder {
	for {
		c := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b.buf = append(b.buf, c|0x80)
		} else {
			b.buf = append(b.buf, c)
			break
		}
	}
	return b
}

// tag writes a packed (field_index, kind) varint.
func (b *bufBuilder) tag(index uint64, kind tagKind) *bufBuilder {
	return b.varuint(index<<4 | uint64(kind))
}

func header(version byte) *bufBuilder {
	b := &bufBuilder{}
	b.raw([]byte(headerPrelude))
	b.u8(version)
	b.raw([]byte(headerPadding))
	return b
}
