package rm

import (
	"fmt"
	"os"

	"github.com/platinummonkey/rmlines/model"
)

// tagKind is the low 4 bits of a v6 tag varint.
type tagKind uint8

const (
	tagByte1   tagKind = 0x1
	tagByte4   tagKind = 0x4
	tagByte8   tagKind = 0x8
	tagLength4 tagKind = 0xC
	tagID      tagKind = 0xF
)

// peekTag reads a tag varint without committing to it: returns the parsed
// (index, kind) and the number of bytes the tag occupies, leaving the
// original cursor untouched. Callers that want an optional field (like
// SceneItem's field 6) peek, check, and only then advance the real cursor.
func peekTag(c *cursor) (index uint64, kind tagKind, consumed int, err error) {
	start := c.pos
	tmp := *c
	packed, err := tmp.varuint()
	if err != nil {
		return 0, 0, 0, err
	}
	return packed >> 4, tagKind(packed & 0x0F), tmp.pos - start, nil
}

// streamTag reads one tag varint and asserts it matches
// (expectedIndex, expectedKind), failing with TagMismatch otherwise.
func streamTag(c *cursor, expectedIndex uint64, expectedKind tagKind) error {
	index, kind, _, err := peekTag(c)
	if err != nil {
		return err
	}
	if index != expectedIndex || kind != expectedKind {
		return model.NewParseError(model.TagMismatch, c.pos, nil).
			WithMessagef("expected tag (index=%d kind=0x%x), got (index=%d kind=0x%x)",
				expectedIndex, expectedKind, index, kind)
	}
	// commit: peekTag didn't advance c, so re-read to advance it for real.
	if _, err := c.varuint(); err != nil {
		return err
	}
	return nil
}

// tryStreamTag is streamTag's tolerant sibling: it reports whether the
// next tag matches without consuming anything if it doesn't. Used for
// SceneItem's optional field 6.
func tryStreamTag(c *cursor, expectedIndex uint64, expectedKind tagKind) (bool, error) {
	index, kind, consumed, err := peekTag(c)
	if err != nil {
		return false, err
	}
	if index != expectedIndex || kind != expectedKind {
		return false, nil
	}
	c.pos += consumed
	return true, nil
}

func taggedU32(c *cursor, index uint64) (uint32, error) {
	if err := streamTag(c, index, tagByte4); err != nil {
		return 0, err
	}
	return c.u32()
}

func taggedF32(c *cursor, index uint64) (float32, error) {
	if err := streamTag(c, index, tagByte4); err != nil {
		return 0, err
	}
	return c.f32()
}

func taggedF64(c *cursor, index uint64) (float64, error) {
	if err := streamTag(c, index, tagByte8); err != nil {
		return 0, err
	}
	return c.f64()
}

func taggedID(c *cursor, index uint64) (model.CrdtId, error) {
	if err := streamTag(c, index, tagID); err != nil {
		return model.CrdtId{}, err
	}
	part1, err := c.u8()
	if err != nil {
		return model.CrdtId{}, err
	}
	part2, err := c.varuint()
	if err != nil {
		return model.CrdtId{}, err
	}
	return model.CrdtId{Part1: part1, Part2: part2}, nil
}

// taggedLength4 reads a (index, Length4) tag and its following u32 length,
// returning a sub-cursor scoped to exactly that many bytes.
func taggedLength4(c *cursor, index uint64) (*cursor, uint32, error) {
	if err := streamTag(c, index, tagLength4); err != nil {
		return nil, 0, err
	}
	length, err := c.u32()
	if err != nil {
		return nil, 0, err
	}
	if c.remaining() < int(length) {
		return nil, 0, model.NewParseError(model.Truncated, c.pos, nil).
			WithMessagef("length-delimited segment declares %d bytes but only %d remain", length, c.remaining())
	}
	sub, err := c.sub(int(length))
	return sub, length, err
}

// runFixedLengthSegment is the alignment primitive described in
// SPEC_FULL.md §4.3: it reads exactly `length` bytes from c into a
// sub-cursor, runs inner on that sub-cursor, and always advances c by the
// full `length` regardless of how much inner consumed. If tolerant is
// true, an error from inner is swallowed (logged here as a warning) rather
// than propagated — this is what keeps an unknown or partially-understood
// block from desynchronising the outer stream. If tolerant is false (a
// SceneItem block and its value sub-block), inner's error propagates.
// A length larger than the bytes remaining in c is Truncated.
func runFixedLengthSegment(c *cursor, length uint32, tolerant bool, inner func(*cursor) error) error {
	if c.remaining() < int(length) {
		return model.NewParseError(model.Truncated, c.pos, nil).
			WithMessagef("fixed-length segment declares %d bytes but only %d remain", length, c.remaining())
	}
	sub, err := c.sub(int(length))
	if err != nil {
		return err
	}
	innerErr := inner(sub)
	if innerErr != nil && !tolerant {
		return innerErr
	}
	if innerErr != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring error in tolerant block body: %v\n", innerErr)
	} else if leftover := sub.remaining(); leftover > 0 {
		fmt.Fprintf(os.Stderr, "warning: block body left %d byte(s) unconsumed, skipping\n", leftover)
	}
	// innerErr and any leftover bytes on the tolerant path are intentionally
	// dropped: the segment's byte length was already consumed in full via
	// c.sub above, so the outer cursor stays aligned either way.
	return nil
}
