package rm

import (
	"github.com/google/uuid"
)

// uuidFromSliceLE validates that raw looks like a little-endian-encoded
// UUID (the original Rust parser's Uuid::from_slice_le). This is a shape
// check only: the result is never retained (SPEC_FULL.md §4.5.2).
func uuidFromSliceLE(raw []byte) (uuid.UUID, error) {
	if len(raw) != 16 {
		return uuid.UUID{}, uuid.FromBytes(raw) // surfaces uuid's own length error
	}
	le := make([]byte, 16)
	// swap the three little-endian fields (time_low, time_mid,
	// time_hi_and_version) into the big-endian layout uuid.FromBytes
	// expects; the trailing clock-seq/node bytes are already byte-order
	// agnostic.
	le[0], le[1], le[2], le[3] = raw[3], raw[2], raw[1], raw[0]
	le[4], le[5] = raw[5], raw[4]
	le[6], le[7] = raw[7], raw[6]
	copy(le[8:], raw[8:])
	return uuid.FromBytes(le)
}
