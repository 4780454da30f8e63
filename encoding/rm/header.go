package rm

import (
	"github.com/platinummonkey/rmlines/model"
)

const (
	headerPrelude = "reMarkable .lines file, version="
	headerPadding = "          " // 10 spaces
	// HeaderLen is the fixed total length of the .lines header: the
	// 32-byte prelude, one version digit, and 10 bytes of padding.
	HeaderLen = len(headerPrelude) + 1 + len(headerPadding)
)

// readHeader parses the 43-byte ASCII header and returns the version
// digit's Version. It does not distinguish "recognised but unsupported"
// (v3) from "parses fine" here — that's the caller's dispatch decision.
func readHeader(c *cursor) (model.Version, error) {
	prelude, err := c.take(len(headerPrelude))
	if err != nil {
		return model.VersionUnknown, model.NewParseError(model.BadHeader, c.pos, err).
			WithMessagef("truncated header")
	}
	if string(prelude) != headerPrelude {
		return model.VersionUnknown, model.NewParseError(model.BadHeader, 0, nil).
			WithMessagef("unexpected header prelude %q", prelude)
	}

	digit, err := c.u8()
	if err != nil {
		return model.VersionUnknown, model.NewParseError(model.BadHeader, c.pos, err).
			WithMessagef("truncated header")
	}

	var version model.Version
	switch digit {
	case '3':
		version = model.V3
	case '5':
		version = model.V5
	case '6':
		version = model.V6
	default:
		return model.VersionUnknown, model.NewParseError(model.BadHeader, c.pos-1, nil).
			WithMessagef("unknown version digit %q", digit)
	}

	padding, err := c.take(len(headerPadding))
	if err != nil {
		return model.VersionUnknown, model.NewParseError(model.BadHeader, c.pos, err).
			WithMessagef("truncated header")
	}
	if string(padding) != headerPadding {
		return model.VersionUnknown, model.NewParseError(model.BadHeader, 0, nil).
			WithMessagef("unexpected header padding %q", padding)
	}

	return version, nil
}
