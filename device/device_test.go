package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFramebufferOffset(t *testing.T) {
	maps := `55a1b2c3d000-55a1b2c4d000 r-xp 00000000 00:00 0
7f0012340000-7f0012350000 rw-p 00002000 08:01 1234567    /dev/fb0
7fff00000000-7fff00021000 rw-p 00000000 00:00 0          [stack]
`
	offset, err := parseFramebufferOffset(maps)
	require.NoError(t, err)
	assert.Equal(t, int64(0x7f0012340000), offset)
}

func TestParseFramebufferOffsetMissing(t *testing.T) {
	_, err := parseFramebufferOffset("55a1b2c3d000-55a1b2c4d000 r-xp 00000000 00:00 0\n")
	assert.Error(t, err)
}

func TestParseFramebufferOffsetMalformedAddress(t *testing.T) {
	_, err := parseFramebufferOffset("zz-yy rw-p 00000000 00:00 0 /dev/fb0\n")
	assert.Error(t, err)
}
