package shell

import (
	"testing"

	"github.com/platinummonkey/rmlines/rmconvert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageFilterAll(t *testing.T) {
	f, err := parsePageFilter("")
	require.NoError(t, err)
	assert.Equal(t, rmconvert.PageFilter{Kind: rmconvert.PageAll}, f)
}

func TestParsePageFilterSingle(t *testing.T) {
	f, err := parsePageFilter("3")
	require.NoError(t, err)
	assert.Equal(t, rmconvert.PageFilter{Kind: rmconvert.PageSingle, Start: 3}, f)
}

func TestParsePageFilterRange(t *testing.T) {
	f, err := parsePageFilter("1:4")
	require.NoError(t, err)
	assert.Equal(t, rmconvert.PageFilter{Kind: rmconvert.PageRange, Start: 1, End: 4}, f)
}

func TestParsePageFilterInvalid(t *testing.T) {
	_, err := parsePageFilter("x:y")
	assert.Error(t, err)

	_, err = parsePageFilter("nope")
	assert.Error(t, err)
}
