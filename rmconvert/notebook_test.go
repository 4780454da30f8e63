package rmconvert

import (
	"testing"

	"github.com/platinummonkey/rmlines/model"
	"github.com/stretchr/testify/assert"
)

func TestPageFilterIncludesHalfOpenRange(t *testing.T) {
	// "1:4" must select ordinal pages 1,2,3 - not 4.
	f := PageFilter{Kind: PageRange, Start: 1, End: 4}
	assert.False(t, f.includes(0))
	assert.True(t, f.includes(1))
	assert.True(t, f.includes(2))
	assert.True(t, f.includes(3))
	assert.False(t, f.includes(4))
}

func TestPageFilterIncludesSingle(t *testing.T) {
	f := PageFilter{Kind: PageSingle, Start: 2}
	assert.False(t, f.includes(1))
	assert.True(t, f.includes(2))
	assert.False(t, f.includes(3))
}

func TestPageFilterIncludesAll(t *testing.T) {
	f := PageFilter{Kind: PageAll}
	assert.True(t, f.includes(0))
	assert.True(t, f.includes(100))
}

func TestSelectPagesHalfOpenRange(t *testing.T) {
	pages := []model.Page{{ID: "0"}, {ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	selected := selectPages(pages, PageFilter{Kind: PageRange, Start: 1, End: 4})
	var ids []string
	for _, p := range selected {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}
