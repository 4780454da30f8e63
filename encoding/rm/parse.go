package rm

import (
	"github.com/platinummonkey/rmlines/model"
)

// Parse decodes a complete .rm file buffer into a model.Page. id is
// injected into the result as-is (the caller, typically notebookfs,
// supplies the page's UUID from the directory listing).
func Parse(id string, data []byte) (*model.Page, error) {
	c := newCursor(data)

	version, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	var page *model.Page
	switch version {
	case model.V5:
		page, err = parsePageV5(c)
	case model.V6:
		page, err = parsePageV6(c)
	case model.V3:
		return nil, model.NewParseError(model.UnsupportedVersion, 0, nil).
			WithMessagef("v3 .lines files are recognised but not decoded")
	default:
		return nil, model.NewParseError(model.BadHeader, 0, nil).
			WithMessagef("unrecognised version")
	}
	if err != nil {
		return nil, err
	}

	page.ID = id
	return page, nil
}
