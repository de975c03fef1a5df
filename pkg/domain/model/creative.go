package model

// Creative is one exported HTML5 banner document plus its sibling raster images.
type Creative struct {
	// Location is the absolute path of the HTML document and identifies the creative.
	Location string `json:"location"`
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	// CompositionBinding is the verbatim source line calling AdobeAn.getComposition.
	CompositionBinding string   `json:"composition_binding"`
	Converted          bool     `json:"converted"`
	Images             []string `json:"images"`
}

// Markup holds the fields pulled out of a raw exported document.
type Markup struct {
	Width              int
	Height             int
	CompositionBinding string
}

// HasImages reports whether compression is needed for this creative.
func (c *Creative) HasImages() bool {
	return len(c.Images) > 0
}

// Clone returns a copy that does not share the Images slice.
func (c Creative) Clone() Creative {
	if c.Images != nil {
		c.Images = append([]string(nil), c.Images...)
	}
	return c
}
