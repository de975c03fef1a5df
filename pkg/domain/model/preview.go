package model

// Banner is one creative listed on the generated preview page.
type Banner struct {
	Size     string
	Width    int
	Height   int
	Path     string
	Filename string
}

// IsVertical reports whether the banner is taller than it is wide.
func (b Banner) IsVertical() bool {
	return b.Height > b.Width
}
