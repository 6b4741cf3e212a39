package connections

// Content is what a tile displays: either TextContent or ImageContent.
type Content interface {
	// Label returns a plain-text rendering of the content.
	Label() string
	isContent()
}

// TextContent is a tile showing a word or phrase.
type TextContent struct {
	Text string
}

// Label returns the text.
func (c TextContent) Label() string { return c.Text }

func (TextContent) isContent() {}

// ImageContent is a tile showing a remote image.
type ImageContent struct {
	URL     string
	AltText string // optional
}

// Label returns the alt text, falling back to the URL.
func (c ImageContent) Label() string {
	if c.AltText != "" {
		return c.AltText
	}
	return c.URL
}

func (ImageContent) isContent() {}

// Tile is one of the sixteen board cards.
type Tile struct {
	InitialPosition int // identity; never changes
	CurrentPosition int // slot in the 4x4 grid
	Content         Content
	Selected        bool
	Category        Category
}

// NewTile creates an unselected, unassigned tile at its initial position.
func NewTile(position int, content Content) Tile {
	return Tile{
		InitialPosition: position,
		CurrentPosition: position,
		Content:         content,
	}
}

// HasCategory reports whether the tile has been assigned.
func (t Tile) HasCategory() bool {
	return t.Category != CategoryNone
}

// Label returns the tile's content label, or "" when it has no content.
func (t Tile) Label() string {
	if t.Content == nil {
		return ""
	}
	return t.Content.Label()
}
