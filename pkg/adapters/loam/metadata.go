package loam

// SlideMetadata is the frontmatter of one slide document.
// Keys follow the YAML/JSON spelling used by authors.
type SlideMetadata struct {
	// Order positions the slide in the deck. Ties are broken by document ID.
	Order int `json:"order" mapstructure:"order"`

	// Title becomes a heading element when set.
	Title string `json:"title" mapstructure:"title"`

	// Elements are the slide's element nodes, in z/reading order.
	Elements []any `json:"elements" mapstructure:"elements"`

	// Hidden slides are skipped by the loader.
	Hidden bool `json:"hidden" mapstructure:"hidden"`
}
