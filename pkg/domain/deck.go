package domain

// Deck is an authored Collection together with its descriptive metadata.
type Deck struct {
	// Title is a human readable name. Optional.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Slides is the Collection: a list of slides, each a list of elements.
	Slides []any `json:"slides" yaml:"slides"`
}

// Collection returns the slides as a Collection value.
func (d *Deck) Collection() any {
	if d == nil || d.Slides == nil {
		return []any{}
	}
	return d.Slides
}
