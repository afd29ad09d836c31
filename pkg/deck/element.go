package deck

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Position is the fractional placement of an element on its slide.
type Position struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// Props is the typed view of the element fields the core knows about.
// Everything else lands in Extra.
type Props struct {
	Position       *Position      `mapstructure:"position"`
	Score          *float64       `mapstructure:"score"`
	CorrectAnswers []any          `mapstructure:"correctAnswers"`
	Answers        any            `mapstructure:"answers"`
	Checked        *bool          `mapstructure:"checked"`
	Percent        *float64       `mapstructure:"percent"`
	Children       any            `mapstructure:"children"`
	Extra          map[string]any `mapstructure:",remain"`
}

// Element is the typed view of an element node.
type Element struct {
	Type  string `mapstructure:"type"`
	Props Props  `mapstructure:"props"`
}

// DecodeElement decodes an untyped element into its typed view.
// Numeric strings are accepted for numeric fields.
func DecodeElement(v any) (Element, error) {
	var el Element
	node, ok := v.(map[string]any)
	if !ok {
		return el, fmt.Errorf("element must be an object, got %T", v)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &el,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return el, err
	}
	if err := decoder.Decode(node); err != nil {
		return el, fmt.Errorf("invalid element: %w", err)
	}
	return el, nil
}
