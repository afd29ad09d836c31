package render

import (
	"fmt"
	"strings"
)

// Output is a rendered node.
// A fragment (the result of rendering a list) has an empty Type and keeps the
// rendered items, in order, in Children.
type Output struct {
	Type     string         `json:"type,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []Output       `json:"children,omitempty"`
}

// IsEmpty reports whether o carries nothing at all.
func (o Output) IsEmpty() bool {
	return o.Type == "" && o.Text == "" && len(o.Props) == 0 && len(o.Children) == 0
}

// IsFragment reports whether o groups siblings without a node of its own.
func (o Output) IsFragment() bool {
	return o.Type == "" && len(o.Children) > 0
}

// Flatten expands fragments into their children, recursively.
func Flatten(outputs []Output) []Output {
	var flat []Output
	for _, o := range outputs {
		if o.IsFragment() && o.Text == "" {
			flat = append(flat, Flatten(o.Children)...)
			continue
		}
		flat = append(flat, o)
	}
	return flat
}

// PlainText concatenates the Text of o and its descendants, one line per node.
func PlainText(o Output) string {
	var sb strings.Builder
	writeText(&sb, o)
	return strings.TrimRight(sb.String(), "\n")
}

func writeText(sb *strings.Builder, o Output) {
	if o.Text != "" {
		fmt.Fprintln(sb, o.Text)
	}
	for _, c := range o.Children {
		writeText(sb, c)
	}
}
