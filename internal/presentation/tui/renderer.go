package tui

import (
	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is used when the terminal width is unknown.
const DefaultWordWrap = 80

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background. A wrap of 0 uses DefaultWordWrap.
func NewRenderer(wrap int) (func(string) (string, error), error) {
	if wrap <= 0 {
		wrap = DefaultWordWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// NewPlainRenderer renders without colors, for logs and dumb terminals.
func NewPlainRenderer(wrap int) (func(string) (string, error), error) {
	if wrap <= 0 {
		wrap = DefaultWordWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
