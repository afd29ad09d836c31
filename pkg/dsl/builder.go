package dsl

import (
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
	"github.com/aretw0/easel/pkg/widgets"
)

// Builder manages the deck construction.
type Builder struct {
	title  string
	slides []*SlideBuilder
}

// New creates a new deck builder.
func New(title string) *Builder {
	return &Builder{title: title}
}

// Slide appends a new slide and returns its builder.
func (b *Builder) Slide() *SlideBuilder {
	sb := &SlideBuilder{builder: b}
	b.slides = append(b.slides, sb)
	return sb
}

// Collection compiles the deck into a fresh Collection.
// Builders can keep being used afterwards; earlier results are not affected.
func (b *Builder) Collection() []any {
	slides := make([]any, len(b.slides))
	for i, sb := range b.slides {
		slides[i] = sb.elements()
	}
	out, _ := tree.Normalize(slides).([]any)
	return out
}

// Deck compiles the builder into a domain.Deck.
func (b *Builder) Deck() *domain.Deck {
	return &domain.Deck{Title: b.title, Slides: b.Collection()}
}

// Loader compiles the deck into a memory loader.
func (b *Builder) Loader() *memory.Loader {
	return memory.NewLoader(b.title, b.Collection())
}

// SlideBuilder collects the elements of one slide.
type SlideBuilder struct {
	builder *Builder
	items   []*ElementBuilder
	parent  *ElementBuilder
}

// Slide starts the next slide of the same deck.
func (s *SlideBuilder) Slide() *SlideBuilder {
	return s.builder.Slide()
}

// Add appends an element of any type.
func (s *SlideBuilder) Add(typeName string, props map[string]any) *ElementBuilder {
	if props == nil {
		props = map[string]any{}
	}
	eb := &ElementBuilder{
		slide: s,
		node:  map[string]any{domain.KeyType: typeName, domain.KeyProps: props},
	}
	s.items = append(s.items, eb)
	return eb
}

// Text appends a Typography element with the given variant (h1, h2, h3, caption or body).
func (s *SlideBuilder) Text(variant, text string) *ElementBuilder {
	return s.Add(widgets.TypeTypography, map[string]any{"variant": variant, "text": text})
}

// Heading appends an h1 Typography element.
func (s *SlideBuilder) Heading(text string) *ElementBuilder {
	return s.Text("h1", text)
}

// Radio appends a single-choice question.
func (s *SlideBuilder) Radio(label string, options ...string) *ElementBuilder {
	return s.Add(widgets.TypeRadioGroup, choiceProps(label, options))
}

// Checkbox appends a multiple-choice question.
func (s *SlideBuilder) Checkbox(label string, options ...string) *ElementBuilder {
	return s.Add(widgets.TypeCheckboxGroup, choiceProps(label, options))
}

// Box appends a positioned container. Elements added through the returned
// slide builder become its children until End is called.
func (s *SlideBuilder) Box(x, y float64) *SlideBuilder {
	box := s.Add(widgets.TypeBox, map[string]any{
		domain.KeyPosition: map[string]any{"x": x, "y": y},
	})
	box.box = &SlideBuilder{builder: s.builder, parent: box}
	return box.box
}

// End closes a Box and returns the enclosing slide builder.
// On a top-level slide it returns the receiver.
func (s *SlideBuilder) End() *SlideBuilder {
	if s.parent == nil {
		return s
	}
	return s.parent.slide
}

func (s *SlideBuilder) elements() []any {
	out := make([]any, len(s.items))
	for i, eb := range s.items {
		out[i] = eb.build()
	}
	return out
}

func choiceProps(label string, options []string) map[string]any {
	opts := make([]any, len(options))
	for i, o := range options {
		opts[i] = o
	}
	return map[string]any{"label": label, "options": opts}
}
