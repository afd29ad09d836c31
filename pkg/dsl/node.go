package dsl

import "github.com/aretw0/easel/pkg/domain"

// ElementBuilder provides a fluent API for configuring an element.
// Setters return the same element; Radio, Text, Box and friends continue on
// the enclosing slide so calls chain.
type ElementBuilder struct {
	slide *SlideBuilder
	node  map[string]any
	box   *SlideBuilder
}

func (e *ElementBuilder) props() map[string]any {
	return e.node[domain.KeyProps].(map[string]any)
}

// Prop sets an arbitrary prop.
func (e *ElementBuilder) Prop(key string, value any) *ElementBuilder {
	e.props()[key] = value
	return e
}

// Score sets props.score.
func (e *ElementBuilder) Score(score float64) *ElementBuilder {
	return e.Prop(domain.KeyScore, score)
}

// Correct sets props.correctAnswers.
func (e *ElementBuilder) Correct(ids ...string) *ElementBuilder {
	return e.Prop(domain.KeyCorrectAnswers, stringsToAny(ids))
}

// Answer sets props.answers. A single id is stored as a scalar.
func (e *ElementBuilder) Answer(ids ...string) *ElementBuilder {
	if len(ids) == 1 {
		return e.Prop(domain.KeyAnswers, ids[0])
	}
	return e.Prop(domain.KeyAnswers, stringsToAny(ids))
}

// Checked sets props.checked.
func (e *ElementBuilder) Checked(checked bool) *ElementBuilder {
	return e.Prop(domain.KeyChecked, checked)
}

// Percent sets props.percent, clamped to [0,99].
func (e *ElementBuilder) Percent(p int) *ElementBuilder {
	p = max(domain.PercentMin, min(domain.PercentMax, p))
	return e.Prop(domain.KeyPercent, p)
}

// Radio appends a single-choice question after this element.
func (e *ElementBuilder) Radio(label string, options ...string) *ElementBuilder {
	return e.slide.Radio(label, options...)
}

// Checkbox appends a multiple-choice question after this element.
func (e *ElementBuilder) Checkbox(label string, options ...string) *ElementBuilder {
	return e.slide.Checkbox(label, options...)
}

// Text appends a Typography element after this element.
func (e *ElementBuilder) Text(variant, text string) *ElementBuilder {
	return e.slide.Text(variant, text)
}

// Heading appends an h1 after this element.
func (e *ElementBuilder) Heading(text string) *ElementBuilder {
	return e.slide.Heading(text)
}

// Box appends a positioned container after this element.
func (e *ElementBuilder) Box(x, y float64) *SlideBuilder {
	return e.slide.Box(x, y)
}

// End closes the Box this element belongs to.
func (e *ElementBuilder) End() *SlideBuilder {
	return e.slide.End()
}

// Slide starts the next slide.
func (e *ElementBuilder) Slide() *SlideBuilder {
	return e.slide.Slide()
}

func (e *ElementBuilder) build() map[string]any {
	out := make(map[string]any, len(e.node))
	for k, v := range e.node {
		out[k] = v
	}
	props := make(map[string]any, len(e.props())+1)
	for k, v := range e.props() {
		props[k] = v
	}
	if e.box != nil && len(e.box.items) > 0 {
		props[domain.KeyChildren] = e.box.elements()
	}
	out[domain.KeyProps] = props
	return out
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
