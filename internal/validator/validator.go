package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/easel/pkg/deck"
	"github.com/aretw0/easel/pkg/domain"
)

// Problem is one authoring error found in a Collection.
type Problem struct {
	Path    domain.Path
	Message string
}

func (p Problem) String() string {
	if len(p.Path) == 0 {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Check walks every slide and element of collection, nested children
// included, and returns the problems found in document order.
// When types is not empty, element types outside it are reported.
func Check(collection any, types []string) []Problem {
	known := make(map[string]bool, len(types))
	for _, t := range types {
		known[t] = true
	}

	c := checker{known: known}
	slides, ok := collection.([]any)
	if !ok {
		c.add(domain.Path{}, "collection must be a list of slides, got %T", collection)
		return c.problems
	}
	for i, slide := range slides {
		elements, ok := slide.([]any)
		if !ok {
			c.add(domain.P(i), "slide must be a list of elements, got %T", slide)
			continue
		}
		for j, el := range elements {
			c.element(el, domain.ElementPath(i, j))
		}
	}
	return c.problems
}

// ValidateCollection is Check folded into a single error.
func ValidateCollection(collection any, types []string) error {
	problems := Check(collection, types)
	if len(problems) == 0 {
		return nil
	}
	lines := make([]string, len(problems))
	for i, p := range problems {
		lines[i] = p.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(problems), strings.Join(lines, "\n- "))
}

type checker struct {
	known    map[string]bool
	problems []Problem
}

func (c *checker) add(path domain.Path, format string, args ...any) {
	c.problems = append(c.problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) element(node any, path domain.Path) {
	el, err := deck.DecodeElement(node)
	if err != nil {
		c.add(path, "%v", err)
		return
	}

	switch {
	case el.Type == "":
		c.add(path, "missing type")
	case len(c.known) > 0 && !c.known[el.Type]:
		c.add(path, "no renderer for type %q", el.Type)
	}

	if pos := el.Props.Position; pos != nil {
		if pos.X < 0 || pos.X > 1 || pos.Y < 0 || pos.Y > 1 {
			c.add(path, "position (%g, %g) outside [0,1]", pos.X, pos.Y)
		}
	}
	if s := el.Props.Score; s != nil && *s < 0 {
		c.add(path, "negative score %g", *s)
	}
	if p := el.Props.Percent; p != nil && (*p < domain.PercentMin || *p > domain.PercentMax) {
		c.add(path, "percent %g outside [%d,%d]", *p, domain.PercentMin, domain.PercentMax)
	}

	childPath := path.Append(domain.KeyProps, domain.KeyChildren)
	switch children := el.Props.Children.(type) {
	case nil:
	case []any:
		for i, child := range children {
			c.element(child, childPath.Append(i))
		}
	default:
		c.element(children, childPath)
	}
}
