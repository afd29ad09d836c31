package widgets

import (
	"fmt"
	"strings"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/render"
	"github.com/aretw0/easel/pkg/store"
	"github.com/aretw0/easel/pkg/tree"
)

// PathProp is the props key under which the interpreter passes each node's path.
const PathProp = "$path"

// Type tags handled by the catalog.
const (
	TypeRadioGroup    = "RadioGroup"
	TypeCheckboxGroup = "CheckboxGroup"
	TypeBox           = "Box"
	TypeTypography    = "Typography"
)

// Option is one selectable entry of a RadioGroup or CheckboxGroup.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NewRegistry returns a registry with every catalog widget bound to s.
// A nil store renders answers straight from props.
func NewRegistry(s *store.Store) *render.Registry {
	c := catalog{store: s}
	return render.NewRegistry().
		Register(TypeRadioGroup, c.radioGroup).
		Register(TypeCheckboxGroup, c.checkboxGroup).
		Register(TypeBox, c.box).
		Register(TypeTypography, c.typography)
}

// NewInterpreter returns an interpreter over NewRegistry(s) that injects node paths.
func NewInterpreter(s *store.Store, opts ...render.Option) *render.Interpreter {
	opts = append([]render.Option{render.WithPathProp(PathProp)}, opts...)
	return render.NewInterpreter(NewRegistry(s), opts...)
}

type catalog struct {
	store *store.Store
}

// answers reads the recorded answers of the element rendered with props.
func (c catalog) answers(props map[string]any) any {
	path, ok := props[PathProp].(domain.Path)
	if c.store == nil || !ok {
		return props[domain.KeyAnswers]
	}
	return c.store.BindField(path.Append(domain.KeyProps, domain.KeyAnswers)).Value
}

func (c catalog) radioGroup(props map[string]any, _ []render.Output) render.Output {
	return c.choice(TypeRadioGroup, "(x)", "( )", props)
}

func (c catalog) checkboxGroup(props map[string]any, _ []render.Output) render.Output {
	return c.choice(TypeCheckboxGroup, "[x]", "[ ]", props)
}

func (c catalog) choice(typeName, on, off string, props map[string]any) render.Output {
	picked := store.AnswerSet(c.answers(props))
	options := ParseOptions(props["options"])

	var sb strings.Builder
	if label := stringProp(props, "label"); label != "" {
		fmt.Fprintf(&sb, "**%s**", label)
		if score := scoreSuffix(props); score != "" {
			sb.WriteString(" " + score)
		}
		sb.WriteString("\n\n")
	}
	for _, opt := range options {
		mark := off
		if _, ok := picked[opt.ID]; ok {
			mark = on
		}
		fmt.Fprintf(&sb, "- %s %s\n", mark, opt.Label)
	}

	selected := make([]string, 0, len(picked))
	for _, opt := range options {
		if _, ok := picked[opt.ID]; ok {
			selected = append(selected, opt.ID)
		}
	}

	return render.Output{
		Type: typeName,
		Text: strings.TrimRight(sb.String(), "\n"),
		Props: map[string]any{
			"options":  options,
			"selected": selected,
			"score":    props[domain.KeyScore],
		},
	}
}

func (c catalog) box(props map[string]any, children []render.Output) render.Output {
	out := render.Output{Type: TypeBox, Children: children}
	if pos, ok := props[domain.KeyPosition].(map[string]any); ok {
		out.Props = map[string]any{domain.KeyPosition: pos}
	}
	return out
}

func (c catalog) typography(props map[string]any, children []render.Output) render.Output {
	text := stringProp(props, "text")
	if text == "" {
		parts := make([]string, 0, len(children))
		for _, child := range render.Flatten(children) {
			if child.Type == domain.TextType {
				parts = append(parts, child.Text)
			}
		}
		text = strings.Join(parts, " ")
	}

	switch stringProp(props, "variant") {
	case "h1":
		text = "# " + text
	case "h2":
		text = "## " + text
	case "h3":
		text = "### " + text
	case "caption":
		text = "_" + text + "_"
	}
	return render.Output{Type: TypeTypography, Text: text}
}

// ParseOptions reads an options list. Items are either plain ids or
// {id, label} objects; a missing label falls back to the id.
func ParseOptions(v any) []Option {
	items, _ := v.([]any)
	options := make([]Option, 0, len(items))
	for _, item := range items {
		switch o := item.(type) {
		case map[string]any:
			if o["id"] == nil {
				continue
			}
			id := store.AnswerKey(o["id"])
			label, _ := o["label"].(string)
			if label == "" {
				label = id
			}
			options = append(options, Option{ID: id, Label: label})
		case nil:
		default:
			id := store.AnswerKey(o)
			options = append(options, Option{ID: id, Label: id})
		}
	}
	return options
}

// Markdown joins the text of every node in out into one markdown document,
// one paragraph per node, in render order.
func Markdown(out render.Output) string {
	var blocks []string
	collect(out, &blocks)
	return strings.Join(blocks, "\n\n")
}

func collect(o render.Output, blocks *[]string) {
	if o.Text != "" {
		*blocks = append(*blocks, o.Text)
	}
	// Typography already folded its children into Text.
	if o.Type == TypeTypography {
		return
	}
	for _, c := range o.Children {
		collect(c, blocks)
	}
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func scoreSuffix(props map[string]any) string {
	n, ok := tree.Number(props[domain.KeyScore])
	if !ok || n <= 0 {
		return ""
	}
	if n == 1 {
		return "_(1 pt)_"
	}
	return fmt.Sprintf("_(%g pts)_", n)
}
