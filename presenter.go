package easel

import (
	"fmt"
	"io"
)

// ContentRenderer transforms markdown before it is written, e.g. into ANSI
// for a terminal. It keeps the core free of presentation libraries.
type ContentRenderer func(string) (string, error)

// Presenter writes rendered slides to Output.
type Presenter struct {
	Output   io.Writer
	Renderer ContentRenderer
	// Headless drops slide headers, for piping into other tools.
	Headless bool
}

// NewPresenter creates a Presenter writing to w.
func NewPresenter(w io.Writer) *Presenter {
	return &Presenter{Output: w}
}

// Present writes slide i of e.
func (p *Presenter) Present(e *Editor, i int) error {
	if p.Output == nil {
		return fmt.Errorf("presenter output must be set")
	}

	md := e.Markdown(i)
	if !p.Headless {
		md = fmt.Sprintf("## Slide %d/%d\n\n%s", i+1, e.Store().SlideCount(), md)
	}
	if p.Renderer != nil {
		rendered, err := p.Renderer(md)
		if err != nil {
			return fmt.Errorf("failed to render slide %d: %w", i, err)
		}
		md = rendered
	}

	_, err := fmt.Fprintln(p.Output, md)
	return err
}

// PresentAll writes every slide of e in order.
func (p *Presenter) PresentAll(e *Editor) error {
	for i := 0; i < e.Store().SlideCount(); i++ {
		if i > 0 {
			if _, err := fmt.Fprintln(p.Output); err != nil {
				return err
			}
		}
		if err := p.Present(e, i); err != nil {
			return err
		}
	}
	return nil
}
