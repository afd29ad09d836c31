package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/cli"
	"github.com/aretw0/easel/internal/presentation/tui"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	slide    int
	plain    bool
	headless bool
	watch    bool
}

func newRenderCmd(a *app) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <deck>",
		Short: "Render a deck as markdown",
		Long: `Loads a deck (a YAML/JSON file or a directory with one document per slide)
and prints its slides. Output is styled with glamour when stdout is a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.watch {
				return a.watchRender(cmd, args[0], opts)
			}
			e, err := easel.Open(cmd.Context(), args[0], easel.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return presentEditor(out, e, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.slide, "slide", "s", -1, "Render only this slide (0-based)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print raw markdown even on a terminal")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Omit slide headers")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-render whenever the deck changes")
	return cmd
}

func presentEditor(out io.Writer, e *easel.Editor, opts renderOptions) error {
	p := easel.NewPresenter(out)
	p.Headless = opts.headless

	if f, ok := out.(*os.File); ok && !opts.plain && tui.IsTerminal(f) {
		renderer, err := tui.NewRenderer(tui.Width(f))
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		p.Renderer = renderer
	}

	if opts.slide < 0 {
		return p.PresentAll(e)
	}
	if n := e.Store().SlideCount(); opts.slide >= n {
		return fmt.Errorf("slide %d out of range (deck has %d slides)", opts.slide, n)
	}
	return p.Present(e, opts.slide)
}

func (a *app) watchRender(cmd *cobra.Command, path string, opts renderOptions) error {
	loader, err := easel.LoaderFor(path)
	if err != nil {
		return err
	}
	watchable, ok := loader.(cli.WatchableLoader)
	if !ok {
		return fmt.Errorf("%s cannot be watched", path)
	}

	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	out := cmd.OutOrStdout()
	return cli.Watch(ctx, watchable, a.logger, func(d *domain.Deck) error {
		e := easel.New(d.Collection(), easel.WithLogger(a.logger), easel.WithName(d.Title))
		if err := presentEditor(out, e, opts); err != nil {
			a.logger.Error("render failed", "err", err)
		}
		return nil
	})
}
