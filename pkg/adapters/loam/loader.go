package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to ports.DeckLoader.
// Every document is one slide; the markdown body, when present, is rendered
// as a Typography element after the optional title heading.
type Loader struct {
	Repo  *loam.TypedRepository[SlideMetadata]
	Title string
}

// New creates a Loam deck loader.
func New(repo *loam.TypedRepository[SlideMetadata], title string) *Loader {
	return &Loader{
		Repo:  repo,
		Title: title,
	}
}

// Open initializes a read-only Loam repository at dir.
// Strict mode keeps numbers as json.Number, which the loader normalizes.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[SlideMetadata](repo), filepath.Base(absPath)), nil
}

type slideDoc struct {
	id    string
	order int
	slide []any
}

// Load implements ports.DeckLoader.
func (l *Loader) Load(ctx context.Context) (*domain.Deck, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	slides := make([]slideDoc, 0, len(docs))
	for _, doc := range docs {
		if doc.Data.Hidden {
			continue
		}
		// List only carries metadata; the body comes from Get.
		full, err := l.Repo.Get(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
		}
		slides = append(slides, slideDoc{
			id:    trimExtension(doc.ID),
			order: full.Data.Order,
			slide: buildSlide(full.Data, full.Content),
		})
	}

	sort.SliceStable(slides, func(i, j int) bool {
		if slides[i].order != slides[j].order {
			return slides[i].order < slides[j].order
		}
		return slides[i].id < slides[j].id
	})

	d := &domain.Deck{Title: l.Title, Slides: make([]any, len(slides))}
	for i, s := range slides {
		d.Slides[i] = s.slide
	}
	return d, nil
}

func buildSlide(meta SlideMetadata, content string) []any {
	slide := make([]any, 0, len(meta.Elements)+2)
	if meta.Title != "" {
		slide = append(slide, typography("h1", meta.Title))
	}
	if body := strings.TrimSpace(content); body != "" {
		slide = append(slide, typography("body", body))
	}
	for _, el := range meta.Elements {
		slide = append(slide, tree.Normalize(el))
	}
	return slide
}

func typography(variant, text string) map[string]any {
	return map[string]any{
		domain.KeyType: "Typography",
		domain.KeyProps: map[string]any{
			"variant": variant,
			"text":    text,
		},
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable. Bursts of file events may be coalesced
// into a single signal.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}
