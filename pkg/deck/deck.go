package deck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
	"gopkg.in/yaml.v3"
)

// Parse decodes a deck document. Two shapes are accepted: a bare list of
// slides, or an object with "title" and "slides". JSON is valid input since
// it is a subset of YAML.
func Parse(data []byte) (*domain.Deck, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}

	switch doc := tree.Normalize(raw).(type) {
	case nil:
		return &domain.Deck{Slides: []any{}}, nil
	case []any:
		return &domain.Deck{Slides: doc}, nil
	case map[string]any:
		d := &domain.Deck{Slides: []any{}}
		if title, ok := doc["title"].(string); ok {
			d.Title = title
		}
		switch slides := doc["slides"].(type) {
		case nil:
		case []any:
			d.Slides = slides
		default:
			return nil, fmt.Errorf("deck slides must be a list, got %T", slides)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("deck must be a list or an object, got %T", doc)
	}
}

// LoadFile reads and parses the deck at path.
func LoadFile(path string) (*domain.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDeckNotFound, path)
		}
		return nil, fmt.Errorf("failed to read deck %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Title == "" {
		d.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// FileLoader loads a deck from a single file.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for the deck file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load implements ports.DeckLoader.
func (l *FileLoader) Load(ctx context.Context) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(l.Path)
}

// Marshal encodes d as YAML.
func Marshal(d *domain.Deck) ([]byte, error) {
	return yaml.Marshal(d)
}
