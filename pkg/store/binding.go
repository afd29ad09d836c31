package store

import (
	"fmt"
	"math"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

// Field is the {value, onChange} pair handed to external input widgets.
type Field struct {
	// Value is the store value at bind time, passed through the read converter.
	Value any

	// OnChange writes a new value. It never fails from the caller's point of view:
	// rejected conversions and paths that do not fit are logged and ignored.
	OnChange func(v any)
}

// ToStoreFunc converts a widget value before it is written.
type ToStoreFunc func(v any) (any, error)

// FromStoreFunc converts a stored value before it is shown.
type FromStoreFunc func(v any) any

type bindConfig struct {
	toStore   ToStoreFunc
	fromStore FromStoreFunc
	def       any
}

// BindOption configures BindField.
type BindOption func(*bindConfig)

// WithToStore sets the write converter.
func WithToStore(fn ToStoreFunc) BindOption {
	return func(c *bindConfig) {
		c.toStore = fn
	}
}

// WithFromStore sets the read converter.
func WithFromStore(fn FromStoreFunc) BindOption {
	return func(c *bindConfig) {
		c.fromStore = fn
	}
}

// WithDefault sets the value read when path does not resolve.
func WithDefault(v any) BindOption {
	return func(c *bindConfig) {
		c.def = v
	}
}

// BindField binds a scalar field at path. Converters default to identity.
func (s *Store) BindField(path domain.Path, opts ...BindOption) Field {
	cfg := bindConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	value := s.GetValue(path, cfg.def)
	if cfg.fromStore != nil {
		value = cfg.fromStore(value)
	}

	return Field{
		Value: value,
		OnChange: func(v any) {
			if cfg.toStore != nil {
				converted, err := cfg.toStore(v)
				if err != nil {
					s.logger.Debug("field change ignored", "path", path.String(), "err", err)
					return
				}
				v = converted
			}
			s.PatchValue(path, v)
		},
	}
}

// BindPercentField binds a percent field: writes are rounded to the nearest
// integer and clamped to [PercentMin, PercentMax].
func (s *Store) BindPercentField(path domain.Path) Field {
	return s.BindField(path, WithToStore(ToPercent))
}

// BindScoreField binds a score field: writes must be numbers and are floored at 0.
func (s *Store) BindScoreField(path domain.Path) Field {
	return s.BindField(path, WithToStore(ToScore))
}

// ToPercent converts v into an int in [PercentMin, PercentMax].
func ToPercent(v any) (any, error) {
	n, ok := tree.Number(v)
	if !ok || math.IsNaN(n) {
		return nil, fmt.Errorf("percent: not a number: %v", v)
	}
	rounded := math.Round(n)
	if rounded < domain.PercentMin {
		rounded = domain.PercentMin
	}
	if rounded > domain.PercentMax {
		rounded = domain.PercentMax
	}
	return int(rounded), nil
}

// ToScore converts v into a non-negative number.
func ToScore(v any) (any, error) {
	n, ok := tree.Number(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("score: not a number: %v", v)
	}
	return clampScore(n), nil
}

func clampScore(n float64) float64 {
	if n < 0 || math.IsNaN(n) {
		return 0
	}
	return n
}
