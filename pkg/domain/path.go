package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Path addresses a location inside a Collection.
// Items are string keys (object fields) or non-negative int keys (list indices).
type Path []any

// P is shorthand for building a Path literal.
func P(keys ...any) Path {
	return Path(keys)
}

// ElementPath returns the path of the element at (slide, element).
func ElementPath(slide, element int) Path {
	return Path{slide, element}
}

// PropPath returns the path of a prop field on the element at (slide, element).
func PropPath(slide, element int, field string) Path {
	return Path{slide, element, KeyProps, field}
}

// Append returns a new Path extended with keys. The receiver is never modified.
func (p Path) Append(keys ...any) Path {
	out := make(Path, 0, len(p)+len(keys))
	out = append(out, p...)
	return append(out, keys...)
}

// String renders the path in dotted form, e.g. "0.1.props.score".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, k := range p {
		parts[i] = fmt.Sprint(k)
	}
	return strings.Join(parts, ".")
}

// ParsePath parses a dotted path. All-digit segments become list indices.
// An empty string yields the root path.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	segments := strings.Split(s, ".")
	path := make(Path, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
		}
		if n, err := strconv.Atoi(seg); err == nil && n >= 0 && isDigits(seg) {
			path = append(path, n)
			continue
		}
		path = append(path, seg)
	}
	return path, nil
}

// PathFromJSON converts a decoded JSON array (strings and numbers) into a Path.
// Numbers must be non-negative integers.
func PathFromJSON(raw []any) (Path, error) {
	path := make(Path, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case string:
			path = append(path, v)
		case float64:
			if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
				return nil, fmt.Errorf("%w: key %d is not a list index: %v", ErrInvalidPath, i, v)
			}
			path = append(path, int(v))
		case int:
			if v < 0 {
				return nil, fmt.Errorf("%w: key %d is negative", ErrInvalidPath, i)
			}
			path = append(path, v)
		default:
			return nil, fmt.Errorf("%w: key %d has unsupported type %T", ErrInvalidPath, i, item)
		}
	}
	return path, nil
}

// DecodePath accepts either a dotted string or a JSON array of keys.
func DecodePath(v any) (Path, error) {
	switch p := v.(type) {
	case nil:
		return Path{}, nil
	case string:
		return ParsePath(p)
	case []any:
		return PathFromJSON(p)
	case Path:
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unsupported path encoding %T", ErrInvalidPath, v)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
