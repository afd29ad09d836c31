package tree

import "github.com/aretw0/easel/pkg/domain"

// Value is any node of an untyped tree.
type Value = any

// Lookup walks path from root. It reports false as soon as a key is missing
// or the container at that step cannot be indexed by the key.
func Lookup(root Value, path domain.Path) (Value, bool) {
	node := root
	for _, key := range path {
		switch k := key.(type) {
		case string:
			m, ok := node.(map[string]any)
			if !ok {
				return nil, false
			}
			child, exists := m[k]
			if !exists {
				return nil, false
			}
			node = child
		case int:
			l, ok := node.([]any)
			if !ok || k < 0 || k >= len(l) {
				return nil, false
			}
			node = l[k]
		default:
			return nil, false
		}
	}
	return node, true
}

// Get returns the value at path, or def when the path does not resolve.
func Get(root Value, path domain.Path, def Value) Value {
	if v, ok := Lookup(root, path); ok {
		return v
	}
	return def
}

// Has reports whether path resolves in root.
func Has(root Value, path domain.Path) bool {
	_, ok := Lookup(root, path)
	return ok
}

// Set returns a new tree with value stored at path.
// Missing intermediate containers are created: an object for a string key,
// a list for an int key (padded with nil up to the index).
// When an existing intermediate has the wrong kind, or a key is neither
// string nor non-negative int, Set returns root unchanged and false.
func Set(root Value, path domain.Path, value Value) (Value, bool) {
	return setAt(root, path, value)
}

func setAt(node Value, path domain.Path, value Value) (Value, bool) {
	if len(path) == 0 {
		return value, true
	}

	switch k := path[0].(type) {
	case string:
		var m map[string]any
		switch n := node.(type) {
		case nil:
		case map[string]any:
			m = n
		default:
			return node, false
		}

		updated, ok := setAt(m[k], path[1:], value)
		if !ok {
			return node, false
		}

		out := make(map[string]any, len(m)+1)
		for key, v := range m {
			out[key] = v
		}
		out[k] = updated
		return out, true

	case int:
		if k < 0 {
			return node, false
		}
		var l []any
		switch n := node.(type) {
		case nil:
		case []any:
			l = n
		default:
			return node, false
		}

		var child Value
		if k < len(l) {
			child = l[k]
		}
		updated, ok := setAt(child, path[1:], value)
		if !ok {
			return node, false
		}

		size := len(l)
		if k >= size {
			size = k + 1
		}
		out := make([]any, size)
		copy(out, l)
		out[k] = updated
		return out, true

	default:
		return node, false
	}
}

// Write is one pending assignment for SetMany.
type Write struct {
	Path  domain.Path
	Value Value
}

// SetMany applies writes in order and returns the resulting tree.
// Writes whose path does not fit are skipped; the count of applied writes is returned.
func SetMany(root Value, writes []Write) (Value, int) {
	applied := 0
	for _, w := range writes {
		next, ok := Set(root, w.Path, w.Value)
		if !ok {
			continue
		}
		root = next
		applied++
	}
	return root, applied
}

// Insert returns a new tree where value is inserted into the list at path.
// index is clamped to [0, len]. If path does not resolve to a list,
// root is returned unchanged and false.
func Insert(root Value, path domain.Path, index int, value Value) (Value, bool) {
	target, ok := Lookup(root, path)
	if !ok {
		return root, false
	}
	l, ok := target.([]any)
	if !ok {
		return root, false
	}
	return Set(root, path, insertAt(l, index, value))
}

// InsertOrCreate behaves like Insert, but when nothing exists at path yet it
// creates a one-item list holding value. A non-list value at path is left alone.
func InsertOrCreate(root Value, path domain.Path, index int, value Value) (Value, bool) {
	target, ok := Lookup(root, path)
	if !ok || target == nil {
		return Set(root, path, []any{value})
	}
	l, ok := target.([]any)
	if !ok {
		return root, false
	}
	return Set(root, path, insertAt(l, index, value))
}

// Remove returns a new tree without the list item at index.
// Out-of-range indices and non-list targets leave root unchanged and report false.
func Remove(root Value, path domain.Path, index int) (Value, bool) {
	target, ok := Lookup(root, path)
	if !ok {
		return root, false
	}
	l, ok := target.([]any)
	if !ok || index < 0 || index >= len(l) {
		return root, false
	}

	out := make([]any, 0, len(l)-1)
	out = append(out, l[:index]...)
	out = append(out, l[index+1:]...)
	return Set(root, path, out)
}

func insertAt(l []any, index int, value Value) []any {
	if index < 0 {
		index = 0
	}
	if index > len(l) {
		index = len(l)
	}
	out := make([]any, 0, len(l)+1)
	out = append(out, l[:index]...)
	out = append(out, value)
	return append(out, l[index:]...)
}
