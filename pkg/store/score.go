package store

import (
	"fmt"
	"math"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

type memo struct {
	valid   bool
	version uint64
	value   float64
}

func (m *memo) get(version uint64, compute func() float64) float64 {
	if m.valid && m.version == version {
		return m.value
	}
	m.value = compute()
	m.version = version
	m.valid = true
	return m.value
}

// TotalScore sums props.score over every element. Absent, negative or
// non-numeric scores count as 0. The result is cached until the next mutation.
func (s *Store) TotalScore() float64 {
	return s.total.get(s.version, func() float64 {
		return TotalScore(s.collection)
	})
}

// CurrentScore sums the score of every gradable element whose recorded answers
// equal its correct answers. The result is cached until the next mutation.
func (s *Store) CurrentScore() float64 {
	return s.current.get(s.version, func() float64 {
		return CurrentScore(s.collection)
	})
}

// TotalScore computes the total score of collection without caching.
func TotalScore(collection tree.Value) float64 {
	total := 0.0
	tree.ForEachElement(collection, func(el map[string]any, _, _ int) {
		total += ElementScore(el)
	})
	return total
}

// CurrentScore computes the current score of collection without caching.
func CurrentScore(collection tree.Value) float64 {
	current := 0.0
	tree.ForEachElement(collection, func(el map[string]any, _, _ int) {
		if IsAnsweredCorrectly(el) {
			current += ElementScore(el)
		}
	})
	return current
}

// ElementScore reads props.score of el, floored at 0.
func ElementScore(el map[string]any) float64 {
	raw := tree.Get(el, domain.Path{domain.KeyProps, domain.KeyScore}, nil)
	n, ok := tree.Number(raw)
	if !ok {
		return 0
	}
	return clampScore(n)
}

// IsAnsweredCorrectly reports whether the recorded answers of el equal its
// correct answers as sets. Elements without correct answers are not gradable.
func IsAnsweredCorrectly(el map[string]any) bool {
	props, _ := el[domain.KeyProps].(map[string]any)
	rawCorrect, ok := props[domain.KeyCorrectAnswers]
	if !ok {
		return false
	}
	correct := AnswerSet(rawCorrect)
	if len(correct) == 0 {
		return false
	}
	given := AnswerSet(props[domain.KeyAnswers])
	if len(given) != len(correct) {
		return false
	}
	for id := range correct {
		if _, ok := given[id]; !ok {
			return false
		}
	}
	return true
}

// AnswerSet turns a recorded answer (scalar, list or {id: bool} map) into a set of ids.
func AnswerSet(v any) map[string]struct{} {
	set := make(map[string]struct{})
	switch a := v.(type) {
	case nil:
	case []any:
		for _, item := range a {
			if item != nil {
				set[AnswerKey(item)] = struct{}{}
			}
		}
	case map[string]any:
		// {"A": true, "B": false} form used by checkbox widgets.
		for id, picked := range a {
			if b, ok := picked.(bool); ok && b {
				set[id] = struct{}{}
			}
		}
	default:
		set[AnswerKey(a)] = struct{}{}
	}
	return set
}

// AnswerKey is the canonical id of an answer value. Integral floats drop their fraction.
func AnswerKey(v any) string {
	if n, ok := v.(float64); ok && n == float64(int64(n)) {
		return fmt.Sprint(int64(n))
	}
	return fmt.Sprint(v)
}

// sanitize normalizes a value about to be written at path and keeps every
// score it carries a non-negative number. A value written straight to a
// props.score field must be numeric; it reports false otherwise.
func sanitize(path domain.Path, value tree.Value) (tree.Value, bool) {
	v := tree.Normalize(value)
	n := len(path)
	if n >= 2 && path[n-2] == domain.KeyProps && path[n-1] == domain.KeyScore {
		score, ok := tree.Number(v)
		if !ok || math.IsNaN(score) {
			return nil, false
		}
		if score < 0 {
			return 0, true
		}
		return v, true
	}
	if n >= 1 && path[n-1] == domain.KeyProps {
		if props, ok := v.(map[string]any); ok {
			floorScore(props)
		}
	}
	floorScores(v)
	return v, true
}

// floorScores walks a freshly normalized value and floors negative element
// scores at 0 in place.
func floorScores(v tree.Value) {
	switch n := v.(type) {
	case map[string]any:
		if props, ok := n[domain.KeyProps].(map[string]any); ok {
			floorScore(props)
		}
		for _, item := range n {
			floorScores(item)
		}
	case []any:
		for _, item := range n {
			floorScores(item)
		}
	}
}

func floorScore(props map[string]any) {
	if score, ok := tree.Number(props[domain.KeyScore]); ok && score < 0 {
		props[domain.KeyScore] = 0
	}
}
