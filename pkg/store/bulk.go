package store

import (
	"fmt"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

// UncheckAll forces props.checked to false on every element that has the field.
// All writes land in one new Collection. It returns the number of elements touched.
func (s *Store) UncheckAll() int {
	var writes []tree.Write
	tree.ForEachElement(s.collection, func(el map[string]any, si, ei int) {
		props, _ := el[domain.KeyProps].(map[string]any)
		if _, ok := props[domain.KeyChecked]; !ok {
			return
		}
		writes = append(writes, tree.Write{
			Path:  domain.PropPath(si, ei, domain.KeyChecked),
			Value: false,
		})
	})
	return s.applyBatch(domain.OpUncheckAll, writes)
}

// SetScoreForAll writes score to props.score of every element in one mutation.
// Negative scores are stored as 0. It returns the number of elements touched.
func (s *Store) SetScoreForAll(score float64) int {
	score = clampScore(score)

	var writes []tree.Write
	tree.ForEachElement(s.collection, func(el map[string]any, si, ei int) {
		if props, ok := el[domain.KeyProps]; ok && props != nil {
			if _, isObject := props.(map[string]any); !isObject {
				s.logger.Warn("score not set: element props is not an object",
					"slide", si, "element", ei, "props_type", fmt.Sprintf("%T", props))
				return
			}
		}
		writes = append(writes, tree.Write{
			Path:  domain.PropPath(si, ei, domain.KeyScore),
			Value: score,
		})
	})
	return s.applyBatch(domain.OpScoreForAll, writes)
}
