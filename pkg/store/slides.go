package store

import (
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

// SlideCount returns the number of slides.
func (s *Store) SlideCount() int {
	slides, _ := s.collection.([]any)
	return len(slides)
}

// AddSlide inserts an empty slide at index (clamped).
func (s *Store) AddSlide(index int) bool {
	count := s.SlideCount()
	next, ok := tree.Insert(s.collection, domain.Path{}, index, []any{})
	if !ok {
		s.reject(domain.OpSlideAdded, domain.Path{})
		return false
	}
	if count > 0 && clampIndex(index, count) <= s.selectedSlide {
		s.selectedSlide++
	}
	s.commit(next, domain.OpSlideAdded, domain.Path{})
	return true
}

// RemoveSlide removes the slide at index. Out-of-range indices are a no-op.
func (s *Store) RemoveSlide(index int) bool {
	next, ok := tree.Remove(s.collection, domain.Path{}, index)
	if !ok {
		s.reject(domain.OpSlideRemoved, domain.Path{index})
		return false
	}
	switch {
	case index < s.selectedSlide:
		s.selectedSlide--
	case index == s.selectedSlide:
		s.selectedElement = NoElement
	}
	s.commit(next, domain.OpSlideRemoved, domain.Path{index})
	return true
}

// SelectedSlide returns the slide cursor.
func (s *Store) SelectedSlide() int {
	return s.selectedSlide
}

// SelectedElement returns the element cursor, or NoElement.
func (s *Store) SelectedElement() int {
	return s.selectedElement
}

// SelectSlide moves the slide cursor and clears the element cursor.
// Indices outside the Collection are refused.
func (s *Store) SelectSlide(index int) bool {
	if index < 0 || index >= s.SlideCount() {
		return false
	}
	s.selectedSlide = index
	s.selectedElement = NoElement
	return true
}

// SelectElement moves the element cursor inside the selected slide.
// NoElement clears the selection.
func (s *Store) SelectElement(index int) bool {
	if index == NoElement {
		s.selectedElement = NoElement
		return true
	}
	if index < 0 || index >= s.elementCount(s.selectedSlide) {
		return false
	}
	s.selectedElement = index
	return true
}

// CurrentSlide returns the element list of the selected slide (empty when there is none).
func (s *Store) CurrentSlide() tree.Value {
	return s.GetValue(domain.Path{s.selectedSlide}, []any{})
}

// SelectedPath returns the path of the selected element, or false when nothing is selected.
func (s *Store) SelectedPath() (domain.Path, bool) {
	if s.selectedElement == NoElement {
		return nil, false
	}
	return domain.ElementPath(s.selectedSlide, s.selectedElement), true
}

func (s *Store) elementCount(slide int) int {
	elements, _ := tree.Get(s.collection, domain.Path{slide}, nil).([]any)
	return len(elements)
}

// elementInserted keeps the element cursor on the same element after an
// insert into the list at path. count is the list length before the insert.
func (s *Store) elementInserted(path domain.Path, index, count int) {
	if s.selectedElement == NoElement || !s.isSelectedSlide(path) {
		return
	}
	if clampIndex(index, count) <= s.selectedElement {
		s.selectedElement++
	}
}

// elementRemoved keeps the element cursor on the same element after a removal
// from the list at path, and clears it when the selected element is removed.
func (s *Store) elementRemoved(path domain.Path, index int) {
	if s.selectedElement == NoElement || !s.isSelectedSlide(path) {
		return
	}
	switch {
	case index < s.selectedElement:
		s.selectedElement--
	case index == s.selectedElement:
		s.selectedElement = NoElement
	}
}

func (s *Store) isSelectedSlide(path domain.Path) bool {
	if len(path) != 1 {
		return false
	}
	i, ok := path[0].(int)
	return ok && i == s.selectedSlide
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count {
		return count
	}
	return index
}

func (s *Store) clampCursors() {
	count := s.SlideCount()
	if s.selectedSlide >= count {
		s.selectedSlide = count - 1
	}
	if s.selectedSlide < 0 {
		s.selectedSlide = 0
	}
	if s.selectedElement >= s.elementCount(s.selectedSlide) {
		s.selectedElement = NoElement
	}
}
