package tree

// VisitFunc is called for every element of a collection.
type VisitFunc func(element map[string]any, slideIndex, elementIndex int)

// ForEachElement visits every element of every slide, slide order first and
// element order second. Slides that are not lists and items that are not
// objects are skipped, but they still consume their index so the indices
// passed to visit always address the element inside collection.
func ForEachElement(collection Value, visit VisitFunc) {
	slides, ok := collection.([]any)
	if !ok {
		return
	}
	for si, s := range slides {
		elements, ok := s.([]any)
		if !ok {
			continue
		}
		for ei, e := range elements {
			element, ok := e.(map[string]any)
			if !ok {
				continue
			}
			visit(element, si, ei)
		}
	}
}

// ElementCount returns how many elements ForEachElement would visit.
func ElementCount(collection Value) int {
	n := 0
	ForEachElement(collection, func(map[string]any, int, int) { n++ })
	return n
}
