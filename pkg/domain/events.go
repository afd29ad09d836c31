package domain

// Op names the mutation that produced a Change.
type Op string

const (
	OpPatch        Op = "patch"
	OpBatch        Op = "batch"
	OpInsert       Op = "insert"
	OpRemove       Op = "remove"
	OpUncheckAll   Op = "uncheck_all"
	OpScoreForAll  Op = "score_for_all"
	OpReplace      Op = "replace"
	OpSlideAdded   Op = "slide_added"
	OpSlideRemoved Op = "slide_removed"
)

// Change describes one accepted mutation of a Collection.
type Change struct {
	Version uint64 `json:"version"`
	Op      Op     `json:"op"`
	Paths   []Path `json:"paths,omitempty"`
}

// Hooks defines callbacks for editor observability.
// Every field is optional.
type Hooks struct {
	// OnChange fires after an accepted mutation.
	OnChange func(Change)

	// OnRejected fires when a write was a no-op because its path did not fit the tree.
	OnRejected func(op Op, path Path)

	// OnMissingRenderer fires when the interpreter meets a type with no renderer.
	OnMissingRenderer func(typeName string)
}
