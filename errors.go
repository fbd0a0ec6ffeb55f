package texmat

import "errors"

var (
	// ErrNoTemplate indicates the host has no graph that could serve as a base template.
	ErrNoTemplate = errors.New("no base template")

	// ErrNilGraph indicates a nil graph handle was passed to an operation.
	ErrNilGraph = errors.New("nil graph")

	// ErrReadOnly indicates a write to a read-only leaf.
	ErrReadOnly = errors.New("read-only leaf")

	// ErrNoLeaf indicates a leaf that does not exist on the node.
	ErrNoLeaf = errors.New("no such leaf")

	// ErrKindMismatch indicates a write whose value kind differs from the leaf kind.
	ErrKindMismatch = errors.New("value kind mismatch")

	// ErrEditClosed indicates use of an edit session after commit or discard.
	ErrEditClosed = errors.New("edit session closed")

	// ErrNilHost indicates a nil host handle was passed to an operation.
	ErrNilHost = errors.New("nil host")
)
