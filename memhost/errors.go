package memhost

import "errors"

var (
	// ErrLex indicates a document lexer failure.
	ErrLex = errors.New("lex error")

	// ErrParse indicates a document parser failure.
	ErrParse = errors.New("parse error")

	// ErrExists indicates a graph or pattern name already in use.
	ErrExists = errors.New("name already exists")

	// ErrForeignGraph indicates a graph handle that does not belong to the host.
	ErrForeignGraph = errors.New("graph not owned by host")

	// ErrEmptyName indicates an empty graph or pattern name.
	ErrEmptyName = errors.New("empty name")
)
