package texmat

// Node is a named node of a host material graph.
//
// Child and Get never fail: absence is reported through the boolean.
// Set returns ErrNoLeaf, ErrReadOnly or ErrKindMismatch; callers applying a
// batch of writes absorb those per leaf.
type Node interface {
	Child(name string) (Node, bool)
	Get(name string) (Value, bool)
	Set(name string, v Value) error
}

// Graph is one named material graph instance on the host.
type Graph interface {
	// Name returns the graph instance name.
	Name() string
	// Root returns a read view of the committed graph.
	Root() Node
	// PatternName returns the name of the assigned surface pattern, empty if none.
	PatternName() string
	// Begin opens a scoped edit session. Sessions on one graph are exclusive:
	// Begin waits until the previous session is committed or discarded.
	Begin() (Edit, error)
}

// Edit is a scoped edit session. Writes become visible only on Commit.
type Edit interface {
	// Root returns the writable root node of the session.
	Root() Node
	// SetPattern assigns a surface pattern by name; empty clears it.
	SetPattern(name string)
	// Commit publishes all writes atomically and closes the session.
	Commit() error
	// Discard drops all writes and closes the session. Safe after Commit.
	Discard()
}

// Host is the material system that owns graphs and grid patterns.
type Host interface {
	// Unit returns the native length unit of graph scale leaves and pattern spacing.
	Unit() Unit
	// Graphs lists graph instances in a stable order.
	Graphs() []Graph
	// Lookup finds a graph by exact name.
	Lookup(name string) (Graph, bool)
	// Duplicate copies src under a new name.
	Duplicate(src Graph, name string) (Graph, error)
	// Rename changes the name of g.
	Rename(g Graph, name string) error
	// Patterns lists grid pattern definitions.
	Patterns() []Pattern
	// CreatePattern registers a new grid pattern definition.
	CreatePattern(def PatternDef) (Pattern, error)
}

// Grid is one family of parallel pattern lines.
type Grid struct {
	AngleDeg float64 `json:"angle" yaml:"angle"`                     // Line angle in degrees
	Spacing  float64 `json:"spacing" yaml:"spacing"`                 // Distance between lines, native unit
	Shift    float64 `json:"shift,omitempty" yaml:"shift,omitempty"` // Offset along the line, native unit
}

// PatternDef is a named grid pattern definition.
type PatternDef struct {
	Name  string `json:"name" yaml:"name"`                       // Pattern name
	Grids []Grid `json:"grids,omitempty" yaml:"grids,omitempty"` // Line families
}

// Pattern is a registered pattern definition.
type Pattern struct {
	PatternDef `yaml:",inline"`
	ID         int `json:"id" yaml:"id"` // Host-assigned identifier
}

// resolveChild returns the first child of n named by aliases.
func resolveChild(n Node, aliases []string) (Node, string, bool) {
	if n == nil {
		return nil, "", false
	}
	for _, a := range aliases {
		if c, ok := n.Child(a); ok {
			return c, a, true
		}
	}

	return nil, "", false
}

// resolveLeaf returns the first leaf of n named by aliases.
func resolveLeaf(n Node, aliases []string) (Value, string, bool) {
	if n == nil {
		return Value{}, "", false
	}
	for _, a := range aliases {
		if v, ok := n.Get(a); ok {
			return v, a, true
		}
	}

	return Value{}, "", false
}
