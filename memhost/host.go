package memhost

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/woozymasta/texmat"
)

// Host is an in-memory material system holding graphs and grid patterns.
// It is safe for concurrent use.
type Host struct {
	commitHook func(graph string) error
	unit       texmat.Unit
	graphs     []*Graph
	patterns   []texmat.Pattern
	nextID     int
	mu         sync.RWMutex
}

// New creates an empty host using unit for scale leaves and pattern spacing.
// An empty unit means feet.
func New(unit texmat.Unit) *Host {
	if unit == "" {
		unit = texmat.UnitFeet
	}

	return &Host{unit: unit, nextID: 1}
}

// Unit returns the native length unit.
func (h *Host) Unit() texmat.Unit {
	return h.unit
}

// SetCommitHook installs fn to run before every commit. A non-nil error from
// fn aborts the commit. A nil fn removes the hook.
func (h *Host) SetCommitHook(fn func(graph string) error) {
	h.mu.Lock()
	h.commitHook = fn
	h.mu.Unlock()
}

// AddGraph registers a graph named name holding a copy of root.
func (h *Host) AddGraph(name string, root *Node) (*Graph, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if root == nil {
		root = NewNode(name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.indexLocked(name) >= 0 {
		return nil, fmt.Errorf("graph %q: %w", name, ErrExists)
	}

	g := newGraph(h, name, root)
	h.graphs = append(h.graphs, g)

	return g, nil
}

// Graphs lists graphs in registration order.
func (h *Host) Graphs() []texmat.Graph {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]texmat.Graph, len(h.graphs))
	for i, g := range h.graphs {
		out[i] = g
	}

	return out
}

// Lookup finds a graph by exact name.
func (h *Host) Lookup(name string) (texmat.Graph, bool) {
	g := h.Graph(name)
	if g == nil {
		return nil, false
	}

	return g, true
}

// Graph returns the graph named name, nil when absent.
func (h *Host) Graph(name string) *Graph {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, g := range h.graphs {
		if g.Name() == name {
			return g
		}
	}

	return nil
}

// Duplicate copies the committed tree and pattern of src under name.
func (h *Host) Duplicate(src texmat.Graph, name string) (texmat.Graph, error) {
	sg, err := h.own(src)
	if err != nil {
		return nil, err
	}

	g, err := h.AddGraph(name, sg.Tree())
	if err != nil {
		return nil, err
	}
	pattern := sg.PatternName()
	g.mu.Lock()
	g.pattern = pattern
	g.mu.Unlock()

	return g, nil
}

// Rename changes the name of g. Names are unique case-insensitively.
func (h *Host) Rename(g texmat.Graph, name string) error {
	mg, err := h.own(g)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if i := h.indexLocked(name); i >= 0 && h.graphs[i] != mg {
		return fmt.Errorf("graph %q: %w", name, ErrExists)
	}
	mg.setName(name)

	return nil
}

// Patterns lists pattern definitions in registration order.
func (h *Host) Patterns() []texmat.Pattern {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]texmat.Pattern, len(h.patterns))
	for i, p := range h.patterns {
		out[i] = clonePattern(p)
	}

	return out
}

// CreatePattern registers def and assigns it the next identifier.
func (h *Host) CreatePattern(def texmat.PatternDef) (texmat.Pattern, error) {
	if strings.TrimSpace(def.Name) == "" {
		return texmat.Pattern{}, ErrEmptyName
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addPatternLocked(texmat.Pattern{PatternDef: def, ID: h.nextID})
}

// addPatternLocked stores p, keeping nextID above every known identifier.
func (h *Host) addPatternLocked(p texmat.Pattern) (texmat.Pattern, error) {
	for _, q := range h.patterns {
		if strings.EqualFold(q.Name, p.Name) {
			return texmat.Pattern{}, fmt.Errorf("pattern %q: %w", p.Name, ErrExists)
		}
	}

	p = clonePattern(p)
	h.patterns = append(h.patterns, p)
	if p.ID >= h.nextID {
		h.nextID = p.ID + 1
	}

	return clonePattern(p), nil
}

// own returns g as a graph of h.
func (h *Host) own(g texmat.Graph) (*Graph, error) {
	mg, ok := g.(*Graph)
	if !ok || mg == nil || mg.host != h {
		return nil, ErrForeignGraph
	}

	return mg, nil
}

// indexLocked finds a graph by case-insensitive name. Callers hold h.mu.
func (h *Host) indexLocked(name string) int {
	return slices.IndexFunc(h.graphs, func(g *Graph) bool {
		return strings.EqualFold(g.Name(), name)
	})
}

func (h *Host) commitCheck(g *Graph) error {
	h.mu.RLock()
	fn := h.commitHook
	h.mu.RUnlock()
	if fn == nil {
		return nil
	}
	if err := fn(g.Name()); err != nil {
		return fmt.Errorf("commit hook: %w", err)
	}

	return nil
}

func clonePattern(p texmat.Pattern) texmat.Pattern {
	p.Grids = slices.Clone(p.Grids)
	return p
}
