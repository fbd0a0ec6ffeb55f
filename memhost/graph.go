package memhost

import (
	"sync"

	"github.com/woozymasta/texmat"
)

// Graph is one named material graph of a Host.
type Graph struct {
	host    *Host
	sem     chan struct{} // held by the open edit session
	root    *Node         // committed tree, frozen
	name    string
	pattern string
	mu      sync.RWMutex // guards root, name and pattern
}

func newGraph(h *Host, name string, root *Node) *Graph {
	return &Graph{
		host: h,
		name: name,
		root: root.frozen(),
		sem:  make(chan struct{}, 1),
	}
}

// Name returns the graph name.
func (g *Graph) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.name
}

// Root returns the committed tree. Its nodes reject writes.
func (g *Graph) Root() texmat.Node {
	return g.Tree()
}

// Tree returns the committed tree as a concrete node.
func (g *Graph) Tree() *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.root
}

// PatternName returns the assigned pattern name, empty if none.
func (g *Graph) PatternName() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pattern
}

// Begin opens an edit session on a private copy of the committed tree.
// It waits while another session on g is open.
func (g *Graph) Begin() (texmat.Edit, error) {
	g.sem <- struct{}{}
	return g.open(), nil
}

// TryBegin is Begin without waiting; ok is false while a session is open.
func (g *Graph) TryBegin() (ed texmat.Edit, ok bool) {
	select {
	case g.sem <- struct{}{}:
		return g.open(), true
	default:
		return nil, false
	}
}

// open builds a session. Callers hold g.sem.
func (g *Graph) open() *Edit {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := &treeState{}
	return &Edit{g: g, state: st, root: g.root.clone(st), pattern: g.pattern}
}

func (g *Graph) setName(name string) {
	g.mu.Lock()
	g.name = name
	g.mu.Unlock()
}

// Edit is a scoped edit session of one Graph.
type Edit struct {
	g       *Graph
	state   *treeState
	root    *Node // private copy of the committed tree
	pattern string
	mu      sync.Mutex
	closed  bool
}

// Root returns the writable root of the session copy.
func (e *Edit) Root() texmat.Node {
	return e.root
}

// SetPattern assigns a pattern by name; empty clears it. Ignored once closed.
func (e *Edit) SetPattern(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.pattern = name
	}
}

// Commit publishes the session copy and pattern, then closes the session.
// When the host commit hook fails nothing is published.
func (e *Edit) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return texmat.ErrEditClosed
	}
	defer e.close()

	if err := e.g.host.commitCheck(e.g); err != nil {
		return err
	}

	e.g.mu.Lock()
	e.g.root = e.root.frozen()
	e.g.pattern = e.pattern
	e.g.mu.Unlock()

	return nil
}

// Discard drops the session. Safe after Commit.
func (e *Edit) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.close()
	}
}

// close freezes the session copy and releases the graph. Callers hold e.mu.
func (e *Edit) close() {
	e.closed = true
	e.state.closed.Store(true)
	<-e.g.sem
}
