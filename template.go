package texmat

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// templatePrefix matches generic-like template names in any language
// ("Generic", "Générique", "Genérico", ...) once accents are folded.
const templatePrefix = "generi"

// EnsureGraph returns the graph named name, creating it from a base template
// when none exists. Names compare case-insensitively.
//
// The template is the first graph whose folded name starts with "generi",
// else the first graph exposing a diffuse slot, else the first graph. A host
// without any graph yields ErrNoTemplate.
func EnsureGraph(h Host, name string) (g Graph, created bool, err error) {
	if h == nil {
		return nil, false, ErrNilHost
	}

	graphs := h.Graphs()
	for _, g := range graphs {
		if strings.EqualFold(g.Name(), name) {
			return g, false, nil
		}
	}

	base := PickTemplate(graphs)
	if base == nil {
		return nil, false, fmt.Errorf("create %q: %w", name, ErrNoTemplate)
	}

	g, err = h.Duplicate(base, name)
	if err != nil {
		return nil, false, fmt.Errorf("duplicate %q as %q: %w", base.Name(), name, err)
	}

	return g, true, nil
}

// PickTemplate chooses the base template among graphs, nil when empty.
func PickTemplate(graphs []Graph) Graph {
	for _, g := range graphs {
		if strings.HasPrefix(FoldName(g.Name()), templatePrefix) {
			return g
		}
	}
	for _, g := range graphs {
		if _, ok := g.Root().Child(templateProbe); ok {
			return g
		}
	}
	if len(graphs) > 0 {
		return graphs[0]
	}

	return nil
}

// FoldName lower-cases s and strips combining accents.
func FoldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}

	return out
}
