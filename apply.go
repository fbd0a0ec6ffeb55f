package texmat

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ApplyResult reports what an Apply call wrote.
type ApplyResult struct {
	Graph     string    `json:"graph" yaml:"graph"`                         // Graph name
	Applied   []Channel `json:"applied,omitempty" yaml:"applied,omitempty"` // Channels written
	Skipped   []Channel `json:"skipped,omitempty" yaml:"skipped,omitempty"` // Channels with no resolvable slot
	Cleared   []Channel `json:"cleared,omitempty" yaml:"cleared,omitempty"` // Unassigned channels whose old bitmap was removed
	Issues    []Issue   `json:"issues,omitempty" yaml:"issues,omitempty"`   // Non-fatal problems
	LeafSkips int       `json:"leafSkips" yaml:"leafSkips"`                 // Leaf writes absorbed (absent, read-only, wrong kind)
}

// Partial reports whether some assigned channels could not be written.
func (r *ApplyResult) Partial() bool {
	return r != nil && len(r.Skipped) > 0
}

// Apply writes assignments into g inside one scoped edit session.
//
// Channels whose slot has no alias on g are skipped and reported; the others
// are still written. Unassigned channels holding a bitmap from an earlier
// apply are cleared and their toggle is turned off. Only a failure to open or commit the session is returned
// as an error, in which case nothing is written. The context is checked once,
// before the session starts.
func Apply(ctx context.Context, g Graph, a *Assignments, opt *ApplyOptions) (*ApplyResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aopt := opt.normalize()
	log := aopt.Logger.With(zap.String("graph", g.Name()))

	ed, err := g.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin edit %q: %w", g.Name(), err)
	}
	committed := false
	defer func() {
		if !committed {
			ed.Discard()
		}
	}()

	res := &ApplyResult{Graph: g.Name()}
	w := &leafWriter{}
	root := ed.Root()

	if aopt.FolderPath != "" {
		w.set(root, LeafDescription, StringValue(aopt.FolderPath))
	}

	t := Transform{}
	if a != nil {
		t = a.Transform
	}

	for _, ch := range Channels {
		sdef := Slots[ch]
		node, alias, found := resolveChild(root, sdef.Aliases)

		s, ok := a.Get(ch)
		if !ok {
			if found && clearSlot(w, root, node, sdef) {
				res.Cleared = append(res.Cleared, ch)
				log.Debug("slot cleared", zap.Stringer("channel", ch))
			}
			continue
		}
		if !found {
			res.Skipped = append(res.Skipped, ch)
			res.Issues = append(res.Issues, Issue{
				Level:   IssueWarning,
				Code:    "missing_slot",
				Message: "graph has no slot for channel",
				Path:    ch.String(),
			})
			log.Warn("slot not found", zap.Stringer("channel", ch))
			continue
		}

		w.set(root, []string{sdef.Toggle}, BoolValue(true))
		w.set(node, LeafBitmap, StringValue(s.File.Path))
		if ch == Roughness {
			w.set(node, LeafInvert, BoolValue(s.Invert))
		} else {
			w.reset(node, LeafInvert)
		}
		w.set(node, LeafScaleX, NumberValue(aopt.Unit.FromCm(t.WidthCm)))
		w.set(node, LeafScaleY, NumberValue(aopt.Unit.FromCm(t.HeightCm)))
		w.set(node, LeafRotation, NumberValue(t.RotationDeg))

		switch ch {
		case Bump:
			applyBump(w, node, s.Detail)
		case Albedo:
			if a.Tint != nil {
				w.set(node, LeafTintToggle, BoolValue(true))
				w.set(node, LeafTintColor, VectorValue(a.Tint.ToVector()))
			} else {
				w.reset(node, LeafTintToggle)
			}
		}

		res.Applied = append(res.Applied, ch)
		log.Debug("slot applied",
			zap.Stringer("channel", ch),
			zap.String("slot", alias),
			zap.String("file", s.File.Path))
	}

	if err := ed.Commit(); err != nil {
		return nil, fmt.Errorf("commit %q: %w", g.Name(), err)
	}
	committed = true

	res.LeafSkips = w.skipped
	if w.skipped > 0 {
		res.Issues = append(res.Issues, Issue{
			Level:   IssueWarning,
			Code:    "leaf_skipped",
			Message: fmt.Sprintf("%d leaf writes skipped", w.skipped),
			Path:    g.Name(),
		})
	}
	log.Info("material applied",
		zap.Int("applied", len(res.Applied)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("cleared", len(res.Cleared)),
		zap.Int("leafSkips", w.skipped))

	return res, nil
}

// applyBump selects the bump representation and fills in a default strength
// when the graph holds none.
func applyBump(w *leafWriter, node Node, detail BumpDetail) {
	if detail == DetailNormal {
		w.set(node, LeafBumpMode, NumberValue(BumpModeNormal))
		if v, _, ok := resolveLeaf(node, LeafBumpNormal); !ok || v.Kind != KindNumber || v.Num <= 0 {
			w.set(node, LeafBumpNormal, NumberValue(NormalStrength))
		}
		return
	}

	w.set(node, LeafBumpMode, NumberValue(BumpModeHeight))
	if v, _, ok := resolveLeaf(node, LeafBumpStrength); !ok || v.Kind != KindNumber || v.Num < MinHeightStrength {
		w.set(node, LeafBumpStrength, NumberValue(MinHeightStrength))
	}
}

// clearSlot empties the bitmap of a slot left over from an earlier apply and
// turns its toggle off. It reports whether there was a bitmap to clear.
func clearSlot(w *leafWriter, root, node Node, sdef SlotSpec) bool {
	v, _, ok := resolveLeaf(node, LeafBitmap)
	if !ok || v.Kind != KindString || v.Str == "" {
		return false
	}

	w.set(node, LeafBitmap, StringValue(""))
	w.reset(root, []string{sdef.Toggle})
	w.reset(node, LeafTintToggle)

	return true
}

// leafWriter writes leaves through alias lists and counts absorbed failures.
type leafWriter struct {
	skipped int
}

// set writes v to the first existing alias of node. Missing, read-only and
// mismatched leaves are counted, never returned.
func (w *leafWriter) set(node Node, aliases []string, v Value) {
	_, name, ok := resolveLeaf(node, aliases)
	if !ok {
		w.skipped++
		return
	}
	if err := node.Set(name, v); err != nil {
		w.skipped++
	}
}

// reset turns a boolean leaf off when it exists and is on. Absent or already
// false leaves are left alone and not counted.
func (w *leafWriter) reset(node Node, aliases []string) {
	v, _, ok := resolveLeaf(node, aliases)
	if !ok || v.Kind != KindBool || !v.Bool {
		return
	}
	w.set(node, aliases, BoolValue(false))
}
