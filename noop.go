package texmat

import "math"

// transformTolerance absorbs unit round trips when comparing transforms.
const transformTolerance = 1e-6

// IsNoOp reports whether writing proposed paths into g would leave every
// channel bitmap unchanged. Every channel with a slot on g is compared; a
// channel missing from proposed and unassigned on g counts as equal. Channels
// without a slot are ignored since Apply cannot write them.
func IsNoOp(g Graph, proposed map[Channel]string) bool {
	if g == nil {
		return false
	}

	root := g.Root()
	for _, ch := range Channels {
		node, _, ok := resolveChild(root, Slots[ch].Aliases)
		if !ok {
			continue
		}
		live := ""
		if v, _, ok := resolveLeaf(node, LeafBitmap); ok && v.Kind == KindString {
			live = v.Str
		}
		if !SamePath(proposed[ch], live) {
			return false
		}
	}

	return true
}

// IsCurrent reports whether applying a to g would change nothing a reader can
// see: bitmaps as in IsNoOp, plus the transform and the albedo tint.
// A nil a never matches.
func IsCurrent(g Graph, a *Assignments, opt *ReadOptions) bool {
	if a == nil || !IsNoOp(g, a.Paths()) {
		return false
	}

	rb, err := Read(g, opt)
	if err != nil {
		return false
	}
	if len(rb.Maps) > 0 && !sameTransform(rb.Transform, a.Transform) {
		return false
	}
	if _, ok := rb.Maps[Albedo]; ok {
		switch {
		case rb.Tint == nil && a.Tint == nil:
		case rb.Tint == nil || a.Tint == nil || *rb.Tint != *a.Tint:
			return false
		}
	}

	return true
}

func sameTransform(x, y Transform) bool {
	return math.Abs(x.WidthCm-y.WidthCm) <= transformTolerance &&
		math.Abs(x.HeightCm-y.HeightCm) <= transformTolerance &&
		math.Abs(x.RotationDeg-y.RotationDeg) <= transformTolerance
}
