package texmat

// MapRef is one channel read back from a graph.
type MapRef struct {
	Path   string     `json:"path" yaml:"path"`                         // Bitmap path
	Detail BumpDetail `json:"detail,omitempty" yaml:"detail,omitempty"` // Bump representation, bump channel only
	Invert bool       `json:"invert,omitempty" yaml:"invert,omitempty"` // Roughness slot holds glossiness
}

// Readback is the flat parameter set reconstructed from a graph.
type Readback struct {
	Maps       map[Channel]MapRef `json:"maps" yaml:"maps"`                                 // Assigned channels
	Tint       *Tint              `json:"tint,omitempty" yaml:"tint,omitempty"`             // Albedo overlay tint
	FolderPath string             `json:"folderPath,omitempty" yaml:"folderPath,omitempty"` // Source folder from the description
	Transform  Transform          `json:"transform" yaml:"transform"`                       // Physical placement
	TilesX     int                `json:"tilesX" yaml:"tilesX"`                             // Tile columns of the assigned pattern
	TilesY     int                `json:"tilesY" yaml:"tilesY"`                             // Tile rows of the assigned pattern
	TileOffset bool               `json:"tileOffset,omitempty" yaml:"tileOffset,omitempty"` // Pattern rows are offset by half a tile
}

// Assignments converts the readback into an assignment set for editing.
func (r *Readback) Assignments() *Assignments {
	out := NewAssignments(r.Transform)
	for ch, m := range r.Maps {
		out.Set(ch, m.Path, m.Invert, m.Detail)
	}
	if r.Tint != nil {
		t := *r.Tint
		out.Tint = &t
	}

	return out
}

// probe is the raw bitmap state of one slot.
type probe struct {
	scaleX, scaleY, rot *float64
	path                string
	invert              bool
}

// Read reconstructs the flat parameter set of g. Absent slots and leaves are
// skipped. Transform values come from the first assigned slot defining them,
// probing albedo, then roughness, then bump.
func Read(g Graph, opt *ReadOptions) (*Readback, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	ropt := opt.normalize()
	root := g.Root()
	rb := &Readback{Maps: make(map[Channel]MapRef), TilesX: 1, TilesY: 1}

	if v, _, ok := resolveLeaf(root, LeafDescription); ok && v.Kind == KindString {
		rb.FolderPath = v.Str
	}

	probes := make(map[Channel]probe, len(Channels))
	for _, ch := range Channels {
		node, _, ok := resolveChild(root, Slots[ch].Aliases)
		if !ok {
			continue
		}

		p := readProbe(node)
		if p.path == "" {
			continue
		}
		probes[ch] = p

		m := MapRef{Path: p.path}
		switch ch {
		case Roughness:
			m.Invert = p.invert
		case Bump:
			m.Detail = DetailHeight
			if v, _, ok := resolveLeaf(node, LeafBumpMode); ok && v.Kind == KindNumber && int(v.Num) == BumpModeNormal {
				m.Detail = DetailNormal
			}
		case Albedo:
			rb.Tint = readTint(node)
		}
		rb.Maps[ch] = m
	}

	order := []Channel{Albedo, Roughness, Bump}
	if v := firstSet(probes, order, func(p probe) *float64 { return p.scaleX }); v != nil {
		rb.Transform.WidthCm = ropt.Unit.ToCm(*v)
	}
	if v := firstSet(probes, order, func(p probe) *float64 { return p.scaleY }); v != nil {
		rb.Transform.HeightCm = ropt.Unit.ToCm(*v)
	}
	if v := firstSet(probes, order, func(p probe) *float64 { return p.rot }); v != nil {
		rb.Transform.RotationDeg = *v
	}

	if tx, ty, offset, ok := ParseTilesName(g.PatternName()); ok {
		rb.TilesX, rb.TilesY, rb.TileOffset = tx, ty, offset
	}

	return rb, nil
}

// readProbe reads the bitmap leaves of a slot node.
func readProbe(node Node) probe {
	var p probe
	if v, _, ok := resolveLeaf(node, LeafBitmap); ok && v.Kind == KindString {
		p.path = v.Str
	}
	if v, _, ok := resolveLeaf(node, LeafInvert); ok && v.Kind == KindBool {
		p.invert = v.Bool
	}
	p.scaleX = readNumber(node, LeafScaleX)
	p.scaleY = readNumber(node, LeafScaleY)
	p.rot = readNumber(node, LeafRotation)

	return p
}

// readTint returns the albedo overlay tint when its toggle is on.
func readTint(node Node) *Tint {
	on, _, ok := resolveLeaf(node, LeafTintToggle)
	if !ok || on.Kind != KindBool || !on.Bool {
		return nil
	}
	c, _, ok := resolveLeaf(node, LeafTintColor)
	if !ok || c.Kind != KindVector {
		return nil
	}
	t, ok := TintFromVector(c.Vec)
	if !ok {
		return nil
	}

	return &t
}

func readNumber(node Node, aliases []string) *float64 {
	v, _, ok := resolveLeaf(node, aliases)
	if !ok || v.Kind != KindNumber {
		return nil
	}
	n := v.Num
	return &n
}

func firstSet(probes map[Channel]probe, order []Channel, get func(probe) *float64) *float64 {
	for _, ch := range order {
		p, ok := probes[ch]
		if !ok {
			continue
		}
		if v := get(p); v != nil {
			return v
		}
	}

	return nil
}
