package memhost

import "github.com/woozymasta/texmat"

// Template leaf defaults.
const (
	DefaultScaleFt      = 1.0
	DefaultBumpDepth    = 0.3
	DefaultNormalScale  = 0.0
	DefaultTemplateName = "Generic"
)

// GenericTemplate builds the tree of a current generic material: one slot per
// channel under its primary name, each with a full bitmap node.
func GenericTemplate(name string) *Node {
	return buildTemplate(name, templateNames{
		slot:        func(s texmat.SlotSpec) string { return s.Aliases[0] },
		bitmap:      texmat.LeafBitmap[0],
		invert:      texmat.LeafInvert[0],
		scaleX:      texmat.LeafScaleX[0],
		scaleY:      texmat.LeafScaleY[0],
		rotation:    texmat.LeafRotation[0],
		tintToggle:  texmat.LeafTintToggle[0],
		tintColor:   texmat.LeafTintColor[0],
		bumpMode:    texmat.LeafBumpMode[0],
		bumpNormal:  texmat.LeafBumpNormal[0],
		bumpDepth:   texmat.LeafBumpStrength[0],
		description: texmat.LeafDescription[0],
	})
}

// LegacyTemplate builds the tree of an older generic material whose slots and
// leaves use the secondary names.
func LegacyTemplate(name string) *Node {
	return buildTemplate(name, templateNames{
		slot:        func(s texmat.SlotSpec) string { return s.Aliases[1] },
		bitmap:      texmat.LeafBitmap[1],
		invert:      texmat.LeafInvert[1],
		scaleX:      texmat.LeafScaleX[1],
		scaleY:      texmat.LeafScaleY[1],
		rotation:    texmat.LeafRotation[1],
		tintToggle:  texmat.LeafTintToggle[1],
		tintColor:   texmat.LeafTintColor[1],
		bumpMode:    texmat.LeafBumpMode[1],
		bumpNormal:  texmat.LeafBumpNormal[1],
		bumpDepth:   texmat.LeafBumpStrength[1],
		description: texmat.LeafDescription[1],
	})
}

type templateNames struct {
	slot        func(texmat.SlotSpec) string
	bitmap      string
	invert      string
	scaleX      string
	scaleY      string
	rotation    string
	tintToggle  string
	tintColor   string
	bumpMode    string
	bumpNormal  string
	bumpDepth   string
	description string
}

func buildTemplate(name string, tn templateNames) *Node {
	root := NewNode(name)
	root.Define(tn.description, texmat.StringValue(""))

	for _, ch := range texmat.Channels {
		sdef := texmat.Slots[ch]
		root.Define(sdef.Toggle, texmat.BoolValue(false))

		slot := root.AddChild(tn.slot(sdef))
		slot.Define(tn.bitmap, texmat.StringValue("")).
			Define(tn.invert, texmat.BoolValue(false)).
			Define(tn.scaleX, texmat.NumberValue(DefaultScaleFt)).
			Define(tn.scaleY, texmat.NumberValue(DefaultScaleFt)).
			Define(tn.rotation, texmat.NumberValue(0))

		switch ch {
		case texmat.Albedo:
			slot.Define(tn.tintToggle, texmat.BoolValue(false)).
				Define(tn.tintColor, texmat.VectorValue([]float64{1, 1, 1, 1}))
		case texmat.Bump:
			slot.Define(tn.bumpMode, texmat.NumberValue(texmat.BumpModeHeight)).
				Define(tn.bumpNormal, texmat.NumberValue(DefaultNormalScale)).
				Define(tn.bumpDepth, texmat.NumberValue(DefaultBumpDepth))
		}
	}

	return root
}

// NewWithTemplate creates a host holding one generic template graph.
func NewWithTemplate(unit texmat.Unit) *Host {
	h := New(unit)
	_, _ = h.AddGraph(DefaultTemplateName, GenericTemplate(DefaultTemplateName))

	return h
}
