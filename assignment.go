package texmat

// Transform is the physical placement shared by every slot of a material.
type Transform struct {
	WidthCm     float64 `json:"widthCm" yaml:"widthCm"`         // Repeat width in centimeters
	HeightCm    float64 `json:"heightCm" yaml:"heightCm"`       // Repeat height in centimeters
	RotationDeg float64 `json:"rotationDeg" yaml:"rotationDeg"` // Rotation in degrees
}

// SlotAssignment is the authoritative file of one channel.
type SlotAssignment struct {
	File    *TextureFile `json:"file,omitempty" yaml:"file,omitempty"`     // Assigned file, nil when unassigned
	Channel Channel      `json:"channel" yaml:"channel"`                   // Channel of the slot
	Detail  BumpDetail   `json:"detail,omitempty" yaml:"detail,omitempty"` // Bump sub-kind, bump channel only
	Invert  bool         `json:"invert,omitempty" yaml:"invert,omitempty"` // Roughness slot holds glossiness
}

// Assigned reports whether the slot has a file.
func (s SlotAssignment) Assigned() bool {
	return s.File != nil && s.File.Path != ""
}

// Assignments is one pending edit: at most one file per channel, plus the
// transform and optional tint shared by the material.
type Assignments struct {
	Slots     map[Channel]SlotAssignment `json:"slots" yaml:"slots"`                   // Assigned slots by channel
	Tint      *Tint                      `json:"tint,omitempty" yaml:"tint,omitempty"` // Albedo overlay tint
	Transform Transform                  `json:"transform" yaml:"transform"`           // Physical placement
}

// NewAssignments creates an empty assignment set.
func NewAssignments(t Transform) *Assignments {
	return &Assignments{Slots: make(map[Channel]SlotAssignment), Transform: t}
}

// Get returns the assignment of ch if one exists.
func (a *Assignments) Get(ch Channel) (SlotAssignment, bool) {
	if a == nil {
		return SlotAssignment{}, false
	}
	s, ok := a.Slots[ch]
	if !ok || !s.Assigned() {
		return SlotAssignment{}, false
	}

	return s, true
}

// Set assigns path to ch, replacing any previous file. An empty path clears ch.
// Invert is kept only for Roughness and detail only for Bump.
func (a *Assignments) Set(ch Channel, path string, invert bool, detail BumpDetail) {
	if a.Slots == nil {
		a.Slots = make(map[Channel]SlotAssignment)
	}
	if path == "" || ch == Unknown {
		delete(a.Slots, ch)
		return
	}

	f := NewTextureFile(path)
	s := SlotAssignment{Channel: ch, File: &f}
	switch ch {
	case Roughness:
		s.Invert = invert
	case Bump:
		s.Detail = detail
		if s.Detail == DetailNone {
			s.Detail = DetailBump
		}
	}
	a.Slots[ch] = s
}

// Paths returns the assigned path of every channel that has one.
func (a *Assignments) Paths() map[Channel]string {
	out := make(map[Channel]string)
	if a == nil {
		return out
	}
	for ch, s := range a.Slots {
		if s.Assigned() {
			out[ch] = s.File.Path
		}
	}

	return out
}
