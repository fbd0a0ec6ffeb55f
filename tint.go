package texmat

import "math"

// Tint is an 8-bit RGB overlay color applied at the albedo node.
type Tint struct {
	R int `json:"r" yaml:"r"` // Red channel component
	G int `json:"g" yaml:"g"` // Green channel component
	B int `json:"b" yaml:"b"` // Blue channel component
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Valid reports whether every component is within 0..255.
func (t Tint) Valid() bool {
	return inByte(t.R) && inByte(t.G) && inByte(t.B)
}

// ToVector converts the tint to an opaque RGBA vector with components in [0,1].
func (t Tint) ToVector() []float64 {
	return []float64{
		Clamp01(float64(t.R) / 255),
		Clamp01(float64(t.G) / 255),
		Clamp01(float64(t.B) / 255),
		1,
	}
}

// TintFromVector converts an RGB(A) vector in [0,1] back to a Tint.
func TintFromVector(v []float64) (Tint, bool) {
	if len(v) < 3 {
		return Tint{}, false
	}

	return Tint{
		R: int(math.Round(Clamp01(v[0]) * 255)),
		G: int(math.Round(Clamp01(v[1]) * 255)),
		B: int(math.Round(Clamp01(v[2]) * 255)),
	}, true
}

func inByte(v int) bool {
	return v >= 0 && v <= 255
}
