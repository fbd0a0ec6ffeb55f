package texmat

import (
	"fmt"
	"strings"
)

// Unit is a host-native length unit.
type Unit string

const (
	// UnitFeet is decimal feet.
	UnitFeet Unit = "ft"
	// UnitMeters is meters.
	UnitMeters Unit = "m"
	// UnitCentimeters is centimeters.
	UnitCentimeters Unit = "cm"
)

// centimeters per one unit.
func (u Unit) cmPerUnit() float64 {
	switch u {
	case UnitMeters:
		return 100
	case UnitCentimeters:
		return 1
	default:
		return 30.48
	}
}

// FromCm converts centimeters to u. Unknown units are treated as feet.
// This is the only place public centimeter sizes meet host units.
func (u Unit) FromCm(cm float64) float64 {
	return cm / u.cmPerUnit()
}

// ToCm converts a length in u to centimeters.
func (u Unit) ToCm(v float64) float64 {
	return v * u.cmPerUnit()
}

// ParseUnit parses a unit name.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ft", "feet", "foot":
		return UnitFeet, nil
	case "m", "meter", "meters", "metre", "metres":
		return UnitMeters, nil
	case "cm", "centimeter", "centimeters":
		return UnitCentimeters, nil
	default:
		return "", fmt.Errorf("unknown length unit %q", s)
	}
}
