package texmat

import "fmt"

// ValueKind is the type of a graph leaf value.
type ValueKind int

const (
	// KindString is a string leaf, used for bitmap paths and descriptions.
	KindString ValueKind = iota
	// KindBool is a boolean leaf, used for toggles and invert flags.
	KindBool
	// KindNumber is a float leaf, used for scale, rotation, strength and modes.
	KindNumber
	// KindVector is a float-vector leaf, used for colors.
	KindVector
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a typed graph leaf value.
type Value struct {
	Str  string    // String value
	Vec  []float64 // Vector value
	Kind ValueKind // Value kind
	Num  float64   // Number value
	Bool bool      // Boolean value
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NumberValue returns a number Value.
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// VectorValue returns a vector Value holding a copy of v.
func VectorValue(v []float64) Value {
	return Value{Kind: KindVector, Vec: append([]float64(nil), v...)}
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	if v.Vec != nil {
		v.Vec = append([]float64(nil), v.Vec...)
	}
	return v
}
