package texmat

import "strings"

// Classification is the result of classifying one file name.
type Classification struct {
	Channel Channel    `json:"channel" yaml:"channel"`                   // Detected channel
	Detail  BumpDetail `json:"detail,omitempty" yaml:"detail,omitempty"` // Bump sub-kind, bump channel only
	Label   string     `json:"label" yaml:"label"`                       // Human readable label
	Invert  bool       `json:"invert,omitempty" yaml:"invert,omitempty"` // File encodes glossiness
}

// Classification labels.
const (
	LabelGlossiness = "Glossiness"
	LabelRoughness  = "Roughness"
	LabelNormal     = "Normal"
	LabelHeight     = "Height"
	LabelBump       = "Bump"
	LabelAlbedo     = "Albedo"
	LabelReflection = "Reflection"
	LabelMetalness  = "Metalness"
	LabelOpacity    = "Opacity"
	LabelEmissive   = "Emissive"
	LabelUnknown    = "Unknown"
)

// Exclusive keyword groups, checked before the generic families.
var (
	glossKeys  = []string{"glossiness", "gloss", "smoothness", "smooth", "gls"}
	roughKeys  = []string{"roughness", "rough", "rgh"}
	normalKeys = []string{"normal", "nrml", "nrm"}
	heightKeys = []string{"height", "displacement", "displace", "disp", "parallax", "depth", "hgt"}
	bumpKeys   = []string{"bump", "bmp"}
)

// family is one generic keyword set; families are matched in declaration order.
type family struct {
	label   string
	keys    []string
	channel Channel
}

var families = []family{
	{channel: Albedo, label: LabelAlbedo, keys: []string{
		"albedo", "basecolor", "diffuse", "diff", "colour", "color", "col", "clr", "rgb", "albd", "alb"}},
	{channel: Reflection, label: LabelReflection, keys: []string{
		"specularity", "specular", "spec", "reflectance", "reflection", "reflect", "refl"}},
	{channel: Metalness, label: LabelMetalness, keys: []string{
		"metalness", "metallic", "metal"}},
	{channel: Opacity, label: LabelOpacity, keys: []string{
		"opacity", "opac", "alpha", "mask", "transparency", "cutout"}},
	{channel: Emissive, label: LabelEmissive, keys: []string{
		"emissive", "emission", "emit", "selfillum", "illum"}},
}

// Classify classifies a file path by its name.
func Classify(path string) Classification {
	return ClassifyName(Normalize(path))
}

// ClassifyName classifies an already normalized name.
// Every input yields exactly one result; no match is Unknown.
func ClassifyName(n string) Classification {
	// Roughness and bump sub-kinds go first: their keywords hide inside looser families.
	switch {
	case containsAny(n, glossKeys):
		return Classification{Channel: Roughness, Invert: true, Label: LabelGlossiness}
	case containsAny(n, roughKeys):
		return Classification{Channel: Roughness, Label: LabelRoughness}
	case containsAny(n, normalKeys):
		return Classification{Channel: Bump, Detail: DetailNormal, Label: LabelNormal}
	case containsAny(n, heightKeys):
		return Classification{Channel: Bump, Detail: DetailHeight, Label: LabelHeight}
	case containsAny(n, bumpKeys):
		return Classification{Channel: Bump, Detail: DetailBump, Label: LabelBump}
	}

	for _, f := range families {
		if containsAny(n, f.keys) {
			return Classification{Channel: f.channel, Label: f.label}
		}
	}

	return Classification{Channel: Unknown, Label: LabelUnknown}
}

// containsAny reports whether s contains any of keys.
func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}
