package texmat

// SlotSpec describes where a channel lives on a host graph.
// Every name list is ordered by priority: the first name present wins.
type SlotSpec struct {
	Toggle  string   // Root leaf enabling the slot texture
	Aliases []string // Root children holding the channel bitmap node
	Channel Channel  // Channel served by the slot
}

// Slots maps each channel to its host slot. Alias lists keep legacy names
// used by older host graph versions.
var Slots = map[Channel]SlotSpec{
	Albedo: {
		Channel: Albedo,
		Aliases: []string{"generic_diffuse", "generic_diffuse_tex", "Generic_Diffuse", "diffuse_tex", "common_Tint_color_texture"},
		Toggle:  "generic_diffuse_on",
	},
	Roughness: {
		Channel: Roughness,
		Aliases: []string{"generic_roughness", "generic_glossiness", "generic_glossiness_tex", "generic_roughness_tex", "generic_reflect_glossiness_tex"},
		Toggle:  "generic_glossiness_on",
	},
	Reflection: {
		Channel: Reflection,
		Aliases: []string{"generic_reflectivity_at_0deg", "generic_reflectivity_tex", "generic_specular_tex", "generic_reflection_tex"},
		Toggle:  "generic_reflectivity_on",
	},
	Metalness: {
		Channel: Metalness,
		Aliases: []string{"generic_metalness", "generic_metalness_tex", "pbr_metalness_tex"},
		Toggle:  "generic_metalness_on",
	},
	Bump: {
		Channel: Bump,
		Aliases: []string{"generic_bump_map", "generic_bump_tex", "generic_normalmap_tex", "generic_normaltex"},
		Toggle:  "generic_bump_map_on",
	},
	Opacity: {
		Channel: Opacity,
		Aliases: []string{"generic_transparency", "generic_transparency_tex", "generic_opacity_tex", "generic_cutout_tex"},
		Toggle:  "generic_transparency_on",
	},
	Emissive: {
		Channel: Emissive,
		Aliases: []string{"generic_emission_color", "generic_emission_tex", "generic_selfillum_tex", "generic_emissive_tex"},
		Toggle:  "generic_emission_on",
	},
}

// Bitmap leaf aliases.
var (
	LeafBitmap     = []string{"unifiedbitmap_Bitmap", "UnifiedBitmap.Bitmap", "texture_Bitmap", "bumpmap_Bitmap", "BumpMap.BumpmapBitmap"}
	LeafInvert     = []string{"unifiedbitmap_Invert", "UnifiedBitmap.Invert"}
	LeafScaleX     = []string{"unifiedbitmap_RealWorldScaleX", "UnifiedBitmap.RealWorldScaleX", "texture_RealWorldScaleX", "BumpMap.TextureRealWorldScaleX"}
	LeafScaleY     = []string{"unifiedbitmap_RealWorldScaleY", "UnifiedBitmap.RealWorldScaleY", "texture_RealWorldScaleY", "BumpMap.TextureRealWorldScaleY"}
	LeafRotation   = []string{"unifiedbitmap_WAngle", "UnifiedBitmap.WAngle", "UnifiedBitmap.Rotation", "texture_WAngle", "texture_Rotation", "BumpMap.TextureWAngle"}
	LeafTintToggle = []string{"common_Tint_toggle", "UnifiedBitmap.Tint_enabled", "unifiedbitmap_Tint_toggle"}
	LeafTintColor  = []string{"common_Tint_color", "UnifiedBitmap.Tint_color", "unifiedbitmap_Tint_color", "TintColor"}
)

// Bump node leaf aliases.
var (
	LeafBumpMode     = []string{"bumpmap_Type", "BumpMap.BumpmapType"}
	LeafBumpNormal   = []string{"bumpmap_NormalScale", "BumpMap.BumpmapNormalScale"}
	LeafBumpStrength = []string{"bumpmap_Depth", "BumpMap.BumpmapDepth", "bumpmap_Amount", "bumpmap_Height"}
)

// LeafDescription is the root leaf holding the source folder of a graph.
var LeafDescription = []string{"common_Description", "description"}

// Bump mode leaf values.
const (
	BumpModeHeight = 0
	BumpModeNormal = 1
)

// Default bump strengths.
const (
	NormalStrength    = 1.0
	MinHeightStrength = 0.5
)

// templateProbe is the slot whose presence marks a generic-like template.
const templateProbe = "generic_diffuse"
