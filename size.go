package texmat

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	sizeMMXY = regexp.MustCompile(`(\d{2,5})x(\d{2,5})\s*mm`)
	sizeMM   = regexp.MustCompile(`(\d{2,5})\s*mm`)
	sizeMXY  = regexp.MustCompile(`(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)\s*m(?:[^a-z]|$)`)
	sizeM    = regexp.MustCompile(`(?:^|[^\dx.])(\d+(?:\.\d+)?)\s*m(?:[^a-z]|$)`)
)

// DetectSize recovers a physical texture size in centimeters from a name such
// as "oak_200x100mm", "tile_60mm", "brick_2x1m" or "slab_1.5m".
func DetectSize(name string) (widthCm, heightCm float64, ok bool) {
	name = strings.ToLower(name)

	if m := sizeMMXY.FindStringSubmatch(name); m != nil {
		return atof(m[1]) / 10, atof(m[2]) / 10, true
	}
	if m := sizeMM.FindStringSubmatch(name); m != nil {
		v := atof(m[1]) / 10
		return v, v, true
	}
	if m := sizeMXY.FindStringSubmatch(name); m != nil {
		return atof(m[1]) * 100, atof(m[2]) * 100, true
	}
	if m := sizeM.FindStringSubmatch(name); m != nil {
		v := atof(m[1]) * 100
		return v, v, true
	}

	return 0, 0, false
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
