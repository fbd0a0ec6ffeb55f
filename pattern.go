package texmat

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// patternMu serializes lookup-or-create so concurrent callers never register
// the same pattern name twice.
var patternMu sync.Mutex

var tilesName = regexp.MustCompile(`(?i)tiles_(\d+)_\s*(\d+)(_offset)?`)

// DerivePattern returns the grid pattern spacing a widthCm x heightCm area into
// divX x divY cells, creating it on h when no pattern of that name exists.
//
// A zero (or negative) division leaves that axis without lines. When both are
// zero no pattern is needed and ok is false. The name encodes the spacing in
// rounded millimeters, so repeated calls reuse one pattern.
func DerivePattern(h Host, widthCm, heightCm float64, divX, divY int) (p Pattern, ok bool, err error) {
	if h == nil {
		return Pattern{}, false, ErrNilHost
	}

	sx, sy, ok := cellSpacing(widthCm, heightCm, divX, divY)
	if !ok {
		return Pattern{}, false, nil
	}

	def := PatternDef{
		Name:  fmt.Sprintf("tile_%d_%d", roundMM(sx), roundMM(sy)),
		Grids: gridLines(h.Unit(), sx, sy, false),
	}
	p, err = lookupOrCreate(h, def)
	if err != nil {
		return Pattern{}, false, err
	}

	return p, true, nil
}

// ApplyTiles assigns a tilesX x tilesY pattern to g, named with TilesName so
// Read can recover the counts. Zero tiles on both axes clears the assignment.
// With offset every other row is shifted by half a tile.
//
// Patterns are looked up by name only, so a layout already registered keeps
// the spacing of the material size it was first created for.
func ApplyTiles(h Host, g Graph, widthCm, heightCm float64, tilesX, tilesY int, offset bool) (p Pattern, ok bool, err error) {
	if h == nil {
		return Pattern{}, false, ErrNilHost
	}
	if g == nil {
		return Pattern{}, false, ErrNilGraph
	}

	name := ""
	sx, sy, ok := cellSpacing(widthCm, heightCm, tilesX, tilesY)
	if ok {
		def := PatternDef{
			Name:  TilesName(max(tilesX, 0), max(tilesY, 0), offset),
			Grids: gridLines(h.Unit(), sx, sy, offset),
		}
		if p, err = lookupOrCreate(h, def); err != nil {
			return Pattern{}, false, err
		}
		name = p.Name
	}

	ed, err := g.Begin()
	if err != nil {
		return Pattern{}, false, fmt.Errorf("begin edit %q: %w", g.Name(), err)
	}
	ed.SetPattern(name)
	if err := ed.Commit(); err != nil {
		ed.Discard()
		return Pattern{}, false, fmt.Errorf("commit %q: %w", g.Name(), err)
	}

	return p, ok, nil
}

// TilesName builds the pattern name for a tile layout.
func TilesName(tilesX, tilesY int, offset bool) string {
	name := "tiles_" + strconv.Itoa(tilesX) + "_" + strconv.Itoa(tilesY)
	if offset {
		name += "_offset"
	}

	return name
}

// ParseTilesName recovers a tile layout from a pattern name built by TilesName.
func ParseTilesName(name string) (tilesX, tilesY int, offset, ok bool) {
	m := tilesName.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false, false
	}

	tx, errX := strconv.Atoi(m[1])
	ty, errY := strconv.Atoi(m[2])
	if errX != nil || errY != nil {
		return 0, 0, false, false
	}

	return tx, ty, m[3] != "", true
}

// cellSpacing divides the area; a nil axis has no subdivision.
func cellSpacing(widthCm, heightCm float64, divX, divY int) (sx, sy *float64, ok bool) {
	if divX > 0 {
		v := widthCm / float64(divX)
		sx = &v
	}
	if divY > 0 {
		v := heightCm / float64(divY)
		sy = &v
	}

	return sx, sy, sx != nil || sy != nil
}

// gridLines converts cell spacing to line families in unit u: vertical lines
// repeat along X, horizontal lines along Y.
func gridLines(u Unit, sx, sy *float64, offset bool) []Grid {
	var grids []Grid
	if sx != nil {
		grids = append(grids, Grid{AngleDeg: 90, Spacing: u.FromCm(*sx)})
	}
	if sy != nil {
		g := Grid{AngleDeg: 0, Spacing: u.FromCm(*sy)}
		if offset && sx != nil {
			g.Shift = u.FromCm(*sx / 2)
		}
		grids = append(grids, g)
	}

	return grids
}

// lookupOrCreate returns the pattern named def.Name, creating it if needed.
func lookupOrCreate(h Host, def PatternDef) (Pattern, error) {
	patternMu.Lock()
	defer patternMu.Unlock()

	for _, p := range h.Patterns() {
		if strings.EqualFold(p.Name, def.Name) {
			return p, nil
		}
	}

	p, err := h.CreatePattern(def)
	if err != nil {
		return Pattern{}, fmt.Errorf("create pattern %q: %w", def.Name, err)
	}

	return p, nil
}

// roundMM rounds a centimeter length to whole millimeters; nil is zero.
func roundMM(cm *float64) int {
	if cm == nil {
		return 0
	}

	return int(math.Round(*cm * 10))
}
