package memhost

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/texmat"
)

func TestDecodeFileSample(t *testing.T) {
	h, err := DecodeFile(filepath.Join("testdata", "library.tmat"), nil)
	require.NoError(t, err)

	assert.Equal(t, texmat.UnitFeet, h.Unit())
	require.Len(t, h.Graphs(), 2)

	oak := h.Graph("Oak Floor")
	require.NotNil(t, oak)
	assert.Equal(t, "tiles_2_2", oak.PatternName())

	desc, ok := oak.Root().Get("common_Description")
	require.True(t, ok)
	assert.Equal(t, `D:\textures\oak`, desc.Str)

	diffuse := oak.Tree().child("generic_diffuse")
	require.NotNil(t, diffuse)
	assert.True(t, diffuse.ReadOnly("unifiedbitmap_WAngle"))
	assert.False(t, diffuse.ReadOnly("unifiedbitmap_Bitmap"))

	tint, ok := diffuse.Get("common_Tint_color")
	require.True(t, ok)
	assert.Equal(t, texmat.KindVector, tint.Kind)
	assert.Equal(t, []float64{1, 1, 1, 1}, tint.Vec)

	legacy := h.Graph("Legacy Stone")
	require.NotNil(t, legacy)
	slot, ok := legacy.Root().Child("generic_diffuse_tex")
	require.True(t, ok)
	_, ok = slot.Get("UnifiedBitmap.Bitmap")
	assert.True(t, ok)

	pats := h.Patterns()
	require.Len(t, pats, 1)
	assert.Equal(t, 4, pats[0].ID)
	assert.Equal(t, []texmat.Grid{{AngleDeg: 90, Spacing: 3.28}, {AngleDeg: 0, Spacing: 3.28}}, pats[0].Grids)

	p, err := h.CreatePattern(texmat.PatternDef{Name: "next"})
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
}

func TestFormatRoundTrip(t *testing.T) {
	h, err := DecodeFile(filepath.Join("testdata", "library.tmat"), nil)
	require.NoError(t, err)

	out, err := Format(h, nil)
	require.NoError(t, err)

	h2, err := Parse(out, nil)
	require.NoError(t, err)

	out2, err := Format(h2, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(string(out), string(out2)); diff != "" {
		t.Fatalf("format not stable (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(h.Patterns(), h2.Patterns()); diff != "" {
		t.Fatalf("patterns differ (-want +got):\n%s", diff)
	}
	assert.True(t, h2.Graph("Oak Floor").Tree().child("generic_diffuse").ReadOnly("unifiedbitmap_WAngle"))
}

func TestFormatTemplateRoundTrip(t *testing.T) {
	h := NewWithTemplate(texmat.UnitMeters)
	_, err := h.AddGraph("Old", LegacyTemplate("Old"))
	require.NoError(t, err)

	out, err := Format(h, &FormatOptions{Indent: "  "})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  $name=\"Generic\";\n")

	h2, err := Parse(out, nil)
	require.NoError(t, err)
	assert.Equal(t, texmat.UnitMeters, h2.Unit())

	for _, name := range []string{DefaultTemplateName, "Old"} {
		want, got := h.Graph(name).Tree(), h2.Graph(name).Tree()
		assert.Equal(t, want.LeafNames(), got.LeafNames(), name)
		assert.Len(t, got.Children(), len(want.Children()), name)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{name: "unterminated string", in: `$unit="ft;`, want: ErrLex},
		{name: "bad character", in: `$unit=#;`, want: ErrLex},
		{name: "unknown class", in: `class Shader { };`, want: ErrParse},
		{name: "graph without name", in: `class Graph { a=1; };`, want: ErrParse},
		{name: "array without brackets", in: `class Graph { $name="g"; c={1,2}; };`, want: ErrParse},
		{name: "scalar with brackets", in: `class Graph { $name="g"; c[]=1; };`, want: ErrParse},
		{name: "unknown identifier", in: `class Graph { $name="g"; c=maybe; };`, want: ErrParse},
		{name: "duplicate leaf", in: `class Graph { $name="g"; c=1; c=2; };`, want: ErrParse},
		{name: "duplicate graph", in: `class Graph { $name="g"; }; class Graph { $name="G"; };`, want: ErrParse},
		{name: "meta in child", in: `class Graph { $name="g"; class s { $name="x"; }; };`, want: ErrParse},
		{name: "bad unit", in: `$unit="parsec";`, want: ErrParse},
		{name: "missing semicolon", in: `class Graph { $name="g"; }`, want: ErrParse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := DecodeFile(filepath.Join("testdata", "bad_readonly.tmat"), nil)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseComments(t *testing.T) {
	in := "// header\nclass Graph { $name=\"g\"; /* note */ a=1; };"
	h, err := Parse([]byte(in), nil)
	require.NoError(t, err)
	require.NotNil(t, h.Graph("g"))

	_, err = Parse([]byte(in), &ParseOptions{DisableComments: true})
	assert.ErrorIs(t, err, ErrLex)
}

func TestQuoteEscapes(t *testing.T) {
	h := New("")
	root := NewNode("g").Define("path", texmat.StringValue(`\\server\share\"odd".png`))
	_, err := h.AddGraph("g", root)
	require.NoError(t, err)

	out, err := Format(h, nil)
	require.NoError(t, err)

	h2, err := Parse(out, nil)
	require.NoError(t, err)
	v, ok := h2.Graph("g").Root().Get("path")
	require.True(t, ok)
	assert.Equal(t, `\\server\share\"odd".png`, v.Str)
}

func TestNodeSetErrors(t *testing.T) {
	h := New("")
	root := NewNode("g").
		Define("n", texmat.NumberValue(1)).
		Define("locked", texmat.StringValue("x")).
		Lock("locked")
	g, err := h.AddGraph("g", root)
	require.NoError(t, err)

	assert.ErrorIs(t, g.Root().Set("n", texmat.NumberValue(2)), texmat.ErrEditClosed)

	ed, err := g.Begin()
	require.NoError(t, err)
	defer ed.Discard()

	r := ed.Root()
	assert.ErrorIs(t, r.Set("missing", texmat.NumberValue(1)), texmat.ErrNoLeaf)
	assert.ErrorIs(t, r.Set("locked", texmat.StringValue("y")), texmat.ErrReadOnly)
	assert.ErrorIs(t, r.Set("n", texmat.StringValue("2")), texmat.ErrKindMismatch)
	assert.NoError(t, r.Set("n", texmat.NumberValue(2)))
}

func TestEditCommitAndDiscard(t *testing.T) {
	h := NewWithTemplate("")
	g := h.Graph(DefaultTemplateName)
	require.NotNil(t, g)

	ed, err := g.Begin()
	require.NoError(t, err)
	slot, ok := ed.Root().Child("generic_diffuse")
	require.True(t, ok)
	require.NoError(t, slot.Set("unifiedbitmap_Bitmap", texmat.StringValue("a.png")))
	ed.SetPattern("tiles_1_1")

	live, _ := g.Root().Child("generic_diffuse")
	v, _ := live.Get("unifiedbitmap_Bitmap")
	assert.Empty(t, v.Str, "write visible before commit")
	assert.Empty(t, g.PatternName())

	require.NoError(t, ed.Commit())
	live, _ = g.Root().Child("generic_diffuse")
	v, _ = live.Get("unifiedbitmap_Bitmap")
	assert.Equal(t, "a.png", v.Str)
	assert.Equal(t, "tiles_1_1", g.PatternName())

	assert.ErrorIs(t, slot.Set("unifiedbitmap_Bitmap", texmat.StringValue("b.png")), texmat.ErrEditClosed)
	assert.ErrorIs(t, ed.Commit(), texmat.ErrEditClosed)
	ed.Discard()

	ed, err = g.Begin()
	require.NoError(t, err)
	slot, _ = ed.Root().Child("generic_diffuse")
	require.NoError(t, slot.Set("unifiedbitmap_Bitmap", texmat.StringValue("c.png")))
	ed.Discard()

	live, _ = g.Root().Child("generic_diffuse")
	v, _ = live.Get("unifiedbitmap_Bitmap")
	assert.Equal(t, "a.png", v.Str)
}

func TestExclusiveEdits(t *testing.T) {
	h := NewWithTemplate("")
	g := h.Graph(DefaultTemplateName)

	first, err := g.Begin()
	require.NoError(t, err)

	_, ok := g.TryBegin()
	assert.False(t, ok)

	started := make(chan texmat.Edit)
	go func() {
		ed, _ := g.Begin()
		started <- ed
	}()

	select {
	case <-started:
		t.Fatal("second session opened while the first is open")
	case <-time.After(50 * time.Millisecond):
	}

	first.Discard()

	select {
	case ed := <-started:
		ed.Discard()
	case <-time.After(2 * time.Second):
		t.Fatal("second session never opened")
	}
}

func TestCommitHookAborts(t *testing.T) {
	h := NewWithTemplate("")
	g := h.Graph(DefaultTemplateName)
	boom := errors.New("host busy")
	h.SetCommitHook(func(string) error { return boom })

	ed, err := g.Begin()
	require.NoError(t, err)
	ed.SetPattern("x")
	err = ed.Commit()
	require.ErrorIs(t, err, boom)
	assert.Empty(t, g.PatternName())

	ed, ok := g.TryBegin()
	require.True(t, ok, "failed commit must release the graph")
	ed.Discard()

	h.SetCommitHook(nil)
	ed, err = g.Begin()
	require.NoError(t, err)
	ed.SetPattern("x")
	require.NoError(t, ed.Commit())
	assert.Equal(t, "x", g.PatternName())
}

func TestDuplicateAndRename(t *testing.T) {
	h := NewWithTemplate("")
	base := h.Graph(DefaultTemplateName)

	dup, err := h.Duplicate(base, "Brick")
	require.NoError(t, err)
	require.Len(t, h.Graphs(), 2)

	ed, err := dup.Begin()
	require.NoError(t, err)
	require.NoError(t, ed.Root().Set("common_Description", texmat.StringValue("bricks")))
	require.NoError(t, ed.Commit())

	v, _ := base.Root().Get("common_Description")
	assert.Empty(t, v.Str, "duplicate shares state with its source")

	_, err = h.Duplicate(base, "brick")
	assert.ErrorIs(t, err, ErrExists)

	assert.ErrorIs(t, h.Rename(dup, "GENERIC"), ErrExists)
	require.NoError(t, h.Rename(dup, "Brick Wall"))
	_, ok := h.Lookup("Brick Wall")
	assert.True(t, ok)
	_, ok = h.Lookup("Brick")
	assert.False(t, ok)

	other := NewWithTemplate("")
	_, err = h.Duplicate(other.Graph(DefaultTemplateName), "X")
	assert.ErrorIs(t, err, ErrForeignGraph)
	assert.ErrorIs(t, h.Rename(dup, " "), ErrEmptyName)
}

func TestCreatePattern(t *testing.T) {
	h := New("")
	a, err := h.CreatePattern(texmat.PatternDef{Name: "a", Grids: []texmat.Grid{{AngleDeg: 90, Spacing: 1}}})
	require.NoError(t, err)
	b, err := h.CreatePattern(texmat.PatternDef{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	_, err = h.CreatePattern(texmat.PatternDef{Name: "A"})
	assert.ErrorIs(t, err, ErrExists)
	_, err = h.CreatePattern(texmat.PatternDef{})
	assert.ErrorIs(t, err, ErrEmptyName)

	pats := h.Patterns()
	pats[0].Grids[0].Spacing = 99
	assert.Equal(t, 1.0, h.Patterns()[0].Grids[0].Spacing)
}

func TestGenericTemplateSlots(t *testing.T) {
	root := GenericTemplate("g")
	for _, ch := range texmat.Channels {
		sdef := texmat.Slots[ch]
		_, ok := root.Child(sdef.Aliases[0])
		assert.True(t, ok, ch.String())
		_, ok = root.Get(sdef.Toggle)
		assert.True(t, ok, sdef.Toggle)
	}

	legacy := LegacyTemplate("l")
	_, ok := legacy.Child(texmat.Slots[texmat.Albedo].Aliases[0])
	assert.False(t, ok)
	assert.True(t, strings.Contains(strings.Join(legacy.LeafNames(), ","), "description"))
}
