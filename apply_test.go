package texmat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/texmat"
	"github.com/woozymasta/texmat/memhost"
	"golang.org/x/sync/errgroup"
)

func oakAssignments() *texmat.Assignments {
	a := texmat.NewAssignments(texmat.Transform{WidthCm: 200, HeightCm: 100, RotationDeg: 15})
	a.Set(texmat.Albedo, "/tex/oak/oak_albedo.jpg", false, texmat.DetailNone)
	a.Set(texmat.Roughness, "/tex/oak/oak_gloss.png", true, texmat.DetailNone)
	a.Set(texmat.Bump, "/tex/oak/oak_normal.png", false, texmat.DetailNormal)
	a.Tint = &texmat.Tint{R: 200, G: 180, B: 90}
	return a
}

func TestApplyReadRoundTrip(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitMeters)

	g, created, err := texmat.EnsureGraph(h, "Oak")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := texmat.EnsureGraph(h, "oak")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, g, again)

	a := oakAssignments()
	res, err := texmat.Apply(context.Background(), g, a, &texmat.ApplyOptions{FolderPath: "/tex/oak", Unit: h.Unit()})
	require.NoError(t, err)
	assert.Equal(t, []texmat.Channel{texmat.Albedo, texmat.Roughness, texmat.Bump}, res.Applied)
	assert.Empty(t, res.Skipped)
	assert.Zero(t, res.LeafSkips)
	assert.False(t, res.Partial())

	rb, err := texmat.Read(g, &texmat.ReadOptions{Unit: h.Unit()})
	require.NoError(t, err)

	want := map[texmat.Channel]texmat.MapRef{
		texmat.Albedo:    {Path: "/tex/oak/oak_albedo.jpg"},
		texmat.Roughness: {Path: "/tex/oak/oak_gloss.png", Invert: true},
		texmat.Bump:      {Path: "/tex/oak/oak_normal.png", Detail: texmat.DetailNormal},
	}
	if diff := cmp.Diff(want, rb.Maps); diff != "" {
		t.Fatalf("maps mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, a.Tint, rb.Tint)
	assert.Equal(t, "/tex/oak", rb.FolderPath)
	assert.InDelta(t, 200, rb.Transform.WidthCm, 1e-9)
	assert.InDelta(t, 100, rb.Transform.HeightCm, 1e-9)
	assert.InDelta(t, 15, rb.Transform.RotationDeg, 1e-9)
	assert.Equal(t, 1, rb.TilesX)
	assert.Equal(t, 1, rb.TilesY)
	assert.Equal(t, a.Paths(), rb.Assignments().Paths())

	// Native scale leaves hold meters.
	albedo, ok := g.Root().Child("generic_diffuse")
	require.True(t, ok)
	v, ok := albedo.Get("unifiedbitmap_RealWorldScaleX")
	require.True(t, ok)
	assert.InDelta(t, 2, v.Num, 1e-12)
	on, _ := g.Root().Get("generic_bump_map_on")
	assert.True(t, on.Bool)
	bump, _ := g.Root().Child("generic_bump_map")
	strength, _ := bump.Get("bumpmap_NormalScale")
	assert.InDelta(t, texmat.NormalStrength, strength.Num, 1e-12)

	// The template stays untouched.
	tpl, ok := h.Lookup(memhost.DefaultTemplateName)
	require.True(t, ok)
	trb, err := texmat.Read(tpl, nil)
	require.NoError(t, err)
	assert.Empty(t, trb.Maps)
	assert.Nil(t, trb.Tint)
}

func TestIsNoOp(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitFeet)
	g, _, err := texmat.EnsureGraph(h, "Oak")
	require.NoError(t, err)

	a := oakAssignments()
	assert.False(t, texmat.IsNoOp(g, a.Paths()))
	assert.True(t, texmat.IsNoOp(g, nil))

	_, err = texmat.Apply(context.Background(), g, a, nil)
	require.NoError(t, err)

	assert.True(t, texmat.IsNoOp(g, a.Paths()))
	assert.True(t, texmat.IsNoOp(g, map[texmat.Channel]string{
		texmat.Albedo:    `\tex\oak\OAK_ALBEDO.jpg`,
		texmat.Roughness: "/tex/oak/./oak_gloss.png",
		texmat.Bump:      "/tex/oak/oak_normal.png",
	}))

	fewer := a.Paths()
	delete(fewer, texmat.Bump)
	assert.False(t, texmat.IsNoOp(g, fewer))

	more := a.Paths()
	more[texmat.Opacity] = "/tex/oak/oak_opacity.png"
	assert.False(t, texmat.IsNoOp(g, more))

	assert.False(t, texmat.IsNoOp(nil, nil))
}

func TestApplyLegacyAliases(t *testing.T) {
	h := memhost.New(texmat.UnitFeet)
	_, err := h.AddGraph("Generic (legacy)", memhost.LegacyTemplate("Generic (legacy)"))
	require.NoError(t, err)

	g, created, err := texmat.EnsureGraph(h, "Stone")
	require.NoError(t, err)
	require.True(t, created)

	a := texmat.NewAssignments(texmat.Transform{WidthCm: 30.48, HeightCm: 60.96})
	a.Set(texmat.Albedo, "/tex/stone/stone_col.png", false, texmat.DetailNone)
	a.Set(texmat.Bump, "/tex/stone/stone_disp.png", false, texmat.DetailHeight)

	res, err := texmat.Apply(context.Background(), g, a, &texmat.ApplyOptions{FolderPath: "/tex/stone"})
	require.NoError(t, err)
	assert.Zero(t, res.LeafSkips)

	bump, ok := g.Root().Child("generic_bump_tex")
	require.True(t, ok)
	depth, ok := bump.Get("BumpMap.BumpmapDepth")
	require.True(t, ok)
	assert.InDelta(t, texmat.MinHeightStrength, depth.Num, 1e-12)

	desc, _ := g.Root().Get("description")
	assert.Equal(t, "/tex/stone", desc.Str)

	rb, err := texmat.Read(g, nil)
	require.NoError(t, err)
	assert.Equal(t, texmat.DetailHeight, rb.Maps[texmat.Bump].Detail)
	assert.Equal(t, "/tex/stone/stone_col.png", rb.Maps[texmat.Albedo].Path)
	assert.InDelta(t, 30.48, rb.Transform.WidthCm, 1e-9)
	assert.InDelta(t, 60.96, rb.Transform.HeightCm, 1e-9)
}

func TestApplyAbsorbsLeafFailures(t *testing.T) {
	root := memhost.NewNode("Custom")
	root.Define("generic_diffuse_on", texmat.BoolValue(false))
	root.AddChild("generic_diffuse").
		Define("unifiedbitmap_Bitmap", texmat.StringValue("/old.png")).
		Define("unifiedbitmap_RealWorldScaleX", texmat.StringValue("wide")).
		Lock("unifiedbitmap_Bitmap")

	h := memhost.New(texmat.UnitCentimeters)
	g, err := h.AddGraph("Custom", root)
	require.NoError(t, err)

	a := texmat.NewAssignments(texmat.Transform{WidthCm: 10, HeightCm: 10})
	a.Set(texmat.Albedo, "/new.png", false, texmat.DetailNone)
	a.Set(texmat.Roughness, "/new_rough.png", false, texmat.DetailNone)

	res, err := texmat.Apply(context.Background(), g, a, nil)
	require.NoError(t, err)
	assert.Equal(t, []texmat.Channel{texmat.Albedo}, res.Applied)
	assert.Equal(t, []texmat.Channel{texmat.Roughness}, res.Skipped)
	assert.True(t, res.Partial())
	// read-only bitmap, mismatched scaleX, absent scaleY and rotation
	assert.Equal(t, 4, res.LeafSkips)

	codes := make([]string, 0, len(res.Issues))
	for _, is := range res.Issues {
		codes = append(codes, is.Code)
	}
	assert.ElementsMatch(t, []string{"missing_slot", "leaf_skipped"}, codes)

	on, _ := g.Root().Get("generic_diffuse_on")
	assert.True(t, on.Bool)
	rb, err := texmat.Read(g, nil)
	require.NoError(t, err)
	assert.Equal(t, "/old.png", rb.Maps[texmat.Albedo].Path)
}

func TestApplyCommitFailureWritesNothing(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitFeet)
	g, _, err := texmat.EnsureGraph(h, "Oak")
	require.NoError(t, err)

	boom := errors.New("host busy")
	h.SetCommitHook(func(string) error { return boom })

	_, err = texmat.Apply(context.Background(), g, oakAssignments(), nil)
	require.ErrorIs(t, err, boom)

	rb, err := texmat.Read(g, nil)
	require.NoError(t, err)
	assert.Empty(t, rb.Maps)

	h.SetCommitHook(nil)
	_, err = texmat.Apply(context.Background(), g, oakAssignments(), nil)
	require.NoError(t, err)
	assert.True(t, texmat.IsNoOp(g, oakAssignments().Paths()))
}

func TestApplyGuards(t *testing.T) {
	_, err := texmat.Apply(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, texmat.ErrNilGraph)

	h := memhost.NewWithTemplate(texmat.UnitFeet)
	g, _ := h.Lookup(memhost.DefaultTemplateName)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = texmat.Apply(ctx, g, oakAssignments(), nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = texmat.Read(nil, nil)
	assert.ErrorIs(t, err, texmat.ErrNilGraph)
}

func TestConcurrentApplySerializes(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitFeet)
	g, _, err := texmat.EnsureGraph(h, "Oak")
	require.NoError(t, err)

	var eg errgroup.Group
	for i := range 8 {
		eg.Go(func() error {
			a := texmat.NewAssignments(texmat.Transform{WidthCm: 100, HeightCm: 100})
			path := fmt.Sprintf("/tex/v%d/albedo.png", i)
			a.Set(texmat.Albedo, path, false, texmat.DetailNone)
			a.Set(texmat.Roughness, fmt.Sprintf("/tex/v%d/roughness.png", i), false, texmat.DetailNone)
			_, err := texmat.Apply(context.Background(), g, a, nil)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	rb, err := texmat.Read(g, nil)
	require.NoError(t, err)
	var i int
	_, err = fmt.Sscanf(rb.Maps[texmat.Albedo].Path, "/tex/v%d/albedo.png", &i)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("/tex/v%d/roughness.png", i), rb.Maps[texmat.Roughness].Path)
}

func TestEnsureGraphErrors(t *testing.T) {
	_, _, err := texmat.EnsureGraph(nil, "Oak")
	assert.ErrorIs(t, err, texmat.ErrNilHost)

	_, _, err = texmat.EnsureGraph(memhost.New(texmat.UnitFeet), "Oak")
	assert.ErrorIs(t, err, texmat.ErrNoTemplate)
}

func TestPickTemplate(t *testing.T) {
	h := memhost.New(texmat.UnitFeet)
	_, err := h.AddGraph("Plain", memhost.NewNode("Plain"))
	require.NoError(t, err)
	assert.Equal(t, "Plain", texmat.PickTemplate(h.Graphs()).Name())

	_, err = h.AddGraph("Oak", memhost.GenericTemplate("Oak"))
	require.NoError(t, err)
	assert.Equal(t, "Oak", texmat.PickTemplate(h.Graphs()).Name())

	_, err = h.AddGraph("Générique", memhost.GenericTemplate("Générique"))
	require.NoError(t, err)
	assert.Equal(t, "Générique", texmat.PickTemplate(h.Graphs()).Name())

	assert.Nil(t, texmat.PickTemplate(nil))
}

func TestDerivePattern(t *testing.T) {
	h := memhost.New(texmat.UnitCentimeters)

	p, ok, err := texmat.DerivePattern(h, 100, 50, 4, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tile_250_250", p.Name)
	assert.Equal(t, []texmat.Grid{{AngleDeg: 90, Spacing: 25}, {AngleDeg: 0, Spacing: 25}}, p.Grids)

	again, ok, err := texmat.DerivePattern(h, 100, 50, 4, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.ID, again.ID)
	assert.Len(t, h.Patterns(), 1)

	_, ok, err = texmat.DerivePattern(h, 100, 50, 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	rows, ok, err := texmat.DerivePattern(h, 100, 50, 0, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tile_0_250", rows.Name)
	assert.Equal(t, []texmat.Grid{{AngleDeg: 0, Spacing: 25}}, rows.Grids)

	_, _, err = texmat.DerivePattern(nil, 1, 1, 1, 1)
	assert.ErrorIs(t, err, texmat.ErrNilHost)
}

func TestApplyTiles(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitMeters)
	g, _, err := texmat.EnsureGraph(h, "Floor")
	require.NoError(t, err)

	p, ok, err := texmat.ApplyTiles(h, g, 200, 100, 2, 2, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tiles_2_2_offset", p.Name)
	assert.Equal(t, []texmat.Grid{{AngleDeg: 90, Spacing: 1}, {AngleDeg: 0, Spacing: 0.5, Shift: 0.5}}, p.Grids)
	assert.Equal(t, p.Name, g.PatternName())

	rb, err := texmat.Read(g, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rb.TilesX)
	assert.Equal(t, 2, rb.TilesY)
	assert.True(t, rb.TileOffset)

	_, ok, err = texmat.ApplyTiles(h, g, 200, 100, 0, 0, false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, g.PatternName())

	_, _, err = texmat.ApplyTiles(h, nil, 1, 1, 1, 1, false)
	assert.ErrorIs(t, err, texmat.ErrNilGraph)
}

func TestIsNoOpIgnoresChannelsWithoutSlot(t *testing.T) {
	tpl := memhost.GenericTemplate(memhost.DefaultTemplateName)
	require.True(t, tpl.Remove(texmat.Slots[texmat.Emissive].Aliases[0]))

	h := memhost.New(texmat.UnitFeet)
	_, err := h.AddGraph(memhost.DefaultTemplateName, tpl)
	require.NoError(t, err)
	g, _, err := texmat.EnsureGraph(h, "Lamp")
	require.NoError(t, err)

	a := texmat.NewAssignments(texmat.Transform{WidthCm: 50, HeightCm: 50})
	a.Set(texmat.Albedo, "/tex/lamp/lamp_albedo.png", false, texmat.DetailNone)
	a.Set(texmat.Emissive, "/tex/lamp/lamp_emissive.png", false, texmat.DetailNone)

	for range 2 {
		res, err := texmat.Apply(context.Background(), g, a, nil)
		require.NoError(t, err)
		assert.Equal(t, []texmat.Channel{texmat.Emissive}, res.Skipped)
	}
	assert.True(t, texmat.IsNoOp(g, a.Paths()))
	assert.True(t, texmat.IsCurrent(g, a, nil))
}

func TestApplyClearsDroppedChannels(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitFeet)
	g, _, err := texmat.EnsureGraph(h, "Leaf")
	require.NoError(t, err)

	first := texmat.NewAssignments(texmat.Transform{WidthCm: 20, HeightCm: 20})
	first.Set(texmat.Albedo, "/t/leaf_albedo.png", false, texmat.DetailNone)
	first.Set(texmat.Opacity, "/t/leaf_opacity.png", false, texmat.DetailNone)
	_, err = texmat.Apply(context.Background(), g, first, nil)
	require.NoError(t, err)

	second := texmat.NewAssignments(first.Transform)
	second.Set(texmat.Albedo, "/t/leaf_albedo.png", false, texmat.DetailNone)

	res, err := texmat.Apply(context.Background(), g, second, nil)
	require.NoError(t, err)
	assert.Equal(t, []texmat.Channel{texmat.Opacity}, res.Cleared)
	assert.Zero(t, res.LeafSkips)

	res, err = texmat.Apply(context.Background(), g, second, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Cleared)

	rb, err := texmat.Read(g, nil)
	require.NoError(t, err)
	_, ok := rb.Maps[texmat.Opacity]
	assert.False(t, ok)
	on, _ := g.Root().Get(texmat.Slots[texmat.Opacity].Toggle)
	assert.False(t, on.Bool)
	assert.True(t, texmat.IsNoOp(g, second.Paths()))
	assert.True(t, texmat.IsCurrent(g, second, nil))
}

func TestApplyWithoutTintTurnsTintOff(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitFeet)
	g, _, err := texmat.EnsureGraph(h, "Oak")
	require.NoError(t, err)

	a := oakAssignments()
	_, err = texmat.Apply(context.Background(), g, a, nil)
	require.NoError(t, err)

	a.Tint = nil
	_, err = texmat.Apply(context.Background(), g, a, nil)
	require.NoError(t, err)

	rb, err := texmat.Read(g, nil)
	require.NoError(t, err)
	assert.Nil(t, rb.Tint)
	assert.Nil(t, rb.Assignments().Tint)
}

func TestApplyResetsInvertOutsideRoughness(t *testing.T) {
	tpl := memhost.GenericTemplate(memhost.DefaultTemplateName)
	tpl.AddChild(texmat.Slots[texmat.Albedo].Aliases[0]).Define(texmat.LeafInvert[0], texmat.BoolValue(true))

	h := memhost.New(texmat.UnitFeet)
	g, err := h.AddGraph("Oak", tpl)
	require.NoError(t, err)

	a := texmat.NewAssignments(texmat.Transform{WidthCm: 10, HeightCm: 10})
	a.Set(texmat.Albedo, "/t/oak_albedo.png", false, texmat.DetailNone)
	res, err := texmat.Apply(context.Background(), g, a, nil)
	require.NoError(t, err)
	assert.Zero(t, res.LeafSkips)

	albedo, _ := g.Root().Child(texmat.Slots[texmat.Albedo].Aliases[0])
	inv, _ := albedo.Get(texmat.LeafInvert[0])
	assert.False(t, inv.Bool)
}

func TestIsCurrent(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitMeters)
	g, _, err := texmat.EnsureGraph(h, "Oak")
	require.NoError(t, err)
	ropt := &texmat.ReadOptions{Unit: h.Unit()}

	a := oakAssignments()
	assert.False(t, texmat.IsCurrent(g, a, ropt))

	_, err = texmat.Apply(context.Background(), g, a, &texmat.ApplyOptions{Unit: h.Unit()})
	require.NoError(t, err)
	assert.True(t, texmat.IsCurrent(g, a, ropt))

	wider := oakAssignments()
	wider.Transform.WidthCm = 300
	assert.True(t, texmat.IsNoOp(g, wider.Paths()))
	assert.False(t, texmat.IsCurrent(g, wider, ropt))

	tinted := oakAssignments()
	tinted.Tint = &texmat.Tint{R: 1, G: 2, B: 3}
	assert.False(t, texmat.IsCurrent(g, tinted, ropt))

	plain := oakAssignments()
	plain.Tint = nil
	assert.False(t, texmat.IsCurrent(g, plain, ropt))

	assert.False(t, texmat.IsCurrent(g, nil, ropt))
	assert.False(t, texmat.IsCurrent(nil, a, ropt))
}

func TestApplyTilesReusesPatternByName(t *testing.T) {
	h := memhost.NewWithTemplate(texmat.UnitCentimeters)
	small, _, err := texmat.EnsureGraph(h, "Small")
	require.NoError(t, err)
	large, _, err := texmat.EnsureGraph(h, "Large")
	require.NoError(t, err)

	p1, _, err := texmat.ApplyTiles(h, small, 300, 300, 3, 3, false)
	require.NoError(t, err)
	p2, _, err := texmat.ApplyTiles(h, large, 600, 600, 3, 3, false)
	require.NoError(t, err)

	assert.Equal(t, p1.ID, p2.ID)
	assert.Equal(t, []texmat.Grid{{AngleDeg: 90, Spacing: 100}, {AngleDeg: 0, Spacing: 100}}, p2.Grids)
	assert.Len(t, h.Patterns(), 1)
}
