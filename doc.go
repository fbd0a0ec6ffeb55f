/*
Package texmat assigns folders of PBR texture images to the channel slots of
host material graphs.

A folder is scanned for image files, every file name is classified to a
channel (albedo, roughness, reflection, metalness, bump, opacity, emissive),
and the classifications are resolved to at most one file per channel. The
resulting Assignments are written into a graph inside one edit session,
together with the physical texture size and an optional albedo tint. Graphs
are reached only through the Host, Graph, Edit and Node interfaces; the
memhost package provides an in-memory host backed by a text document.

Scan example:

	files, err := texmat.NewScanner(nil, nil).Scan(ctx, "D:/textures/oak_2000x1000mm")
	if err != nil {
		// handle error
	}
	a := texmat.Resolve(files, nil)
	a.Transform = texmat.Transform{WidthCm: 200, HeightCm: 100}

Validation example:

	issues := texmat.ValidateAssignments(a, nil)
	if texmat.HasErrors(issues) {
		// handle validation issues
	}

Apply example:

	g, _, err := texmat.EnsureGraph(host, "Oak Floor")
	if err != nil {
		// handle error
	}
	if !texmat.IsNoOp(g, a.Paths()) {
		res, err := texmat.Apply(ctx, g, a, &texmat.ApplyOptions{Unit: host.Unit()})
		if err != nil {
			// nothing was written
		}
		_ = res.Skipped
	}

Read example:

	rb, err := texmat.Read(g, &texmat.ReadOptions{Unit: host.Unit()})
	if err != nil {
		// handle error
	}
	_ = rb.Maps[texmat.Albedo].Path

Tile pattern example:

	p, ok, err := texmat.ApplyTiles(host, g, 200, 100, 4, 2, true)
	if err == nil && ok {
		_ = p.Name // "tiles_4_2_offset"
	}
*/
package texmat
