/*
Package memhost is an in-memory material host for texmat.

It keeps graphs of named nodes and typed leaves, marks leaves read-only,
serializes edits per graph, and registers grid patterns. A host can be
persisted as a text document:

	$unit="ft";
	class Pattern
	{
		$name="tiles_2_2";
		$id=1;
		$grids[]={{90, 3.28, 0}, {0, 3.28, 0}};
	};
	class Graph
	{
		$name="Generic";
		generic_diffuse_on=false;
		class generic_diffuse
		{
			unifiedbitmap_Bitmap="";
			unifiedbitmap_RealWorldScaleX=1;
			$readOnly[]={"unifiedbitmap_RealWorldScaleX"};
		};
	};

Reader example:

	h, err := memhost.DecodeFile("library.tmat", nil)
	if err != nil {
		// handle error
	}

Writer example:

	if err := memhost.EncodeFile("library.tmat", h, nil); err != nil {
		// handle error
	}
*/
package memhost
