// Package preview renders computed layouts through Graphviz so they can be
// inspected without a diagram front end.
//
// [ToDOT] converts a [layout.Result] to DOT with every table pinned at its
// computed position (pos="x,y!") and sized to its computed box. [RenderSVG]
// runs the neato engine, which honours pinned positions and only routes the
// relationship edges, so the picture shows exactly what the layout engine
// produced.
//
//	dot := preview.ToDOT(result, preview.Options{Columns: true})
//	svg, err := preview.RenderSVG(ctx, dot)
package preview
