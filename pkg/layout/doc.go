// Package layout computes entity-relationship diagram layouts: given tables
// and the relationships between them, it assigns every table a rectangle on
// a canvas so that related tables sit close together and no boxes overlap.
//
// # Pipeline
//
// [Engine.Calculate] runs eight stages in a fixed order, each refining the
// positions produced by the previous one:
//
//  1. Dimensions: each table's box is sized from its name and columns ([Measure]).
//  2. Clusters: tables are grouped into connected components of the
//     relationship graph, largest first.
//  3. Placement: each cluster gets a cell of a square-ish grid; multi-table
//     clusters start on a circle inside their cell.
//  4. Simulation: a damped force model untangles the graph. Tables repel
//     each other, relationships behave as springs, and the padded canvas
//     edges push back.
//  5. Masonry: cluster bounding boxes are repacked into columns, largest
//     first into the shortest column, moving each cluster rigidly.
//  6. Orphans: tables that no relationship touches are laid out in a grid
//     below everything else.
//  7. Overlaps: remaining collisions (including the minimum gap) are pushed
//     apart pairwise, at most 200 passes.
//  8. Statistics: overlaps, optional crossings and an efficiency score.
//
// The whole pipeline is deterministic: identical schema, bounds and settings
// produce identical results.
//
// # Usage
//
//	engine := layout.New(layout.WithLogger(logger))
//	result := engine.Calculate(s, layout.Bounds{Width: 1600, Height: 900})
//	for _, t := range result.Tables {
//	    fmt.Printf("%s at (%.0f, %.0f)\n", t.Name, t.X, t.Y)
//	}
//
// # Failure Model
//
// Calculate has no error return. Relationships naming unknown tables are
// ignored, and hitting the simulation or overlap caps yields the best layout
// found so far. Such cases are logged at warn level and reported through
// [Result.Diagnostics]. Callers that need per-stage timing can register an
// [Observer] with [WithObserver].
//
// # Settings
//
// [DefaultSettings] holds the built-in tuning. [Overrides] carry partial
// updates from TOML files ([LoadSettingsFile]), CLI flags or API requests and
// are applied with [Settings.Merge] or [Engine.UpdateSettings].
package layout
