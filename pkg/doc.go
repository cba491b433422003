// Package pkg provides the core libraries for erdlayout, an automatic layout
// engine for entity-relationship diagrams.
//
// # Overview
//
// erdlayout takes a database schema (tables, their columns and the
// relationships between them) and assigns every table a rectangle on a 2D
// canvas. Related tables end up close together, unrelated groups are packed
// side by side, tables without relationships are parked below, and no two
// tables overlap.
//
// # Architecture
//
// The typical data flow:
//
//	schema.json / schema.yaml
//	         ↓
//	    [schema] package (load + validate)
//	         ↓
//	    [pipeline] package (settings, cache lookup)
//	         ↓
//	    [layout] package (eight-stage engine)
//	         ↓
//	    layout.json  →  [preview] package (Graphviz SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/erdlayout/pkg/layout"
//	    "github.com/matzehuels/erdlayout/pkg/schema"
//	)
//
//	s, _ := schema.ReadFile("shop.yaml")
//	result := layout.New().Calculate(s, layout.Bounds{Width: 1600, Height: 900})
//	for _, t := range result.Tables {
//	    fmt.Printf("%-12s %6.0f %6.0f\n", t.Name, t.X, t.Y)
//	}
//
// # Main Packages
//
// [schema] - Input model: tables, columns and relationships, with JSON and
// YAML readers and structural validation.
//
// [layout] - The engine. Dimensions, cluster detection, grid placement, force
// simulation, masonry packing, orphan placement, overlap resolution and
// statistics. Settings are tunable through TOML files.
//
// [pipeline] - Loading, validation and caching around the engine. Used by the
// CLI and the HTTP server so both behave the same.
//
// [cache] - Layout cache backends: file (CLI), Redis and MongoDB (server),
// and a null cache for tests and --no-cache.
//
// [preview] - Converts layouts to Graphviz DOT with pinned positions and
// renders SVG through the embedded Graphviz.
//
// [observability] - Hook interfaces for metrics and tracing of layouts, cache
// operations and HTTP requests. No-ops by default.
//
// [errors] - Error codes shared by the CLI and the HTTP API.
//
// [buildinfo] - Version information stamped in at build time.
//
// # Testing
//
//	go test ./...                              # All tests
//	go test -run Example ./pkg/layout          # Examples only
//	ERDLAYOUT_TEST_REDIS=localhost:6379 go test ./pkg/cache
//	ERDLAYOUT_TEST_MONGO=mongodb://localhost go test ./pkg/cache
package pkg
