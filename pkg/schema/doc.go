// Package schema defines the input graph of the layout engine: tables with
// their columns, and foreign-key-style relationships between tables.
//
// # Overview
//
// A [Schema] is what an external loader (database introspection, a DDL
// parser, an ER editor's export) hands to the layout engine. The engine reads
// table names and column lists to size rectangles, and relationship endpoints
// to group and pull tables together. Relationship direction and column names
// are carried through for the renderer but do not influence the layout.
//
// # File Formats
//
// Schemas are stored as JSON or YAML. [ReadFile] and [WriteFile] pick the
// encoding from the file extension (.json, .yaml, .yml):
//
//	s, err := schema.ReadFile("shop.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := s.Validate(); err != nil {
//	    return err
//	}
//
// # Validation
//
// [Schema.Validate] rejects empty or duplicate table names. Relationships that
// point at undeclared tables are not errors; the layout engine ignores them.
// Use [Schema.DanglingRelationships] to report them.
package schema
