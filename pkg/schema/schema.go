package schema

import (
	"fmt"

	"github.com/matzehuels/erdlayout/pkg/errors"
)

// =============================================================================
// Schema - Layout Input
// =============================================================================

// Schema is the graph of tables and relationships handed to the layout engine.
// It is produced by an external loader (database introspection, a DDL parser,
// an editor export) and is read-only for the engine.
type Schema struct {
	Tables        []Table        `json:"tables" yaml:"tables" bson:"tables"`
	Relationships []Relationship `json:"relationships" yaml:"relationships" bson:"relationships"`
}

// =============================================================================
// Table / Column
// =============================================================================

// Table is a database table. Its Name is the identity used by relationships.
type Table struct {
	Name    string   `json:"name" yaml:"name" bson:"name"`
	Columns []Column `json:"columns" yaml:"columns" bson:"columns"`
}

// Column is a single column. Only Name and Type are consulted, and only to
// size the table's rectangle.
type Column struct {
	Name string `json:"name" yaml:"name" bson:"name"`
	Type string `json:"type" yaml:"type" bson:"type"`
}

// =============================================================================
// Relationship - Foreign-key-style Edge
// =============================================================================

// Endpoint identifies one side of a relationship.
type Endpoint struct {
	Table  string `json:"table" yaml:"table" bson:"table"`
	Column string `json:"column,omitempty" yaml:"column,omitempty" bson:"column,omitempty"`
}

// Relationship connects two tables. Direction is kept for the renderer; the
// layout engine treats relationships as undirected.
type Relationship struct {
	From Endpoint `json:"from" yaml:"from" bson:"from"`
	To   Endpoint `json:"to" yaml:"to" bson:"to"`
}

// IsSelfLoop reports whether the relationship starts and ends on the same table.
func (r Relationship) IsSelfLoop() bool { return r.From.Table == r.To.Table }

// String renders the relationship as "from.col -> to.col".
func (r Relationship) String() string {
	return fmt.Sprintf("%s -> %s", r.From.qualified(), r.To.qualified())
}

func (e Endpoint) qualified() string {
	if e.Column == "" {
		return e.Table
	}
	return e.Table + "." + e.Column
}

// =============================================================================
// Queries
// =============================================================================

// TableNames returns table names in declaration order.
func (s Schema) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// HasTable reports whether a table with the given name is declared.
func (s Schema) HasTable(name string) bool {
	for _, t := range s.Tables {
		if t.Name == name {
			return true
		}
	}
	return false
}

// DanglingRelationships returns relationships that reference at least one
// undeclared table. The layout engine ignores these.
func (s Schema) DanglingRelationships() []Relationship {
	known := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		known[t.Name] = true
	}
	var out []Relationship
	for _, r := range s.Relationships {
		if !known[r.From.Table] || !known[r.To.Table] {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks structural integrity: every table needs a valid, unique
// name. Dangling relationships are not errors (see DanglingRelationships).
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Tables))
	for i, t := range s.Tables {
		if err := errors.ValidateTableName(t.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSchema, err, "table %d", i)
		}
		if seen[t.Name] {
			return errors.New(errors.ErrCodeInvalidSchema, "duplicate table name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
