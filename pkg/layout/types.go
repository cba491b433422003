package layout

import (
	"time"

	"github.com/matzehuels/erdlayout/pkg/schema"
)

// =============================================================================
// Geometry
// =============================================================================

// Default canvas size used when a caller passes zero Bounds.
const (
	DefaultWidth  = 1200.0
	DefaultHeight = 800.0
)

// Bounds is the target canvas size. It is an input and never mutated.
type Bounds struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// OrDefault replaces non-positive dimensions with the defaults.
func (b Bounds) OrDefault() Bounds {
	if b.Width <= 0 {
		b.Width = DefaultWidth
	}
	if b.Height <= 0 {
		b.Height = DefaultHeight
	}
	return b
}

// Dimension is the rectangle size derived from a table's columns.
type Dimension struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Area   float64 `json:"area" bson:"area"`
}

// =============================================================================
// Result - Layout Output
// =============================================================================

// PositionedTable is an input table with its final rectangle. X and Y are the
// top-left corner. The embedded table fields are inlined when serialized.
type PositionedTable struct {
	schema.Table `bson:",inline"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Right returns the x coordinate of the right edge.
func (t PositionedTable) Right() float64 { return t.X + t.Width }

// Bottom returns the y coordinate of the bottom edge.
func (t PositionedTable) Bottom() float64 { return t.Y + t.Height }

// Cluster is a connected component of the relationship graph.
type Cluster struct {
	Tables []string `json:"tables" bson:"tables"`
	Size   int      `json:"size" bson:"size"`
}

// Statistics summarizes the quality of a layout.
type Statistics struct {
	TotalTables        int `json:"total_tables" bson:"total_tables"`
	TotalRelationships int `json:"total_relationships" bson:"total_relationships"`
	TotalClusters      int `json:"total_clusters" bson:"total_clusters"`
	Overlaps           int `json:"overlaps" bson:"overlaps"`
	Crossings          int `json:"crossings" bson:"crossings"`
	LayoutEfficiency   int `json:"layout_efficiency" bson:"layout_efficiency"`
}

// Result is the output of one layout calculation.
//
// For an empty schema only Tables and Relationships are set (both empty);
// Clusters, Bounds and Statistics are omitted.
type Result struct {
	Tables        []PositionedTable     `json:"tables" bson:"tables"`
	Relationships []schema.Relationship `json:"relationships" bson:"relationships"`
	Clusters      []Cluster             `json:"clusters,omitempty" bson:"clusters,omitempty"`
	Bounds        *Bounds               `json:"bounds,omitempty" bson:"bounds,omitempty"`
	Statistics    *Statistics           `json:"statistics,omitempty" bson:"statistics,omitempty"`

	// Diagnostics describes how the run went. It is not part of the
	// serialized result.
	Diagnostics *Diagnostics `json:"-" bson:"-"`
}

// Table returns the positioned table with the given name.
func (r Result) Table(name string) (PositionedTable, bool) {
	for _, t := range r.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return PositionedTable{}, false
}

// =============================================================================
// Diagnostics
// =============================================================================

// Stage names reported to observers, in pipeline order.
const (
	StageDimensions = "dimensions"
	StageClusters   = "clusters"
	StagePlacement  = "placement"
	StageSimulation = "simulation"
	StageMasonry    = "masonry"
	StageOrphans    = "orphans"
	StageOverlaps   = "overlaps"
	StageStatistics = "statistics"
)

// Diagnostics reports iteration counts and whether the iterative stages
// finished before their caps.
type Diagnostics struct {
	SimulationIterations int
	Converged            bool
	OverlapPasses        int
	OverlapsResolved     bool
	Orphans              int
	Duration             time.Duration
}

// StageEvent is emitted after each pipeline stage completes.
type StageEvent struct {
	Stage      string
	Duration   time.Duration
	Iterations int // iterations or passes for iterative stages, 0 otherwise
}

// Observer receives stage events. It is called synchronously from the
// calculating goroutine.
type Observer func(StageEvent)
