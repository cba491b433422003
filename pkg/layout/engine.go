package layout

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/erdlayout/pkg/schema"
)

// Engine computes layouts. It holds only settings; each Calculate call works
// on its own arena, so one Engine may serve concurrent calls. Settings are
// snapshotted at the start of a call, so UpdateSettings never affects a call
// already in flight.
type Engine struct {
	mu       sync.RWMutex
	settings Settings

	logger   *log.Logger
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// WithLogger sets the logger used for stage and cap diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers a callback invoked after every stage.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// New creates an engine with default settings and a discarding logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		settings: DefaultSettings(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns a copy of the live settings.
func (e *Engine) Settings() Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// UpdateSettings shallow-merges o into the live settings. The merged record
// is validated first; on error the live settings are left unchanged.
func (e *Engine) UpdateSettings(o Overrides) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	merged := e.settings.Merge(o)
	if err := merged.Validate(); err != nil {
		return err
	}
	e.settings = merged
	return nil
}

// Calculate lays out the schema inside bounds. Zero bounds fall back to
// 1200x800. It never fails: non-convergence and unresolved overlaps are
// logged and reported in Result.Diagnostics, and the best layout found is
// returned.
func (e *Engine) Calculate(s schema.Schema, bounds Bounds) Result {
	if len(s.Tables) == 0 {
		return Result{
			Tables:        []PositionedTable{},
			Relationships: []schema.Relationship{},
		}
	}

	settings := e.Settings()
	b := bounds.OrDefault()
	start := time.Now()
	diag := &Diagnostics{}

	a := newArena(s)

	e.stage(StageDimensions, func() int {
		measureAll(a, s.Tables)
		return 0
	})

	var clusters [][]int
	e.stage(StageClusters, func() int {
		clusters = detectClusters(a)
		return 0
	})

	e.stage(StagePlacement, func() int {
		placeInitial(a, clusters, b, settings)
		return 0
	})

	e.stage(StageSimulation, func() int {
		sim := simulate(a, b, settings)
		diag.SimulationIterations = sim.iterations
		diag.Converged = sim.converged
		return sim.iterations
	})
	if !diag.Converged && settings.MaxIterations > 0 {
		e.logger.Warn("force simulation hit iteration cap",
			"iterations", diag.SimulationIterations,
			"tables", a.len())
	}

	e.stage(StageMasonry, func() int {
		packClusters(a, clusters, b, settings)
		return 0
	})

	e.stage(StageOrphans, func() int {
		diag.Orphans = placeOrphans(a, b, settings)
		return 0
	})

	e.stage(StageOverlaps, func() int {
		diag.OverlapPasses, diag.OverlapsResolved = resolveOverlaps(a, settings)
		if shift := settleOrphans(a, settings); shift > 0 {
			e.logger.Debug("moved orphans below connected tables", "shift", shift)
		}
		return diag.OverlapPasses
	})
	if !diag.OverlapsResolved {
		e.logger.Warn("overlap resolution incomplete",
			"passes", diag.OverlapPasses,
			"tables", a.len())
	}

	var stats Statistics
	e.stage(StageStatistics, func() int {
		stats = score(a, settings, len(clusters), len(s.Relationships))
		return 0
	})

	diag.Duration = time.Since(start)
	e.logger.Debug("computed layout",
		"tables", stats.TotalTables,
		"clusters", stats.TotalClusters,
		"overlaps", stats.Overlaps,
		"efficiency", stats.LayoutEfficiency,
		"duration", diag.Duration)

	return Result{
		Tables:        exportTables(a, s.Tables),
		Relationships: append([]schema.Relationship{}, s.Relationships...),
		Clusters:      exportClusters(a, clusters),
		Bounds:        &b,
		Statistics:    &stats,
		Diagnostics:   diag,
	}
}

// stage runs fn, logs it at debug level and notifies the observer.
func (e *Engine) stage(name string, fn func() int) {
	start := time.Now()
	iterations := fn()
	ev := StageEvent{Stage: name, Duration: time.Since(start), Iterations: iterations}
	e.logger.Debug("layout stage", "stage", ev.Stage, "iterations", ev.Iterations, "duration", ev.Duration)
	if e.observer != nil {
		e.observer(ev)
	}
}

func exportTables(a *arena, tables []schema.Table) []PositionedTable {
	out := make([]PositionedTable, len(tables))
	for i, t := range tables {
		out[i] = PositionedTable{
			Table:  t,
			X:      a.pos[i].x,
			Y:      a.pos[i].y,
			Width:  a.dims[i].Width,
			Height: a.dims[i].Height,
		}
	}
	return out
}

// Calculate lays out a schema with default settings.
func Calculate(s schema.Schema, bounds Bounds) Result {
	return New().Calculate(s, bounds)
}
