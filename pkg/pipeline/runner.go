package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/erdlayout/pkg/cache"
	"github.com/matzehuels/erdlayout/pkg/layout"
	"github.com/matzehuels/erdlayout/pkg/observability"
	"github.com/matzehuels/erdlayout/pkg/schema"
)

const keyTypeLayout = "layout"

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner serves concurrent requests.
//
// Engine owns the base settings; per-run overrides in Options are merged on
// top of a snapshot and never change the Engine.
type Runner struct {
	Engine *layout.Engine
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. Nil arguments fall back to a default engine,
// a NullCache, a DefaultKeyer and the default logger.
func NewRunner(engine *layout.Engine, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = layout.New(layout.WithLogger(logger))
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{Engine: engine, Cache: c, Keyer: keyer, Logger: logger}
}

// Execute loads the schema at path and lays it out.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	s, err := LoadSchema(path)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	res.Stats.LoadTime = time.Since(loadStart)
	res.Stats.TableCount = len(s.Tables)
	res.Stats.RelationshipCount = len(s.Relationships)

	dangling := s.DanglingRelationships()
	res.Stats.DanglingCount = len(dangling)
	for _, rel := range dangling {
		r.Logger.Warn("relationship references unknown table", "relationship", rel.String())
	}

	r.Logger.Info("loaded schema",
		"path", path,
		"tables", res.Stats.TableCount,
		"relationships", res.Stats.RelationshipCount,
		"duration", res.Stats.LoadTime)

	layoutStart := time.Now()
	result, hit, err := r.ComputeLayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	res.Layout = result
	res.SchemaHash = SchemaHash(s)
	res.Stats.LayoutTime = time.Since(layoutStart)
	res.CacheInfo.LayoutHit = hit
	return res, nil
}

// EffectiveSettings returns the engine settings with the overrides applied,
// validated.
func (r *Runner) EffectiveSettings(o layout.Overrides) (layout.Settings, error) {
	settings := r.Engine.Settings().Merge(o)
	if err := settings.Validate(); err != nil {
		return layout.Settings{}, err
	}
	return settings, nil
}

// ComputeLayoutWithCacheInfo lays out s and reports whether the result came
// from the cache. Cache failures are logged and treated as misses.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, s schema.Schema, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Result{}, false, err
	}
	settings, err := r.EffectiveSettings(opts.Settings)
	if err != nil {
		return layout.Result{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return layout.Result{}, false, err
	}

	hooks := observability.Layout()
	cacheHooks := observability.Cache()
	start := time.Now()
	hooks.OnLayoutStart(ctx, len(s.Tables))

	key := r.Keyer.LayoutKey(SchemaHash(s), opts.LayoutKeyOpts(settings))

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			cacheHooks.OnCacheError(ctx, keyTypeLayout, err)
			r.Logger.Warn("cache lookup failed", "err", err)
		case hit:
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cacheHooks.OnCacheHit(ctx, keyTypeLayout)
				r.Logger.Debug("layout cache hit", "key", key)
				hooks.OnLayoutComplete(ctx, summarize(cached, true), time.Since(start), nil)
				return cached, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "key", key)
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeLayout)
	}

	engine := layout.New(
		layout.WithSettings(settings),
		layout.WithLogger(opts.Logger),
		layout.WithObserver(func(ev layout.StageEvent) {
			hooks.OnStage(ctx, ev.Stage, ev.Iterations, ev.Duration)
		}),
	)
	result := engine.Calculate(s, opts.Bounds())

	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			cacheHooks.OnCacheError(ctx, keyTypeLayout, err)
			r.Logger.Warn("cache store failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	if d := result.Diagnostics; d != nil {
		r.Logger.Debug("layout diagnostics",
			"iterations", d.SimulationIterations,
			"converged", d.Converged,
			"overlap_passes", d.OverlapPasses,
			"orphans", d.Orphans)
	}
	hooks.OnLayoutComplete(ctx, summarize(result, false), time.Since(start), nil)
	return result, false, nil
}

// ComputeLayout calls ComputeLayoutWithCacheInfo and discards the cache info.
func (r *Runner) ComputeLayout(ctx context.Context, s schema.Schema, opts Options) (layout.Result, error) {
	result, _, err := r.ComputeLayoutWithCacheInfo(ctx, s, opts)
	return result, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// SchemaHash returns the content hash of s used in cache keys.
func SchemaHash(s schema.Schema) string {
	data, _ := schema.Marshal(s)
	return cache.Hash(data)
}

func summarize(r layout.Result, hit bool) observability.LayoutSummary {
	sum := observability.LayoutSummary{Tables: len(r.Tables), CacheHit: hit}
	if st := r.Statistics; st != nil {
		sum.Clusters = st.TotalClusters
		sum.Overlaps = st.Overlaps
		sum.Efficiency = st.LayoutEfficiency
	}
	return sum
}
