// Package pipeline runs the load → layout stages shared by the CLI and the
// HTTP server, with caching.
//
// # Usage
//
//	runner := pipeline.NewRunner(layout.New(), fileCache, nil, logger)
//	res, err := runner.Execute(ctx, "schema.yaml", pipeline.Options{
//	    Width:  1600,
//	    Height: 900,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Layout.Statistics.LayoutEfficiency)
//
// Run a single stage when the schema is already in memory:
//
//	result, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, s, opts)
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/erdlayout/pkg/cache"
	"github.com/matzehuels/erdlayout/pkg/errors"
	"github.com/matzehuels/erdlayout/pkg/layout"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It is also the body of API layout
// requests, minus the schema.
type Options struct {
	Width    float64          `json:"width,omitempty"`
	Height   float64          `json:"height,omitempty"`
	Settings layout.Overrides `json:"settings"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the bounds and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	for _, v := range []struct {
		name  string
		value float64
	}{{"width", o.Width}, {"height", o.Height}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative number (got %v)", v.name, v.value)
		}
	}
	if o.Width == 0 {
		o.Width = layout.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = layout.DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Bounds returns the canvas size.
func (o *Options) Bounds() layout.Bounds {
	return layout.Bounds{Width: o.Width, Height: o.Height}
}

// LayoutKeyOpts returns the cache key options for the given effective
// settings.
func (o *Options) LayoutKeyOpts(settings layout.Settings) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Bounds: o.Bounds(), Settings: settings}
}

// =============================================================================
// Result
// =============================================================================

// Result is the output of Execute.
type Result struct {
	Layout     layout.Result
	SchemaHash string
	Stats      Stats
	CacheInfo  CacheInfo
}

// Stats holds timings and sizes.
type Stats struct {
	TableCount        int
	RelationshipCount int
	DanglingCount     int
	LoadTime          time.Duration
	LayoutTime        time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
}
