package layout

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/erdlayout/pkg/errors"
)

// =============================================================================
// Settings - Engine Configuration
// =============================================================================

// Settings tunes the layout pipeline. All distances are in canvas units.
type Settings struct {
	MinTableDistance      float64 `json:"min_table_distance" toml:"min_table_distance" bson:"min_table_distance"`
	MinConnectionDistance float64 `json:"min_connection_distance" toml:"min_connection_distance" bson:"min_connection_distance"`
	GridSize              float64 `json:"grid_size" toml:"grid_size" bson:"grid_size"` // reserved
	MaxIterations         int     `json:"max_iterations" toml:"max_iterations" bson:"max_iterations"`
	ForceStrength         float64 `json:"force_strength" toml:"force_strength" bson:"force_strength"` // reserved
	DampingFactor         float64 `json:"damping_factor" toml:"damping_factor" bson:"damping_factor"`
	RepulsionForce        float64 `json:"repulsion_force" toml:"repulsion_force" bson:"repulsion_force"`
	AttractionForce       float64 `json:"attraction_force" toml:"attraction_force" bson:"attraction_force"`
	BoundaryPadding       float64 `json:"boundary_padding" toml:"boundary_padding" bson:"boundary_padding"`
	ClusterSeparation     float64 `json:"cluster_separation" toml:"cluster_separation" bson:"cluster_separation"`
	OrphanPadding         float64 `json:"orphan_padding" toml:"orphan_padding" bson:"orphan_padding"`

	// CountCrossings enables relationship crossing detection in the
	// statistics. When false the crossings statistic is always 0.
	CountCrossings bool `json:"count_crossings" toml:"count_crossings" bson:"count_crossings"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		MinTableDistance:      60,
		MinConnectionDistance: 40,
		GridSize:              20,
		MaxIterations:         100,
		ForceStrength:         0.9,
		DampingFactor:         0.85,
		RepulsionForce:        5000,
		AttractionForce:       0.1,
		BoundaryPadding:       50,
		ClusterSeparation:     90,
		OrphanPadding:         100,
	}
}

// Validate checks that every setting is finite and within range.
func (s Settings) Validate() error {
	nonNegative := []struct {
		key   string
		value float64
	}{
		{"min_table_distance", s.MinTableDistance},
		{"min_connection_distance", s.MinConnectionDistance},
		{"grid_size", s.GridSize},
		{"force_strength", s.ForceStrength},
		{"repulsion_force", s.RepulsionForce},
		{"attraction_force", s.AttractionForce},
		{"boundary_padding", s.BoundaryPadding},
		{"cluster_separation", s.ClusterSeparation},
		{"orphan_padding", s.OrphanPadding},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.New(errors.ErrCodeInvalidSettings, "%s must be finite", f.key)
		}
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidSettings, "%s must not be negative (got %v)", f.key, f.value)
		}
	}
	if s.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidSettings, "max_iterations must not be negative (got %d)", s.MaxIterations)
	}
	if math.IsNaN(s.DampingFactor) || s.DampingFactor <= 0 || s.DampingFactor > 1 {
		return errors.New(errors.ErrCodeInvalidSettings, "damping_factor must be in (0, 1] (got %v)", s.DampingFactor)
	}
	return nil
}

// =============================================================================
// Overrides - Partial Settings
// =============================================================================

// Overrides is a partial Settings record. Nil fields leave the base value
// untouched when merged.
type Overrides struct {
	MinTableDistance      *float64 `json:"min_table_distance,omitempty" toml:"min_table_distance"`
	MinConnectionDistance *float64 `json:"min_connection_distance,omitempty" toml:"min_connection_distance"`
	GridSize              *float64 `json:"grid_size,omitempty" toml:"grid_size"`
	MaxIterations         *int     `json:"max_iterations,omitempty" toml:"max_iterations"`
	ForceStrength         *float64 `json:"force_strength,omitempty" toml:"force_strength"`
	DampingFactor         *float64 `json:"damping_factor,omitempty" toml:"damping_factor"`
	RepulsionForce        *float64 `json:"repulsion_force,omitempty" toml:"repulsion_force"`
	AttractionForce       *float64 `json:"attraction_force,omitempty" toml:"attraction_force"`
	BoundaryPadding       *float64 `json:"boundary_padding,omitempty" toml:"boundary_padding"`
	ClusterSeparation     *float64 `json:"cluster_separation,omitempty" toml:"cluster_separation"`
	OrphanPadding         *float64 `json:"orphan_padding,omitempty" toml:"orphan_padding"`
	CountCrossings        *bool    `json:"count_crossings,omitempty" toml:"count_crossings"`
}

// Merge returns s with every non-nil override applied. Later overrides win.
func (s Settings) Merge(overrides ...Overrides) Settings {
	for _, o := range overrides {
		setFloat(&s.MinTableDistance, o.MinTableDistance)
		setFloat(&s.MinConnectionDistance, o.MinConnectionDistance)
		setFloat(&s.GridSize, o.GridSize)
		if o.MaxIterations != nil {
			s.MaxIterations = *o.MaxIterations
		}
		setFloat(&s.ForceStrength, o.ForceStrength)
		setFloat(&s.DampingFactor, o.DampingFactor)
		setFloat(&s.RepulsionForce, o.RepulsionForce)
		setFloat(&s.AttractionForce, o.AttractionForce)
		setFloat(&s.BoundaryPadding, o.BoundaryPadding)
		setFloat(&s.ClusterSeparation, o.ClusterSeparation)
		setFloat(&s.OrphanPadding, o.OrphanPadding)
		if o.CountCrossings != nil {
			s.CountCrossings = *o.CountCrossings
		}
	}
	return s
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

// =============================================================================
// TOML Settings Files
// =============================================================================

// DecodeOverrides parses TOML settings. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func DecodeOverrides(data []byte) (Overrides, error) {
	var o Overrides
	md, err := toml.Decode(string(data), &o)
	if err != nil {
		return Overrides{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Overrides{}, errors.New(errors.ErrCodeInvalidSettings, "unknown settings: %s", strings.Join(keys, ", "))
	}
	return o, nil
}

// LoadSettingsFile reads a TOML settings file.
func LoadSettingsFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read settings %s", path)
		}
		return Overrides{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	return DecodeOverrides(data)
}

// WriteTOML encodes the full settings record as TOML.
func (s Settings) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// TOML returns the settings encoded as TOML.
func (s Settings) TOML() (string, error) {
	var buf bytes.Buffer
	if err := s.WriteTOML(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
