package layout

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/erdlayout/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("DefaultSettings().Validate() = %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		want   string
	}{
		{"NegativeDistance", func(s *Settings) { s.MinTableDistance = -1 }, "min_table_distance"},
		{"NaNRepulsion", func(s *Settings) { s.RepulsionForce = math.NaN() }, "repulsion_force"},
		{"InfinitePadding", func(s *Settings) { s.BoundaryPadding = math.Inf(1) }, "boundary_padding"},
		{"NegativeIterations", func(s *Settings) { s.MaxIterations = -5 }, "max_iterations"},
		{"ZeroDamping", func(s *Settings) { s.DampingFactor = 0 }, "damping_factor"},
		{"DampingAboveOne", func(s *Settings) { s.DampingFactor = 1.5 }, "damping_factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidSettings) {
				t.Fatalf("Validate() = %v, want INVALID_SETTINGS", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not name %s", err, tt.want)
			}
		})
	}

	s := DefaultSettings()
	s.DampingFactor = 1
	s.MaxIterations = 0
	if err := s.Validate(); err != nil {
		t.Errorf("boundary values rejected: %v", err)
	}
}

func TestSettingsMerge(t *testing.T) {
	base := DefaultSettings()

	got := base.Merge(
		Overrides{MinTableDistance: ptr(10.0), MaxIterations: ptr(50)},
		Overrides{MinTableDistance: ptr(20.0), CountCrossings: ptr(true)},
	)

	want := base
	want.MinTableDistance = 20
	want.MaxIterations = 50
	want.CountCrossings = true
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
	if base.MinTableDistance != 60 {
		t.Errorf("Merge modified receiver: %v", base.MinTableDistance)
	}
	if base.Merge() != base {
		t.Error("Merge without overrides changed settings")
	}
}

func TestOverridesIsEmpty(t *testing.T) {
	if !(Overrides{}).IsEmpty() {
		t.Error("zero Overrides not empty")
	}
	if (Overrides{GridSize: ptr(0.0)}).IsEmpty() {
		t.Error("Overrides with explicit zero reported empty")
	}
}

func TestDecodeOverrides(t *testing.T) {
	o, err := DecodeOverrides([]byte("min_table_distance = 80\nmax_iterations = 250\ncount_crossings = true\n"))
	if err != nil {
		t.Fatalf("DecodeOverrides: %v", err)
	}
	got := DefaultSettings().Merge(o)
	if got.MinTableDistance != 80 || got.MaxIterations != 250 || !got.CountCrossings {
		t.Errorf("decoded settings = %+v", got)
	}
	if o.RepulsionForce != nil {
		t.Errorf("unset key decoded: %v", *o.RepulsionForce)
	}
}

func TestDecodeOverridesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"UnknownKey", "min_table_distanse = 80\n"},
		{"Syntax", "min_table_distance = \n"},
		{"WrongType", "max_iterations = \"many\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOverrides([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidSettings) {
				t.Errorf("DecodeOverrides = %v, want INVALID_SETTINGS", err)
			}
		})
	}
}

func TestSettingsTOMLRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.CountCrossings = true
	s.AttractionForce = 0.25

	text, err := s.TOML()
	if err != nil {
		t.Fatalf("TOML: %v", err)
	}
	o, err := DecodeOverrides([]byte(text))
	if err != nil {
		t.Fatalf("DecodeOverrides: %v", err)
	}
	if got := (Settings{}).Merge(o); got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(path, []byte("orphan_padding = 150\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	if o.OrphanPadding == nil || *o.OrphanPadding != 150 {
		t.Errorf("OrphanPadding = %v, want 150", o.OrphanPadding)
	}

	_, err = LoadSettingsFile(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
