package cache

import "github.com/matzehuels/erdlayout/pkg/layout"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the schema with the given
	// content hash.
	LayoutKey(schemaHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts holds every input besides the schema that affects a layout.
type LayoutKeyOpts struct {
	Bounds   layout.Bounds   `json:"bounds"`
	Settings layout.Settings `json:"settings"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>" over the schema hash and options.
func (DefaultKeyer) LayoutKey(schemaHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", schemaHash, opts)
}
