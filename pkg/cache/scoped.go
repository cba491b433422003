package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving callers separate
// namespaces in a shared backend.
//
//	versioned := NewScopedKeyer(NewDefaultKeyer(), "erdlayout:v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls back
// to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(schemaHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(schemaHash, opts)
}
