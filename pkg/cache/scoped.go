package cache

// ScopedKeyer prefixes every key of an inner Keyer. Servers sharing one
// Redis use it to keep their namespaces apart:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "indexflow:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner; a nil inner means the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) GraphKey(bundleHash string) string {
	return k.prefix + k.inner.GraphKey(bundleHash)
}

func (k *ScopedKeyer) DiagramKey(graphHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(graphHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
