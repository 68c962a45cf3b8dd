package cache

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys to
// the build version.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Version+"/")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PointsKey implements Keyer.
func (k *ScopedKeyer) PointsKey(setHash string, opts PointsKeyOpts) string {
	return k.prefix + k.inner.PointsKey(setHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(pointsHash, opts)
}
