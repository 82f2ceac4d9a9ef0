package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get
// separate cache namespaces. The serve mode scopes keys per workspace,
// which keeps one session's renders from colliding with another's when
// they share a redis or mongo backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RecordKey generates a prefixed key for record caching.
func (k *ScopedKeyer) RecordKey(sourceHash string) string {
	return k.prefix + k.inner.RecordKey(sourceHash)
}

// ModelKey generates a prefixed key for draw model caching.
func (k *ScopedKeyer) ModelKey(recordHash string, opts ModelKeyOpts) string {
	return k.prefix + k.inner.ModelKey(recordHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(modelHash, opts)
}
