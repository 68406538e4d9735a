// Package cache memoizes serialized trend summaries per market segment.
// A summary is a pure function of its series, so cached values stay valid
// until the segment's series changes; writers invalidate with Delete.
package cache

// Cache is a string key/value store with explicit invalidation.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
