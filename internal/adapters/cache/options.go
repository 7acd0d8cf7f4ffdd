package cache

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithMaxEntries bounds the number of cached entries. Values <= 0 are ignored.
func WithMaxEntries(n int) Option {
	return func(c *inMemoryCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}
