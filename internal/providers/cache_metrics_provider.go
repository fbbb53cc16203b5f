package providers

import "posterd/internal/structures"

// InstrumentedCache counts hits and misses of the wrapped cache. Writes and
// invalidations pass through uncounted.
type InstrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *InstrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *InstrumentedCache) Set(key string, value []byte) { c.inner.Set(key, value) }

func (c *InstrumentedCache) Del(key string) { c.inner.Del(key) }

// NewInstrumentedCacheProvider returns the response cache used by the API
// controller. A disabled cache is returned bare so it reports no misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &InstrumentedCache{inner: inner, metrics: metrics}
}
