package scene

import "sync"

// Heightmap is a decoded heightmap: w×h samples in [0, 1], row-major.
type Heightmap struct {
	W, H    int
	Samples []float64
}

// HeightmapCache is a concurrency-safe heightmap cache keyed by path.
// Cached sample slices are shared and must not be modified.
type HeightmapCache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	load  func(path string) (w, h int, samples []float64, err error)
}

type cacheEntry struct {
	hm  Heightmap
	err error
}

// NewHeightmapCache creates an empty cache that decodes with LoadHeightmap.
func NewHeightmapCache() *HeightmapCache {
	return &HeightmapCache{
		items: make(map[string]*cacheEntry),
		load:  LoadHeightmap,
	}
}

// Get loads and caches a heightmap. Failed loads are cached too.
func (c *HeightmapCache) Get(path string) (Heightmap, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.hm, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	w, h, samples, err := c.load(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.hm, entry.err
	}
	entry := &cacheEntry{hm: Heightmap{W: w, H: h, Samples: samples}, err: err}
	c.items[path] = entry
	return entry.hm, entry.err
}

// Len reports the number of cached paths.
func (c *HeightmapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
