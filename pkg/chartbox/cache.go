package chartbox

import (
	"container/list"
	"fmt"
	"sync"
)

// ChartTileCache holds loaded *ChartBox tiles in memory with an LRU
// eviction policy, bounded by an approximate memory budget. It lets a
// Catalog-backed application load tiles lazily on demand instead of
// holding every tile in the region resident at once.
type ChartTileCache struct {
	maxMemory  int64
	usedMemory int64
	tiles      map[string]*tileCacheEntry
	lru        *list.List
	mu         sync.RWMutex
}

type tileCacheEntry struct {
	key        string
	tile       *ChartBox
	memorySize int64
	element    *list.Element
	hits       int
}

// NewChartTileCache returns a cache bounded by maxMemoryBytes. A limit of
// 0 means unlimited.
func NewChartTileCache(maxMemoryBytes int64) *ChartTileCache {
	return &ChartTileCache{
		maxMemory: maxMemoryBytes,
		tiles:     make(map[string]*tileCacheEntry),
		lru:       list.New(),
	}
}

// Get returns the tile for key, calling loader on a cache miss and
// caching its result. A loaded tile too large for the memory budget is
// returned but not cached.
func (c *ChartTileCache) Get(key string, loader func() (*ChartBox, error)) (*ChartBox, error) {
	c.mu.RLock()
	if entry, ok := c.tiles[key]; ok {
		c.mu.RUnlock()
		c.mu.Lock()
		entry.hits++
		c.lru.MoveToFront(entry.element)
		c.mu.Unlock()
		return entry.tile, nil
	}
	c.mu.RUnlock()

	tile, err := loader()
	if err != nil {
		return nil, fmt.Errorf("load tile %s: %w", key, err)
	}

	if err := c.Add(key, tile); err != nil {
		return tile, nil
	}
	return tile, nil
}

// Add inserts tile under key, evicting least-recently-used tiles until
// it fits within the memory budget.
func (c *ChartTileCache) Add(key string, tile *ChartBox) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.tiles[key]; ok {
		entry.tile = tile
		entry.hits++
		c.lru.MoveToFront(entry.element)
		return nil
	}

	size := estimateTileMemory(tile)
	if c.maxMemory > 0 && size > c.maxMemory {
		return fmt.Errorf("tile %s too large for cache (%d bytes > %d bytes max)", key, size, c.maxMemory)
	}

	if c.maxMemory > 0 {
		for c.usedMemory+size > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &tileCacheEntry{key: key, tile: tile, memorySize: size, hits: 1}
	entry.element = c.lru.PushFront(entry)
	c.tiles[key] = entry
	c.usedMemory += size
	return nil
}

// evictLRU removes the least-recently-used tile. Must be called with
// c.mu held.
func (c *ChartTileCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*tileCacheEntry)
	c.lru.Remove(elem)
	delete(c.tiles, entry.key)
	c.usedMemory -= entry.memorySize
}

// Remove explicitly evicts key.
func (c *ChartTileCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.tiles[key]; ok {
		c.lru.Remove(entry.element)
		delete(c.tiles, key)
		c.usedMemory -= entry.memorySize
	}
}

// Clear empties the cache.
func (c *ChartTileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tiles = make(map[string]*tileCacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// CacheStats summarizes a ChartTileCache's current state.
type CacheStats struct {
	TileCount   int
	UsedMemory  int64
	MaxMemory   int64
	TotalAccess int
}

// Stats returns the cache's current statistics.
func (c *ChartTileCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, entry := range c.tiles {
		total += entry.hits
	}
	return CacheStats{
		TileCount:   len(c.tiles),
		UsedMemory:  c.usedMemory,
		MaxMemory:   c.maxMemory,
		TotalAccess: total,
	}
}

// estimateTileMemory approximates a ChartBox's resident memory: one
// Sector-sized byte array per role layer, plus fixed overhead.
func estimateTileMemory(tile *ChartBox) int64 {
	if tile == nil {
		return 0
	}
	size := int64(512)
	for _, layer := range tile.layers {
		size += int64(layer.Side()) * int64(layer.Side())
	}
	return size
}
