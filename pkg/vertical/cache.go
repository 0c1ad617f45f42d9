package vertical

// Cache memoizes profiles for a single simulation tick. It is not safe for
// concurrent use; each tick loop owns its own cache.
type Cache struct {
	tick    uint64
	entries map[cacheKey]Profile
}

type cacheKey struct {
	id  uint64
	pos Cell
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]Profile)}
}

// Profile returns the cached profile of t at pos for tick, computing it on a miss.
// Moving to a new tick drops every entry of the previous one.
func (c *Cache) Profile(scene Scene, t Thing, pos Cell, tick uint64) Profile {
	if tick != c.tick {
		clear(c.entries)
		c.tick = tick
	}
	key := cacheKey{id: t.ID, pos: pos}
	if p, ok := c.entries[key]; ok {
		return p
	}
	p := Compute(scene, t, pos)
	c.entries[key] = p
	return p
}

func (c *Cache) Len() int {
	return len(c.entries)
}
