// internal/render/cache.go
package render

import (
	"image"

	"github.com/xkilldash9x/onegui/internal/component"
)

// Stats counts cache decisions since the cache was created.
type Stats struct {
	Hits      int `json:"hits" yaml:"hits"`
	Misses    int `json:"misses" yaml:"misses"`
	Evictions int `json:"evictions" yaml:"evictions"`
}

type entry struct {
	state State
	img   *image.RGBA
	gen   uint64
}

// Cache holds the last rendered image and state of each component.
// It is owned by one Pipeline and is not safe for concurrent use.
type Cache struct {
	entries map[component.ID]*entry
	gen     uint64
	stats   Stats
}

func NewCache() *Cache {
	return &Cache{entries: make(map[component.ID]*entry)}
}

// begin starts a pass. Entries not touched before sweep are considered stale.
func (c *Cache) begin() {
	c.gen++
}

// lookup returns the cached image when both the state and the size still match.
func (c *Cache) lookup(id component.ID, state State, width, height int) (*image.RGBA, bool) {
	e, ok := c.entries[id]
	if ok {
		e.gen = c.gen
	}
	if !ok || e.img == nil || e.state == nil || !e.state.Equal(state) {
		c.stats.Misses++
		return nil, false
	}
	if b := e.img.Bounds(); b.Dx() != width || b.Dy() != height {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.img, true
}

func (c *Cache) store(id component.ID, state State, img *image.RGBA) {
	c.entries[id] = &entry{state: state, img: img, gen: c.gen}
}

// touch keeps an entry alive for this pass without counting a lookup.
func (c *Cache) touch(id component.ID) {
	if e, ok := c.entries[id]; ok {
		e.gen = c.gen
	}
}

// Image returns the last image rendered for id.
func (c *Cache) Image(id component.ID) (*image.RGBA, bool) {
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return e.img, e.img != nil
}

// Evict drops the entries of the given components.
func (c *Cache) Evict(ids []component.ID) {
	for _, id := range ids {
		if _, ok := c.entries[id]; ok {
			delete(c.entries, id)
			c.stats.Evictions++
		}
	}
}

// sweep drops every entry not touched since the last begin and returns how many went.
func (c *Cache) sweep() int {
	n := 0
	for id, e := range c.entries {
		if e.gen != c.gen {
			delete(c.entries, id)
			n++
		}
	}
	c.stats.Evictions += n
	return n
}

func (c *Cache) Len() int { return len(c.entries) }

func (c *Cache) Stats() Stats { return c.stats }
