// Package cache keeps the two most recently shown slide bitmaps. A
// transition draws the outgoing and incoming pages every frame, so both
// must stay resident; capacity is fixed at two.
package cache

import (
	"fmt"

	"github.com/yaklabco/pixdeck/pkg/canvas"
)

// Slots is the fixed cache capacity.
const Slots = 2

// RenderFunc paints page into bmp.
type RenderFunc func(page int, bmp *canvas.Bitmap) error

type slot struct {
	page  int
	valid bool
	bmp   *canvas.Bitmap
}

// Cache is a two-slot LRU of rendered pages. slots[0] is the least
// recently used entry.
type Cache struct {
	slots  [Slots]slot
	render RenderFunc
	misses int
}

// New allocates both slot bitmaps up front.
func New(width, height int, pal canvas.Palette, render RenderFunc) *Cache {
	c := &Cache{render: render}
	for i := range c.slots {
		c.slots[i].bmp = canvas.NewBitmap(width, height, pal)
	}
	return c
}

// Get returns the bitmap for page, rendering it into the least recently
// used slot on a miss.
func (c *Cache) Get(page int) (*canvas.Bitmap, error) {
	for i := range c.slots {
		if c.slots[i].valid && c.slots[i].page == page {
			c.touch(i)
			return c.slots[Slots-1].bmp, nil
		}
	}

	c.misses++
	victim := &c.slots[0]
	victim.valid = false
	if err := c.render(page, victim.bmp); err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	victim.page = page
	victim.valid = true
	c.touch(0)

	return c.slots[Slots-1].bmp, nil
}

// touch moves slot i to the most recently used position.
func (c *Cache) touch(i int) {
	entry := c.slots[i]
	copy(c.slots[i:], c.slots[i+1:])
	c.slots[Slots-1] = entry
}

// Resident reports whether page is cached.
func (c *Cache) Resident(page int) bool {
	for _, s := range c.slots {
		if s.valid && s.page == page {
			return true
		}
	}
	return false
}

// Pages returns the cached pages from least to most recently used.
func (c *Cache) Pages() []int {
	var pages []int
	for _, s := range c.slots {
		if s.valid {
			pages = append(pages, s.page)
		}
	}
	return pages
}

// Misses returns how many times Get rendered a page.
func (c *Cache) Misses() int {
	return c.misses
}

// Invalidate forgets every entry. The bitmaps are kept for reuse.
func (c *Cache) Invalidate() {
	for i := range c.slots {
		c.slots[i].valid = false
	}
}
