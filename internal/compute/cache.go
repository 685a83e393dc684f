package compute

import (
	"container/list"
	"sync"

	"github.com/hashicorp/hcl/v2/hclsyntax"
)

const defaultCacheSize = 256

type cacheEntry struct {
	key  string
	expr hclsyntax.Expression
}

// cache is an LRU of parsed expressions keyed by their source text.
//
// Safe for concurrent use.
type cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

func newCache(capacity int) *cache {
	if capacity <= 0 {
		capacity = defaultCacheSize
	}
	return &cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func (c *cache) get(key string) (hclsyntax.Expression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).expr, true
}

func (c *cache) set(key string, expr hclsyntax.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).expr = expr
		c.ll.MoveToFront(el)
		return
	}
	if c.ll.Len() >= c.capacity {
		if oldest := c.ll.Back(); oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
	c.items[key] = c.ll.PushFront(&cacheEntry{key: key, expr: expr})
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
