package metadata

import (
	"sync"
	"sync/atomic"

	"github.com/okian/tunify/internal/domain/types"
)

const defaultCacheSize = 10_000

// result is a cached lookup outcome. found is false for a confirmed miss.
type result struct {
	meta  types.Metadata
	found bool
}

type node struct {
	key        string
	val        result
	prev, next *node
}

func (n *node) reset() {
	n.key = ""
	n.val = result{}
	n.prev = nil
	n.next = nil
}

// Cache is a bounded map of lookup results. When full, the oldest inserted
// entry is evicted. maxSize <= 0 disables eviction.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*node
	head     *node // newest
	tail     *node // oldest
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// NewCache creates a cache holding at most maxSize results.
func NewCache(maxSize int) *Cache {
	return &Cache{
		entries: make(map[string]*node),
		maxSize: maxSize,
		nodePool: sync.Pool{
			New: func() any { return &node{} },
		},
	}
}

// Get returns the cached result for key.
func (c *Cache) Get(key string) (types.Metadata, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[key]
	if !ok {
		return types.Metadata{}, false, false
	}
	return n.val.meta, n.val.found, true
}

// Put records a result for key, replacing any previous value in place.
func (c *Cache) Put(key string, meta types.Metadata, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.val = result{meta: meta, found: found}
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	n := c.nodePool.Get().(*node)
	n.key = key
	n.val = result{meta: meta, found: found}
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.entries[key] = n
	c.size.Add(1)
}

// evictOldest must be called with c.mu held.
func (c *Cache) evictOldest() {
	n := c.tail
	if n == nil {
		return
	}
	c.tail = n.prev
	if c.tail != nil {
		c.tail.next = nil
	} else {
		c.head = nil
	}
	delete(c.entries, n.key)
	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
}

// Len returns the number of cached results.
func (c *Cache) Len() int64 { return c.size.Load() }
