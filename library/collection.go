package library

// collection keeps entries in insertion order with a key index pointing at
// the first entry for each key.
type collection[K comparable, V any] struct {
	items []*V
	index map[K]int
	key   func(*V) K
}

func newCollection[K comparable, V any](key func(*V) K) *collection[K, V] {
	return &collection[K, V]{index: make(map[K]int), key: key}
}

func (c *collection[K, V]) len() int { return len(c.items) }

func (c *collection[K, V]) has(k K) bool {
	_, ok := c.index[k]
	return ok
}

func (c *collection[K, V]) get(k K) (*V, bool) {
	i, ok := c.index[k]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}

func (c *collection[K, V]) add(v *V) {
	c.items = append(c.items, v)
	if k := c.key(v); !c.has(k) {
		c.index[k] = len(c.items) - 1
	}
}

// remove drops the first entry with key k.
func (c *collection[K, V]) remove(k K) (*V, bool) {
	i, ok := c.index[k]
	if !ok {
		return nil, false
	}
	v := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
	return v, true
}

func (c *collection[K, V]) reindex() {
	clear(c.index)
	for i, v := range c.items {
		if k := c.key(v); !c.has(k) {
			c.index[k] = i
		}
	}
}

// snapshot copies every entry by value, in insertion order.
func (c *collection[K, V]) snapshot() []V {
	out := make([]V, 0, len(c.items))
	for _, v := range c.items {
		out = append(out, *v)
	}
	return out
}
