package store

// collection keeps records keyed by id while preserving insertion order.
type collection[T any] struct {
	order []string
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) len() int {
	return len(c.order)
}

// put stores v under id. Existing records keep their position.
func (c *collection[T]) put(id string, v T) (prev T, existed bool) {
	prev, existed = c.items[id]
	if !existed {
		c.order = append(c.order, id)
	}
	c.items[id] = v
	return prev, existed
}

// remove deletes id and returns the record and its former position.
func (c *collection[T]) remove(id string) (T, int, bool) {
	v, ok := c.items[id]
	if !ok {
		return v, -1, false
	}
	delete(c.items, id)
	idx := c.indexOf(id)
	if idx >= 0 {
		c.order = append(c.order[:idx], c.order[idx+1:]...)
	}
	return v, idx, true
}

// insertAt restores a removed record at its former position.
func (c *collection[T]) insertAt(idx int, id string, v T) {
	if _, exists := c.items[id]; exists {
		c.items[id] = v
		return
	}
	if idx < 0 || idx > len(c.order) {
		idx = len(c.order)
	}
	c.order = append(c.order, "")
	copy(c.order[idx+1:], c.order[idx:])
	c.order[idx] = id
	c.items[id] = v
}

func (c *collection[T]) indexOf(id string) int {
	for i, candidate := range c.order {
		if candidate == id {
			return i
		}
	}
	return -1
}

// list returns records in insertion order, keeping those accepted by keep (all when nil).
func (c *collection[T]) list(keep func(T) bool) []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		v := c.items[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (c *collection[T]) reset(ids []string, values []T) {
	c.order = make([]string, 0, len(ids))
	c.items = make(map[string]T, len(ids))
	for i, id := range ids {
		c.put(id, values[i])
	}
}
