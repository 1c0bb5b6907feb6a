package wavefront

// The identity of a shared vertex record: its source attribute indices.
type vertexKey struct {
	v, t, n int32
}

// vertexCache maps source index triples to emitted vertex records for a
// single mesh. Two corners share a record only when they reference the same
// triple; attribute values are never compared.
type vertexCache struct {
	index map[vertexKey]uint32
}

// Drop all cached entries while keeping the allocated map.
func (c *vertexCache) reset() {
	if c.index == nil {
		c.index = make(map[vertexKey]uint32)
		return
	}
	for k := range c.index {
		delete(c.index, k)
	}
}

// Lookup the record for c. If none exists, next is registered for it and
// the second result is false.
func (c *vertexCache) lookupOrAdd(cr corner, next uint32) (uint32, bool) {
	key := vertexKey{cr.v, cr.t, cr.n}
	if idx, exists := c.index[key]; exists {
		return idx, true
	}
	c.index[key] = next
	return next, false
}
