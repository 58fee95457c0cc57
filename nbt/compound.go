package nbt

import "iter"

// Compound is an ordered mapping from tag name to Tag. Names are unique within
// one compound and insertion order is preserved, matching the wire order of a
// decoded compound.
type Compound struct {
	names []string
	tags  []Tag
	index map[string]int
}

// NewCompound creates an empty compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.names) }

// Set inserts or replaces the tag stored under name. Replacing keeps the
// original insertion position.
func (c *Compound) Set(name string, t Tag) {
	if i, ok := c.index[name]; ok {
		c.tags[i] = t
		return
	}

	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	c.tags = append(c.tags, t)
}

// Get returns the tag stored under name.
func (c *Compound) Get(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return Tag{}, false
	}

	return c.tags[i], true
}

// Has reports whether an entry named name exists.
func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Names returns the entry names in insertion order. The returned slice is
// owned by the compound and must not be modified.
func (c *Compound) Names() []string { return c.names }

// All iterates entries in insertion order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for i, name := range c.names {
			if !yield(name, c.tags[i]) {
				return
			}
		}
	}
}

// GetByte returns the TagByte entry named name.
func (c *Compound) GetByte(name string) (int8, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}

	return t.Byte()
}

// GetInt returns the TagInt entry named name.
func (c *Compound) GetInt(name string) (int32, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}

	return t.Int()
}

// GetInt64 returns any signed-integer entry named name widened to int64.
func (c *Compound) GetInt64(name string) (int64, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}

	return t.AsInt64()
}

// GetString returns the TagString entry named name.
func (c *Compound) GetString(name string) (string, bool) {
	t, ok := c.Get(name)
	if !ok {
		return "", false
	}

	return t.Str()
}

// GetList returns the elements of the TagList entry named name.
func (c *Compound) GetList(name string) ([]Tag, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}

	return t.List()
}

// GetCompound returns the TagCompound entry named name.
func (c *Compound) GetCompound(name string) (*Compound, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}

	return t.Compound()
}

// GetLongArray returns the TagLongArray entry named name.
func (c *Compound) GetLongArray(name string) ([]int64, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}

	return t.LongArray()
}
