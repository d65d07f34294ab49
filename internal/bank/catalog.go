package bank

// Catalog is the immutable, validated item bank. It is created by Load and
// never mutated afterwards; presentation-time shuffling happens on copies.
type Catalog struct {
	levels  map[Level][]Item
	byID    map[string]Item
	byGroup map[string][]Item
}

// Items returns the items stored for a level, in bank order, or nil when the
// level has none. The returned slice is a copy; callers may reorder it freely.
func (c *Catalog) Items(lvl Level) []Item {
	items := c.levels[lvl]
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Item looks up an item by id. Returns nil if the id is unknown.
func (c *Catalog) Item(id string) Item {
	return c.byID[id]
}

// Group returns all items sharing a group id, in bank order. Returns nil if
// the group id is unknown.
func (c *Catalog) Group(groupID string) []Item {
	items := c.byGroup[groupID]
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Levels returns the CEFR bands that have at least one item, in ascending
// order.
func (c *Catalog) Levels() []Level {
	var out []Level
	for _, lvl := range AllLevels() {
		if len(c.levels[lvl]) > 0 {
			out = append(out, lvl)
		}
	}
	return out
}

// Len returns the total number of items across all levels.
func (c *Catalog) Len() int {
	return len(c.byID)
}
