package bank

import "fmt"

// ItemError describes a validation failure for one item. Loading is
// fail-fast: the first ItemError aborts the whole load and no partial
// catalog is returned.
type ItemError struct {
	ItemID string // offending item id, or the level key if the id is unusable
	Field  string // offending field
	Reason string // human-readable constraint description
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %q: field %q: %s", e.ItemID, e.Field, e.Reason)
}

func itemErr(id, field, format string, args ...any) *ItemError {
	return &ItemError{ItemID: id, Field: field, Reason: fmt.Sprintf(format, args...)}
}
