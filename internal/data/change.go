package data

// Change is the set of structural modifications a proxy accumulated since
// the graph last consumed them.
type Change uint16

const (
	ChangeArrayReset Change = 1 << iota
	ChangeRowsAdded
	ChangeRowsChanged
	ChangeRowsRemoved
	ChangeRowsInserted
	ChangeItemChanged
	ChangeRowCount
	ChangeColumnCount
	ChangeItemCount
)

// Structural reports whether primitives must be regenerated rather than
// repositioned.
func (c Change) Structural() bool {
	return c&(ChangeArrayReset|ChangeRowCount|ChangeColumnCount|ChangeItemCount) != 0
}

type changeSet struct {
	pending Change
}

func (c *changeSet) mark(ch Change) { c.pending |= ch }

// TakeChanges returns and clears the accumulated change set.
func (c *changeSet) TakeChanges() Change {
	ch := c.pending
	c.pending = 0
	return ch
}

// Pending reports the accumulated change set without clearing it.
func (c *changeSet) Pending() Change { return c.pending }
