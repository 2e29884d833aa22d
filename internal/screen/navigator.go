package screen

import "sync"

// Navigator holds the active screen. It starts at Home and only changes via
// Apply.
type Navigator struct {
	mu      sync.RWMutex
	table   *Table
	current ID
}

// NewNavigator returns a navigator at Home. A nil table means DefaultTable.
func NewNavigator(table *Table) *Navigator {
	if table == nil {
		table = DefaultTable()
	}
	return &Navigator{table: table, current: Home}
}

func (n *Navigator) Current() ID {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

func (n *Navigator) Table() *Table { return n.table }

// Apply consumes one key and returns the screen before and after it.
// Callers redraw when prev != next.
func (n *Navigator) Apply(k Key) (prev, next ID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	prev = n.current
	n.current = n.table.Apply(prev, k)
	return prev, n.current
}
