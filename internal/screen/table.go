package screen

import "fmt"

// ReturnHomeKey is the key that brings every non-home screen back to Home
// in the default table. Builds of the board firmware differ here (some use
// Main); NewTable takes it as a parameter.
const ReturnHomeKey = Cancel

type cell struct {
	from ID
	key  Key
}

// Shortcut is an extra transition laid over a cell that is a no-op in the
// base table.
type Shortcut struct {
	From ID
	Key  Key
	To   ID
}

// Table is a total transition function over (screen, key). Cells without an
// entry are no-ops. A Table is immutable after construction.
type Table struct {
	returnHome Key
	cells      map[cell]ID
}

var defaultTable = NewTable(ReturnHomeKey)

// DefaultTable returns the table built with ReturnHomeKey and no shortcuts.
func DefaultTable() *Table { return defaultTable }

// NewTable builds the base transitions with the given return-home key.
// Shortcuts may only fill cells that are otherwise no-ops; a shortcut that
// targets an already defined cell or an unknown screen is ignored.
func NewTable(returnHome Key, shortcuts ...Shortcut) *Table {
	t := &Table{returnHome: returnHome, cells: map[cell]ID{
		{Home, Ok}:     Menu,
		{Home, Cancel}: SystemInfo,
	}}
	for _, id := range All {
		if id == Home {
			continue
		}
		t.cells[cell{id, returnHome}] = Home
	}
	for _, sc := range shortcuts {
		if !sc.From.Valid() || !sc.To.Valid() {
			continue
		}
		c := cell{sc.From, sc.Key}
		if _, taken := t.cells[c]; taken {
			continue
		}
		t.cells[c] = sc.To
	}
	return t
}

// ReturnHome reports the key this table uses to return to Home.
func (t *Table) ReturnHome() Key { return t.returnHome }

// Apply returns the screen reached from s by pressing k. Unmapped pairs
// return s unchanged.
func (t *Table) Apply(s ID, k Key) ID {
	if next, ok := t.cells[cell{s, k}]; ok {
		return next
	}
	return s
}

// Apply runs the default table.
func Apply(s ID, k Key) ID { return defaultTable.Apply(s, k) }

// Slots is the three-part footer label for a screen: the screen reached by
// the left action (Ok), the current screen, and the screen reached by the
// right action (the return key, or Cancel where the return key does nothing).
// An action slot is empty when the key is a no-op.
type Slots struct {
	Left   string
	Middle string
	Right  string
}

// Footer derives the footer slots for s from the table itself.
func (t *Table) Footer(s ID) Slots {
	slots := Slots{Middle: s.String()}
	if next := t.Apply(s, Ok); next != s {
		slots.Left = next.String()
	}
	if next := t.Apply(s, t.returnHome); next != s {
		slots.Right = next.String()
	} else if next := t.Apply(s, Cancel); next != s {
		slots.Right = next.String()
	}
	return slots
}

func (s Slots) String() string {
	return fmt.Sprintf("%s|%s|%s", s.Left, s.Middle, s.Right)
}
