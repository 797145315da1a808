package world

// #region slots

// Slots is a fixed-size table of optional behavior records, one slot per
// schema variant, addressed by variant index. At most one slot is populated
// at a time; the decision engine maintains that invariant, the table itself
// does not enforce it.
type Slots []any

// NewSlots allocates an empty slot table of the given size.
func NewSlots(n int) Slots {
	return make(Slots, n)
}

// Get returns the record in slot i, or nil when the slot is empty or out
// of range.
func (s Slots) Get(i int) any {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// Populated counts the populated slots.
func (s Slots) Populated() int {
	n := 0
	for _, v := range s {
		if v != nil {
			n++
		}
	}
	return n
}

func (s Slots) set(i int, v any) {
	if i < 0 || i >= len(s) {
		return
	}
	s[i] = v
}

// #endregion slots
