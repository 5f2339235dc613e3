package widget

import "fmt"

// ID is a stable handle into a Tree. The zero value names no node.
//
// IDs are an arena index plus a generation; removing a node bumps the
// generation of its slot, so a stale ID fails lookup instead of aliasing
// whatever node reuses the slot later.
type ID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the ID names no node.
func (id ID) IsZero() bool {
	return id.gen == 0
}

func (id ID) String() string {
	if id.IsZero() {
		return "none"
	}
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}
