package arena

import "fmt"

// Ref addresses a node in an Arena. The zero Ref is the empty link.
//
// A Ref is a plain value: copying it does not change any count. Owners must
// pair every counted Ref with exactly one Drop.
type Ref struct {
	slot uint32
	gen  uint32 // 0 only for the empty link
}

// IsZero reports whether r is the empty link.
func (r Ref) IsZero() bool {
	return r.gen == 0
}

func (r Ref) String() string {
	if r.IsZero() {
		return "ref(nil)"
	}
	return fmt.Sprintf("ref(%d@%d)", r.slot, r.gen)
}

// node is an immutable cell. elem and next are written once by Alloc;
// refs is the only field that changes while the node is live.
type node[T any] struct {
	elem T
	next Ref
	refs int32
}
