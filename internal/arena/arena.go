// Package arena implements the node storage layer for persistent lists.
//
// Nodes live in a dense slice of slots and are addressed by index:
// - Alloc writes a node once and links it to an existing chain
// - Retain/Drop maintain a per-slot reference count
// - Drop reclaims the unshared prefix of a chain with a loop, never recursion
// - reclaimed slots go on a free list and are reused with a new generation
//
// An Arena is not safe for concurrent use. It and every Ref into it belong
// to one goroutine.
package arena

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	ErrFull     = errors.New("arena: node limit reached")
	ErrStaleRef = errors.New("arena: stale or foreign ref")
)

// Config configures an Arena.
type Config struct {
	// Capacity preallocates room for this many nodes.
	Capacity int

	// MaxNodes caps the number of live nodes. Zero means unlimited.
	MaxNodes int

	// Logger receives debug lines for every teardown. Nil discards.
	Logger *logrus.Entry

	// OnReclaim is called after a Drop that freed at least one node.
	OnReclaim func(freed int)
}

// Stats describes arena occupancy.
type Stats struct {
	Live      int // nodes currently referenced
	Free      int // slots waiting for reuse
	Slots     int // slots ever created
	Allocated int // total Alloc calls that succeeded
	Reclaimed int // total nodes freed by Drop
}

type slot[T any] struct {
	node node[T]
	gen  uint32
}

// Arena is a reference-counted node store.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32

	maxNodes  int
	log       *logrus.Entry
	onReclaim func(int)

	stats Stats
}

// New creates an empty arena.
func New[T any](cfg Config) *Arena[T] {
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Arena[T]{
		slots:     make([]slot[T], 0, cfg.Capacity),
		maxNodes:  cfg.MaxNodes,
		log:       log,
		onReclaim: cfg.OnReclaim,
	}
}

// Alloc stores a new node holding elem whose next link is next.
// The returned Ref carries the node's single initial count; next gains one
// count on success.
func (a *Arena[T]) Alloc(elem T, next Ref) (Ref, error) {
	if a.maxNodes > 0 && a.stats.Live >= a.maxNodes {
		return Ref{}, ErrFull
	}
	if !next.IsZero() {
		a.node(next).refs++
	}

	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
		a.stats.Slots++
	}

	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		// zero marks the empty link
		s.gen = 1
	}
	s.node = node[T]{elem: elem, next: next, refs: 1}

	a.stats.Live++
	a.stats.Allocated++
	return Ref{slot: idx, gen: s.gen}, nil
}

// Retain adds one count to r. Retaining the zero Ref is a no-op.
func (a *Arena[T]) Retain(r Ref) {
	if r.IsZero() {
		return
	}
	a.node(r).refs++
}

// Elem returns the element stored at r.
func (a *Arena[T]) Elem(r Ref) T {
	return a.node(r).elem
}

// Next returns the link stored at r. It does not change any count.
func (a *Arena[T]) Next(r Ref) Ref {
	return a.node(r).next
}

// Refs reports the current count of r, or zero if r is empty or no longer live.
func (a *Arena[T]) Refs(r Ref) int {
	if !a.Live(r) {
		return 0
	}
	return int(a.slots[r.slot].node.refs)
}

// Live reports whether r addresses a node that has not been reclaimed.
func (a *Arena[T]) Live(r Ref) bool {
	if r.IsZero() || int(r.slot) >= len(a.slots) {
		return false
	}
	s := &a.slots[r.slot]
	return s.gen == r.gen && s.node.refs > 0
}

// Stats returns a snapshot of the arena counters.
func (a *Arena[T]) Stats() Stats {
	st := a.stats
	st.Free = len(a.free)
	return st
}

// node resolves r, panicking with ErrStaleRef if r is not live.
func (a *Arena[T]) node(r Ref) *node[T] {
	if !a.Live(r) {
		panic(ErrStaleRef)
	}
	return &a.slots[r.slot].node
}

// reclaim clears a slot and puts it on the free list. The slot keeps its
// generation so outstanding refs stay detectably stale.
func (a *Arena[T]) reclaim(idx uint32) {
	a.slots[idx].node = node[T]{}
	a.free = append(a.free, idx)
	a.stats.Live--
	a.stats.Reclaimed++
}
