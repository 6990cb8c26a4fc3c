package plist

import (
	"fmt"
	"iter"
	"strings"

	"github.com/aweris/plist/internal/arena"
)

// List is a handle on an immutable, possibly shared chain of nodes.
//
// Each handle owns one count on its head node. Operations never change the
// receiver's contents; they return new handles that share the receiver's
// nodes. A nil *List is a valid empty list.
//
// A List and every handle derived from it must stay on one goroutine.
type List[T any] struct {
	arena    *arena.Arena[T]
	head     arena.Ref
	released bool
}

// New returns an empty list backed by a fresh arena.
func New[T any](opts ...Option) *List[T] {
	return &List[T]{arena: newArena[T](opts)}
}

// From returns a list whose elements, front to back, are items.
func From[T any](items []T, opts ...Option) *List[T] {
	l := New[T](opts...)
	for i := len(items) - 1; i >= 0; i-- {
		next := l.Prepend(items[i])
		l.Release()
		l = next
	}
	return l
}

// Empty returns an empty list on the same arena as l.
func (l *List[T]) Empty() *List[T] {
	if l == nil {
		return nil
	}
	l.check()
	return &List[T]{arena: l.arena}
}

// Prepend returns a new list with elem in front of l. l is unchanged and
// shares all of its nodes with the result.
//
// Prepend panics with ErrExhausted if the arena's node limit is reached.
func (l *List[T]) Prepend(elem T) *List[T] {
	next, err := l.TryPrepend(elem)
	if err != nil {
		panic(err)
	}
	return next
}

// TryPrepend is Prepend with an explicit allocation failure path.
func (l *List[T]) TryPrepend(elem T) (*List[T], error) {
	l.check()

	var (
		a    *arena.Arena[T]
		head arena.Ref
	)
	switch {
	case l == nil:
		a = newArena[T](nil)
	case l.arena == nil:
		l.arena = newArena[T](nil)
		a = l.arena
	default:
		a, head = l.arena, l.head
	}

	r, err := a.Alloc(elem, head)
	if err != nil {
		return nil, err
	}
	return &List[T]{arena: a, head: r}, nil
}

// Tail returns the list without its first element. The result's first node
// is l's second node, not a copy. Tail of an empty list is empty.
func (l *List[T]) Tail() *List[T] {
	if l.IsEmpty() {
		return l.Empty()
	}
	next := l.arena.Next(l.head)
	l.arena.Retain(next)
	return &List[T]{arena: l.arena, head: next}
}

// Head returns the first element, or false if the list is empty.
func (l *List[T]) Head() (T, bool) {
	if l.IsEmpty() {
		var zero T
		return zero, false
	}
	return l.arena.Elem(l.head), true
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool {
	l.check()
	return l == nil || l.head.IsZero()
}

// Clone returns another handle on the same chain.
func (l *List[T]) Clone() *List[T] {
	if l == nil {
		return nil
	}
	l.check()
	if l.arena != nil {
		l.arena.Retain(l.head)
	}
	return &List[T]{arena: l.arena, head: l.head}
}

// Release gives up the handle's reference and reclaims every node that no
// other handle can reach. It is safe to call more than once.
func (l *List[T]) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true

	head := l.head
	l.head = arena.Ref{}
	if l.arena != nil {
		l.arena.Drop(head)
	}
}

// Released reports whether Release has been called on l.
func (l *List[T]) Released() bool {
	return l != nil && l.released
}

// Same reports whether l and o start at the very same node, or are both empty.
func (l *List[T]) Same(o *List[T]) bool {
	le, oe := l.IsEmpty(), o.IsEmpty()
	if le || oe {
		return le && oe
	}
	return l.arena == o.arena && l.head == o.head
}

// Len returns the number of elements. It walks the whole chain.
func (l *List[T]) Len() int {
	n := 0
	for it := l.Iter(); ; n++ {
		if _, ok := it.Next(); !ok {
			return n
		}
	}
}

// Slice copies the elements into a new slice, front to back.
func (l *List[T]) Slice() []T {
	var out []T
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// All returns an iterator over the elements, front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Stats returns the counters of the arena behind l.
func (l *List[T]) Stats() Stats {
	if l == nil || l.arena == nil {
		return Stats{}
	}
	return l.arena.Stats()
}

func (l *List[T]) String() string {
	var b strings.Builder
	b.WriteByte('(')
	first := true
	for v := range l.All() {
		if !first {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, v)
		first = false
	}
	b.WriteByte(')')
	return b.String()
}

func (l *List[T]) check() {
	if l != nil && l.released {
		panic(ErrReleased)
	}
}
