package plist

import "github.com/aweris/plist/internal/arena"

// Iter walks a list front to back without taking references.
//
// An Iter is not restartable; call List.Iter again to walk the list again.
// It borrows from the list it came from and panics with ErrReleased if that
// list is released before the walk ends. Abandoning an Iter needs no cleanup.
type Iter[T any] struct {
	owner *List[T]
	cur   arena.Ref
}

// Iter returns a reader positioned at the first element of l.
func (l *List[T]) Iter() *Iter[T] {
	l.check()
	it := &Iter[T]{owner: l}
	if l != nil {
		it.cur = l.head
	}
	return it
}

// Next returns the next element, or false once the list is exhausted.
func (it *Iter[T]) Next() (T, bool) {
	it.owner.check()
	if it.cur.IsZero() {
		var zero T
		return zero, false
	}

	a := it.owner.arena
	v := a.Elem(it.cur)
	it.cur = a.Next(it.cur)
	return v, true
}
