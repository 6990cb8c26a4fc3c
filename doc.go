// Package plist provides a persistent singly-linked list with structural sharing.
//
// Lists never change. Prepend and Tail derive new lists that share nodes with
// the list they came from, so many versions can coexist cheaply. Nodes live in
// an arena and are reference-counted; releasing a handle reclaims exactly the
// nodes no other handle can reach, with a loop rather than recursion, so even
// very long chains are torn down in constant stack space.
//
// Basic usage:
//
//	l0 := plist.New[int]()
//	l1 := l0.Prepend(1).Prepend(2).Prepend(3) // (3 2 1)
//
//	v, ok := l1.Head() // 3, true
//	l2 := l1.Tail()    // (2 1), shares nodes with l1
//
//	for v := range l1.All() {
//	    fmt.Println(v)
//	}
//
//	// Manual cursor
//	it := l1.Iter()
//	for v, ok := it.Next(); ok; v, ok = it.Next() { ... }
//
// Every handle returned by New, From, Prepend, TryPrepend, Tail, Clone and
// Empty owns one reference. Call Release when done with it:
//
//	defer l1.Release()
//
// A nil *List is an empty list; Prepend on it starts a new arena.
//
// Lists are not safe for concurrent use. An arena and all handles on it must
// stay on one goroutine.
//
// With options:
//
//	l := plist.New[string](
//	    plist.WithCapacity(1024),
//	    plist.WithMaxNodes(1<<20),
//	    plist.WithLogger(logrus.StandardLogger()),
//	)
//	next, err := l.TryPrepend("x") // ErrExhausted once the cap is hit
package plist
