package plist

import (
	"errors"

	"github.com/aweris/plist/internal/arena"
)

var (
	// ErrReleased is the panic value for any use of a released list or its readers.
	ErrReleased = errors.New("plist: list used after release")

	// ErrExhausted is returned by TryPrepend when the arena's WithMaxNodes
	// limit is reached.
	ErrExhausted = arena.ErrFull
)
