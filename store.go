package plist

import "github.com/aweris/plist/internal/arena"

// Stats describes the node arena behind a list.
// Re-exported from internal/arena for convenience.
type Stats = arena.Stats
