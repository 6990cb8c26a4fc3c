package arena

import "github.com/sirupsen/logrus"

// Drop releases one count on r and reclaims every node that becomes
// unreferenced as a result, front to back.
//
// The walk is a loop: when the current node's count reaches zero its next
// link is taken over by the loop (the freed node's own count contribution to
// next is the one released on the following iteration). The walk stops at the
// first node that is still shared, leaving the rest of the chain to its other
// owners. Stack depth is constant regardless of chain length.
//
// Drop returns the number of reclaimed nodes. Dropping the zero Ref is a no-op.
func (a *Arena[T]) Drop(r Ref) int {
	freed := 0
	for !r.IsZero() {
		n := a.node(r)
		n.refs--
		if n.refs > 0 {
			break
		}
		next := n.next
		a.reclaim(r.slot)
		freed++
		r = next
	}

	if freed == 0 {
		return 0
	}
	if a.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		a.log.WithFields(logrus.Fields{
			"freed": freed,
			"live":  a.stats.Live,
			"free":  len(a.free),
		}).Debug("arena: teardown")
	}
	if a.onReclaim != nil {
		a.onReclaim(freed)
	}
	return freed
}
