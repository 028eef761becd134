package services

import "cafebot/entity"

// TransitionRule decides whether staff may move an order between two
// statuses.
type TransitionRule func(from, to entity.OrderStatus) bool

// DefaultTransition is deliberately permissive: staff correct mistakes by
// jumping between any live statuses, including straight to CANCELLED. The
// only guard is that COMPLETED and CANCELLED are exits; an order never leaves
// a terminal status.
func DefaultTransition(from, to entity.OrderStatus) bool {
	return !from.IsTerminal()
}
