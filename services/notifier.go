package services

import "cafebot/pkg/view"

// Notifier is the outbound push port. Delivery is fire-and-forget: callers
// log failures and never let them affect the triggering transaction.
type Notifier interface {
	Notify(userID uint, v *view.View) error
}
