// Package actions parses the gateway's callback-token vocabulary into typed
// actions. Tokens are namespaced by prefix; anything that does not parse is
// reported as unrecognized and ignored by the dispatcher rather than crashing
// a session.
package actions

import (
	"strconv"
	"strings"

	"cafebot/entity"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindStart
	KindStartUserMenu
	KindOpenCategory
	KindViewItem
	KindItemIncr
	KindItemDecr
	KindItemBack
	KindCartAddMany
	KindViewCart
	KindClearCart
	KindPlaceOrder
	KindConfirmOrder
	KindMyOrders
	KindAdminPanel
	KindAdminViewOrders
	KindAdminSetStatus
	KindAdminAddItem
	KindCancel
	KindNoop
)

// AllStatusesSentinel is the admin_view_orders_ filter meaning "no filter".
const AllStatusesSentinel = "ALL"

// Action is the tagged result of parsing one token. Only the fields relevant
// to Kind are set.
type Action struct {
	Kind       Kind
	CategoryID uint
	ItemID     uint
	Quantity   int
	OrderID    uint
	Status     entity.OrderStatus
	AllOrders  bool // admin_view_orders_ALL
}

// Parse maps a raw token to an Action. ok is false for malformed or
// unrecognized tokens.
func Parse(token string) (Action, bool) {
	switch token {
	case "start":
		return Action{Kind: KindStart}, true
	case "start_user_menu":
		return Action{Kind: KindStartUserMenu}, true
	case "cart":
		return Action{Kind: KindViewCart}, true
	case "clear_cart":
		return Action{Kind: KindClearCart}, true
	case "place_order":
		return Action{Kind: KindPlaceOrder}, true
	case "confirm_order":
		return Action{Kind: KindConfirmOrder}, true
	case "my_orders":
		return Action{Kind: KindMyOrders}, true
	case "admin_panel":
		return Action{Kind: KindAdminPanel}, true
	case "admin_add_item":
		return Action{Kind: KindAdminAddItem}, true
	case "cancel_action":
		return Action{Kind: KindCancel}, true
	case "noop":
		return Action{Kind: KindNoop}, true
	}

	if rest, ok := strings.CutPrefix(token, "admin_view_orders_"); ok {
		if rest == AllStatusesSentinel {
			return Action{Kind: KindAdminViewOrders, AllOrders: true}, true
		}
		st, ok := entity.ParseOrderStatus(rest)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: KindAdminViewOrders, Status: st}, true
	}

	if rest, ok := strings.CutPrefix(token, "admin_status_"); ok {
		// <orderId>_<status>; the status itself may contain underscores.
		idStr, statusStr, found := strings.Cut(rest, "_")
		if !found {
			return Action{}, false
		}
		id, err := parseID(idStr)
		if err != nil {
			return Action{}, false
		}
		st, ok := entity.ParseOrderStatus(statusStr)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: KindAdminSetStatus, OrderID: id, Status: st}, true
	}

	if rest, ok := strings.CutPrefix(token, "category_"); ok {
		id, err := parseID(rest)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: KindOpenCategory, CategoryID: id}, true
	}

	if rest, ok := strings.CutPrefix(token, "cart_add_many_"); ok {
		id, qty, ok := parseIDQty(rest)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: KindCartAddMany, ItemID: id, Quantity: qty}, true
	}

	if rest, ok := strings.CutPrefix(token, "item_back_"); ok {
		id, err := parseID(rest)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: KindItemBack, ItemID: id}, true
	}
	if rest, ok := strings.CutPrefix(token, "item_incr_"); ok {
		id, qty, ok := parseIDQty(rest)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: KindItemIncr, ItemID: id, Quantity: qty}, true
	}
	if rest, ok := strings.CutPrefix(token, "item_decr_"); ok {
		id, qty, ok := parseIDQty(rest)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: KindItemDecr, ItemID: id, Quantity: qty}, true
	}
	if rest, ok := strings.CutPrefix(token, "item_"); ok {
		id, err := parseID(rest)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: KindViewItem, ItemID: id}, true
	}

	return Action{}, false
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

// parseIDQty splits "<id>_<qty>". Quantity may be any integer here; clamping
// is the caller's business.
func parseIDQty(s string) (uint, int, bool) {
	idStr, qtyStr, found := strings.Cut(s, "_")
	if !found {
		return 0, 0, false
	}
	id, err := parseID(idStr)
	if err != nil {
		return 0, 0, false
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return 0, 0, false
	}
	return id, qty, true
}
