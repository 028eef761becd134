package actions

import (
	"fmt"

	"cafebot/entity"
)

// Token constructors keep keyboards and Parse on the same vocabulary.

func CategoryToken(id uint) string { return fmt.Sprintf("category_%d", id) }
func ItemToken(id uint) string     { return fmt.Sprintf("item_%d", id) }
func ItemBackToken(id uint) string { return fmt.Sprintf("item_back_%d", id) }

func ItemIncrToken(id uint, qty int) string { return fmt.Sprintf("item_incr_%d_%d", id, qty) }
func ItemDecrToken(id uint, qty int) string { return fmt.Sprintf("item_decr_%d_%d", id, qty) }

func CartAddManyToken(id uint, qty int) string {
	return fmt.Sprintf("cart_add_many_%d_%d", id, qty)
}

func AdminViewOrdersToken(status entity.OrderStatus) string {
	return fmt.Sprintf("admin_view_orders_%s", status)
}

func AdminViewAllOrdersToken() string {
	return fmt.Sprintf("admin_view_orders_%s", AllStatusesSentinel)
}

func AdminStatusToken(orderID uint, status entity.OrderStatus) string {
	return fmt.Sprintf("admin_status_%d_%s", orderID, status)
}
