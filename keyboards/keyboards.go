// Package keyboards builds the inline keyboards of every screen. Builders are
// pure functions over already-fetched data; services decide what to fetch.
package keyboards

import (
	"fmt"
	"strconv"

	"cafebot/actions"
	"cafebot/entity"
	"cafebot/pkg/view"
)

// MainMenu is the root listing: top-level categories plus the cart and order
// history entry points. Staff get a shortcut back to their panel.
func MainMenu(rootCategories []entity.Category, isStaff bool) view.Keyboard {
	kb := view.Keyboard{}
	for _, cat := range rootCategories {
		kb = append(kb, view.Row(view.Button{Text: cat.Name, Action: actions.CategoryToken(cat.ID)}))
	}
	kb = append(kb,
		view.Row(view.Button{Text: "🛒 Cart", Action: "cart"}),
		view.Row(view.Button{Text: "📋 My orders", Action: "my_orders"}),
	)
	if isStaff {
		kb = append(kb, view.Row(view.Button{Text: "👑 Back to staff panel", Action: "admin_panel"}))
	}
	return kb
}

// AdminMenu is the staff panel. newOrders feeds the badge on the first button.
func AdminMenu(newOrders int64) view.Keyboard {
	ordersText := "📋 No new orders"
	if newOrders > 0 {
		ordersText = fmt.Sprintf("📋 New orders (%d)", newOrders)
	}
	return view.Keyboard{
		view.Row(view.Button{Text: ordersText, Action: actions.AdminViewOrdersToken(entity.StatusNew)}),
		view.Row(view.Button{Text: "All orders", Action: actions.AdminViewAllOrdersToken()}),
		view.Row(view.Button{Text: "➕ Add menu item", Action: "admin_add_item"}),
		view.Row(view.Button{Text: "➡️ Customer menu", Action: "start_user_menu"}),
	}
}

// Category renders a branch category's subcategories or a leaf's items, plus
// the back control: to the parent if there is one, else to the root listing.
func Category(cat *entity.Category) view.Keyboard {
	kb := view.Keyboard{}
	if len(cat.Subcategories) > 0 {
		for _, sub := range cat.Subcategories {
			kb = append(kb, view.Row(view.Button{Text: sub.Name, Action: actions.CategoryToken(sub.ID)}))
		}
	} else {
		for _, item := range cat.Items {
			kb = append(kb, view.Row(view.Button{
				Text:   fmt.Sprintf("%s (%d)", item.Name, item.Price),
				Action: actions.ItemToken(item.ID),
			}))
		}
	}

	if cat.ParentID == nil {
		kb = append(kb, view.Row(view.Button{Text: "⬅️ Back", Action: "start"}))
	} else {
		kb = append(kb, view.Row(view.Button{Text: "⬅️ Back", Action: actions.CategoryToken(*cat.ParentID)}))
	}
	return kb
}

// ItemDetails is the item screen: quantity stepper, optionally the add-to-cart
// affordance, and back. canAdd is false for customers while the cafe is
// closed; the button is hidden, not disabled.
func ItemDetails(itemID uint, quantity int, canAdd bool) view.Keyboard {
	if quantity < 1 {
		quantity = 1
	}

	kb := view.Keyboard{
		view.Row(
			view.Button{Text: "➖", Action: actions.ItemDecrToken(itemID, quantity-1)},
			view.Button{Text: fmt.Sprintf("%d pcs", quantity), Action: "noop"},
			view.Button{Text: "➕", Action: actions.ItemIncrToken(itemID, quantity+1)},
		),
	}
	if canAdd {
		kb = append(kb, view.Row(view.Button{
			Text:   fmt.Sprintf("🛒 Add to cart (%d)", quantity),
			Action: actions.CartAddManyToken(itemID, quantity),
		}))
	}
	kb = append(kb, view.Row(view.Button{Text: "⬅️ Back", Action: actions.ItemBackToken(itemID)}))
	return kb
}

// CartActions hides checkout outside opening hours for customers.
func CartActions(canCheckout bool) view.Keyboard {
	kb := view.Keyboard{}
	if canCheckout {
		kb = append(kb, view.Row(view.Button{Text: "✅ Checkout", Action: "place_order"}))
	}
	kb = append(kb,
		view.Row(view.Button{Text: "🗑️ Clear cart", Action: "clear_cart"}),
		view.Row(view.Button{Text: "⬅️ Back to menu", Action: "start"}),
	)
	return kb
}

func ConfirmOrder() view.Keyboard {
	return view.Keyboard{
		view.Row(view.Button{Text: "👍 Confirm order", Action: "confirm_order"}),
		view.Row(view.Button{Text: "⬅️ Back to cart", Action: "cart"}),
	}
}

// AdminOrder is the status-control affordance attached to one order.
func AdminOrder(orderID uint) view.Keyboard {
	return view.Keyboard{
		view.Row(view.Button{Text: "✔️ In progress", Action: actions.AdminStatusToken(orderID, entity.StatusInProgress)}),
		view.Row(view.Button{Text: "✅ Ready for pickup", Action: actions.AdminStatusToken(orderID, entity.StatusReady)}),
		view.Row(view.Button{Text: "🏁 Complete", Action: actions.AdminStatusToken(orderID, entity.StatusCompleted)}),
		view.Row(view.Button{Text: "❌ Cancel", Action: actions.AdminStatusToken(orderID, entity.StatusCancelled)}),
		view.Row(view.Button{Text: "⬅️ Back to list", Action: actions.AdminViewOrdersToken(entity.StatusNew)}),
	}
}

// LeafCategoryChoice is the intake dialogue's first prompt. Choices carry bare
// numeric tokens, consumed only while the dialogue awaits a category.
func LeafCategoryChoice(leafs []entity.Category) view.Keyboard {
	kb := view.Keyboard{}
	for _, cat := range leafs {
		kb = append(kb, view.Row(view.Button{Text: cat.Name, Action: strconv.FormatUint(uint64(cat.ID), 10)}))
	}
	kb = append(kb, view.Row(view.Button{Text: "❌ Cancel", Action: "cancel_action"}))
	return kb
}

func Cancel() view.Keyboard {
	return view.Keyboard{
		view.Row(view.Button{Text: "❌ Cancel", Action: "cancel_action"}),
	}
}
