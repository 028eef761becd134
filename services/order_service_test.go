package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cafebot/entity"
	"cafebot/repository"
)

func TestConfirmOrderPersistsSnapshotAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	_, latte, espresso := seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	notifier := newFakeNotifier()
	svc, sessions := newOrderService(db, notifier, nil)

	sessions.AddToCart(customer.ID, latte.ID, 2)    // 2 x 150
	sessions.AddToCart(customer.ID, espresso.ID, 1) // 1 x 300

	preview, err := svc.PlaceOrderPreview(customer.ID, false)
	require.NoError(t, err)
	require.Contains(t, preview.Text, "600")

	// preview is a pure projection
	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	require.Zero(t, count)

	v, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)
	require.Contains(t, v.Text, "accepted")

	var orders []entity.Order
	require.NoError(t, db.Preload("Items").Find(&orders).Error)
	require.Len(t, orders, 1)
	require.Equal(t, entity.StatusNew, orders[0].Status)
	require.Equal(t, int64(600), orders[0].TotalPrice)
	require.Len(t, orders[0].Items, 2)

	byName := map[string]entity.OrderItem{}
	for _, it := range orders[0].Items {
		byName[it.ItemName] = it
	}
	require.Equal(t, 2, byName["Latte"].Quantity)
	require.Equal(t, int64(150), byName["Latte"].Price)
	require.Equal(t, 1, byName["Espresso"].Quantity)
	require.Equal(t, int64(300), byName["Espresso"].Price)

	require.Empty(t, sessions.CartLines(customer.ID))
}

func TestConfirmOrderEmptyCartCreatesNothing(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	svc, _ := newOrderService(db, newFakeNotifier(), nil)

	v, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)
	require.Equal(t, "Your cart is empty.", v.Text)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestConfirmOrderExcludesStaleCartLines(t *testing.T) {
	db := newTestDB(t)
	_, latte, espresso := seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	svc, sessions := newOrderService(db, newFakeNotifier(), nil)
	sessions.AddToCart(customer.ID, latte.ID, 2)
	sessions.AddToCart(customer.ID, espresso.ID, 1)
	require.NoError(t, db.Delete(&entity.MenuItem{}, espresso.ID).Error)

	_, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)

	var order entity.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	require.Equal(t, int64(300), order.TotalPrice)
	require.Len(t, order.Items, 1)
	require.Equal(t, "Latte", order.Items[0].ItemName)
}

func TestOrderSnapshotSurvivesCatalogEdits(t *testing.T) {
	db := newTestDB(t)
	_, latte, _ := seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	svc, sessions := newOrderService(db, newFakeNotifier(), nil)
	sessions.AddToCart(customer.ID, latte.ID, 2)
	_, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)

	// reprice and rename the catalog item, then delete it outright
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", latte.ID).
		Updates(map[string]any{"price": 999, "name": "Flat White"}).Error)
	require.NoError(t, db.Delete(&entity.MenuItem{}, latte.ID).Error)

	var order entity.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	require.Equal(t, int64(300), order.TotalPrice)
	require.Len(t, order.Items, 1)
	require.Equal(t, "Latte", order.Items[0].ItemName)
	require.Equal(t, int64(150), order.Items[0].Price)
}

func TestConfirmOrderFansOutToStaffIsolatingFailures(t *testing.T) {
	db := newTestDB(t)
	_, latte, _ := seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")
	staffA := seedUser(t, db, 500, "Bob")
	staffB := seedUser(t, db, 501, "Carol")

	notifier := newFakeNotifier()
	notifier.FailFor[staffA.ID] = true

	svc, sessions := newOrderService(db, notifier, []int64{500, 501, 999})
	sessions.AddToCart(customer.ID, latte.ID, 1)

	v, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)
	require.Contains(t, v.Text, "accepted") // failures never surface to the customer

	// staffA failed, 999 has no user row; staffB still got the order card
	require.Len(t, notifier.Sent, 1)
	require.Equal(t, staffB.ID, notifier.Sent[0].UserID)
	require.Contains(t, notifier.Sent[0].Text, "New order")
	require.Contains(t, notifier.Sent[0].Text, "Alice")
}

func TestAdvanceStatusUnknownOrderIsNotFound(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	svc, _ := newOrderService(db, newFakeNotifier(), nil)

	_, err := svc.AdvanceStatus(4242, entity.StatusReady)
	require.ErrorIs(t, err, repository.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAdvanceStatusNotifiesCustomerWithReadyRemark(t *testing.T) {
	db := newTestDB(t)
	_, latte, _ := seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	notifier := newFakeNotifier()
	svc, sessions := newOrderService(db, notifier, nil)
	sessions.AddToCart(customer.ID, latte.ID, 1)
	_, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)

	var order entity.Order
	require.NoError(t, db.First(&order).Error)

	_, err = svc.AdvanceStatus(order.ID, entity.StatusReady)
	require.NoError(t, err)

	require.NoError(t, db.First(&order, order.ID).Error)
	require.Equal(t, entity.StatusReady, order.Status)

	require.Len(t, notifier.Sent, 1)
	require.Equal(t, customer.ID, notifier.Sent[0].UserID)
	require.Contains(t, notifier.Sent[0].Text, "pick up your order")
}

func TestAdvanceStatusSucceedsWhenNotificationFails(t *testing.T) {
	db := newTestDB(t)
	_, latte, _ := seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	notifier := newFakeNotifier()
	notifier.FailFor[customer.ID] = true
	svc, sessions := newOrderService(db, notifier, nil)
	sessions.AddToCart(customer.ID, latte.ID, 1)
	_, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)

	var order entity.Order
	require.NoError(t, db.First(&order).Error)

	v, err := svc.AdvanceStatus(order.ID, entity.StatusCancelled)
	require.NoError(t, err)
	require.Contains(t, v.Text, "Cancelled")

	require.NoError(t, db.First(&order, order.ID).Error)
	require.Equal(t, entity.StatusCancelled, order.Status)
}

func TestAdvanceStatusRefusesToLeaveTerminalStates(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, 100, "Alice")

	svc, _ := newOrderService(db, newFakeNotifier(), nil)

	order := entity.Order{UserID: customer.ID, Status: entity.StatusCompleted, TotalPrice: 100}
	require.NoError(t, db.Create(&order).Error)

	_, err := svc.AdvanceStatus(order.ID, entity.StatusInProgress)
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, db.First(&order, order.ID).Error)
	require.Equal(t, entity.StatusCompleted, order.Status)
}

func TestAdvanceStatusAllowsJumpsBetweenLiveStates(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, 100, "Alice")

	svc, _ := newOrderService(db, newFakeNotifier(), nil)

	order := entity.Order{UserID: customer.ID, Status: entity.StatusNew, TotalPrice: 100}
	require.NoError(t, db.Create(&order).Error)

	// NEW straight to COMPLETED: sequencing is staff judgment
	_, err := svc.AdvanceStatus(order.ID, entity.StatusCompleted)
	require.NoError(t, err)

	require.NoError(t, db.First(&order, order.ID).Error)
	require.Equal(t, entity.StatusCompleted, order.Status)
}

func TestListOrdersCapsAtTenMostRecent(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	svc, _ := newOrderService(db, newFakeNotifier(), nil)

	for i := 0; i < 12; i++ {
		order := entity.Order{UserID: customer.ID, Status: entity.StatusNew, TotalPrice: int64(100 + i)}
		require.NoError(t, db.Create(&order).Error)
	}

	orders, err := svc.Repo.ListByUser(customer.ID, orderListLimit)
	require.NoError(t, err)
	require.Len(t, orders, 10)

	v, err := svc.ListOrders(customer.ID, false)
	require.NoError(t, err)
	require.Contains(t, v.Text, "last 10 orders")
}

func TestRenderOrderDetailShowsSnapshotAndDeletedOwner(t *testing.T) {
	db := newTestDB(t)
	_, latte, _ := seedCatalog(t, db)
	customer := seedUser(t, db, 100, "Alice")

	svc, sessions := newOrderService(db, newFakeNotifier(), nil)
	sessions.AddToCart(customer.ID, latte.ID, 3)
	_, err := svc.ConfirmOrder(customer, false)
	require.NoError(t, err)

	var order entity.Order
	require.NoError(t, db.First(&order).Error)

	v, err := svc.RenderOrderDetail(order.ID)
	require.NoError(t, err)
	require.Contains(t, v.Text, "Alice")
	require.Contains(t, v.Text, "Latte: 3 pcs")

	// owner disappears; the detail view degrades to a placeholder
	require.NoError(t, db.Delete(&entity.User{}, customer.ID).Error)
	v, err = svc.RenderOrderDetail(order.ID)
	require.NoError(t, err)
	require.Contains(t, v.Text, "Deleted user")
}

func TestListOrdersForStaffFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, 100, "Alice")

	svc, _ := newOrderService(db, newFakeNotifier(), nil)

	for _, st := range []entity.OrderStatus{entity.StatusNew, entity.StatusNew, entity.StatusReady} {
		order := entity.Order{UserID: customer.ID, Status: st, TotalPrice: 100}
		require.NoError(t, db.Create(&order).Error)
	}

	v, err := svc.ListOrdersForStaff(entity.StatusReady, false)
	require.NoError(t, err)
	require.Contains(t, v.Text, "Ready for pickup")
	require.Contains(t, v.Text, "/details_")

	v, err = svc.ListOrdersForStaff("", true)
	require.NoError(t, err)
	require.Contains(t, v.Text, "Last 10 orders")

	v, err = svc.ListOrdersForStaff(entity.StatusCancelled, false)
	require.NoError(t, err)
	require.Contains(t, v.Text, "No orders here.")
}
