package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cafebot/actions"
	"cafebot/entity"
	"cafebot/repository"
)

type dispatcherFixture struct {
	d        *Dispatcher
	db       *gorm.DB
	sessions *SessionStore
	notifier *fakeNotifier
	gate     *AvailabilityGate
	coffee   entity.Category
	latte    entity.MenuItem
}

func newDispatcher(t *testing.T) *dispatcherFixture {
	t.Helper()
	db := newTestDB(t)
	coffee, latte, _ := seedCatalog(t, db)

	sessions := NewSessionStore()
	catalog := repository.NewCatalogRepository(db)
	notifier := newFakeNotifier()

	nav := NewNavigationService(catalog, sessions)
	orders := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		catalog,
		repository.NewUserRepository(db),
		sessions,
		notifier,
		nil,
	)
	intake := NewIntakeService(catalog, sessions, orders.AdminPanel)

	gate := NewAvailabilityGate(9, 21, "UTC")
	gate.Now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	return &dispatcherFixture{
		d:        NewDispatcher(nav, orders, intake, gate),
		db:       db,
		sessions: sessions,
		notifier: notifier,
		gate:     gate,
		coffee:   coffee,
		latte:    latte,
	}
}

func (fx *dispatcherFixture) closeCafe() {
	fx.gate.Now = func() time.Time {
		return time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)
	}
}

func TestDispatchClosedHoursBlocksCustomerOrdering(t *testing.T) {
	fx := newDispatcher(t)
	customer := seedUser(t, fx.db, 100, "Alice")
	fx.sessions.AddToCart(customer.ID, fx.latte.ID, 2)

	fx.closeCafe()

	v := fx.d.HandleAction(customer, false, "place_order")
	require.Contains(t, v.Notice, "closed")
	require.True(t, v.Alert)
	require.Empty(t, v.Text)

	v = fx.d.HandleAction(customer, false, "confirm_order")
	require.Contains(t, v.Notice, "closed")

	// nothing was written and the cart survived
	var count int64
	require.NoError(t, fx.db.Model(&entity.Order{}).Count(&count).Error)
	require.Zero(t, count)
	lines := fx.sessions.CartLines(customer.ID)
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
}

func TestDispatchClosedHoursExemptsStaff(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")
	fx.sessions.AddToCart(staff.ID, fx.latte.ID, 1)

	fx.closeCafe()

	v := fx.d.HandleAction(staff, true, "confirm_order")
	require.Empty(t, v.Notice)
	require.Contains(t, v.Text, "accepted")

	var count int64
	require.NoError(t, fx.db.Model(&entity.Order{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestDispatchUnknownTokenIsIgnored(t *testing.T) {
	fx := newDispatcher(t)
	customer := seedUser(t, fx.db, 100, "Alice")

	for _, token := range []string{"bogus", "item_", "cart_add_many_1", "category_x"} {
		v := fx.d.HandleAction(customer, false, token)
		require.Empty(t, v.Text, "token %q", token)
		require.Empty(t, v.Notice, "token %q", token)
		require.Nil(t, v.Keyboard, "token %q", token)
	}
}

func TestDispatchStaffOnlyActionsIgnoredForCustomers(t *testing.T) {
	fx := newDispatcher(t)
	customer := seedUser(t, fx.db, 100, "Alice")

	order := entity.Order{UserID: customer.ID, Status: entity.StatusNew, TotalPrice: 100}
	require.NoError(t, fx.db.Create(&order).Error)

	for _, token := range []string{
		"admin_panel",
		"admin_view_orders_ALL",
		"admin_view_orders_NEW",
		actions.AdminStatusToken(order.ID, entity.StatusCancelled),
	} {
		v := fx.d.HandleAction(customer, false, token)
		require.Empty(t, v.Text, "token %q", token)
		require.Empty(t, v.Notice, "token %q", token)
	}

	require.NoError(t, fx.db.First(&order, order.ID).Error)
	require.Equal(t, entity.StatusNew, order.Status)
}

func TestDispatchAdminSetStatusOnMissingOrder(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")

	v := fx.d.HandleAction(staff, true, actions.AdminStatusToken(777, entity.StatusReady))
	require.Equal(t, "Order #777 not found.", v.Notice)
	require.True(t, v.Alert)
}

func TestDispatchFinalizedOrderBecomesAlert(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")
	customer := seedUser(t, fx.db, 100, "Alice")

	order := entity.Order{UserID: customer.ID, Status: entity.StatusCancelled, TotalPrice: 100}
	require.NoError(t, fx.db.Create(&order).Error)

	v := fx.d.HandleAction(staff, true, actions.AdminStatusToken(order.ID, entity.StatusReady))
	require.Contains(t, v.Notice, "already finalized")
	require.True(t, v.Alert)
}

func TestDispatchNumericTokenFeedsDialogueOnlyDuringCategoryStage(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")

	// outside the dialogue a bare number parses as nothing
	v := fx.d.HandleAction(staff, true, "12")
	require.Empty(t, v.Text)

	v = fx.d.HandleAction(staff, true, "admin_add_item")
	require.Contains(t, v.Text, "LEAF category")

	v = fx.d.HandleAction(staff, true, fmt.Sprintf("%d", fx.coffee.ID))
	require.Contains(t, v.Text, "name")
	require.Equal(t, StageName, fx.sessions.Stage(staff.ID))
}

func TestDispatchIntakeEntryRejectedForCustomers(t *testing.T) {
	fx := newDispatcher(t)
	customer := seedUser(t, fx.db, 100, "Alice")

	v := fx.d.HandleAction(customer, false, "admin_add_item")
	require.Equal(t, "You are not allowed to do that.", v.Notice)
	require.True(t, v.Alert)
	require.Equal(t, StageNone, fx.sessions.Stage(customer.ID))
}

func TestDispatchMessageRoutesDialogueAndIgnoresStrayText(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")
	customer := seedUser(t, fx.db, 100, "Alice")

	// stray text outside a dialogue is dropped
	v := fx.d.HandleMessage(customer, false, "two lattes please")
	require.Empty(t, v.Text)

	fx.d.HandleAction(staff, true, "admin_add_item")
	fx.d.HandleAction(staff, true, fmt.Sprintf("%d", fx.coffee.ID))

	v = fx.d.HandleMessage(staff, true, "Raf")
	require.Contains(t, v.Text, "description")

	v = fx.d.HandleMessage(staff, true, "/skip")
	require.Contains(t, v.Text, "price")

	v = fx.d.HandleMessage(staff, true, "260")
	require.Contains(t, v.Notice, "Raf")
}

func TestDispatchStartGreetsByRole(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")
	customer := seedUser(t, fx.db, 100, "Alice")

	v := fx.d.HandleMessage(customer, false, "/start")
	require.Contains(t, v.Text, "Alice")

	v = fx.d.HandleMessage(staff, true, "/start")
	require.Contains(t, v.Text, "Bob")
	require.Contains(t, v.Text, "Staff")
}

func TestDispatchStartWhenClosedTellsCustomerTheHours(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")
	customer := seedUser(t, fx.db, 100, "Alice")

	fx.closeCafe()

	v := fx.d.HandleMessage(customer, false, "/start")
	require.Contains(t, v.Text, "closed")
	require.Contains(t, v.Text, "9:00 to 21:00")

	v = fx.d.HandleMessage(staff, true, "/start")
	require.Contains(t, v.Text, "Staff")
}

func TestDispatchCancelExitsDialogueEvenWhenClosed(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")

	fx.d.HandleAction(staff, true, "admin_add_item")
	require.Equal(t, StageCategory, fx.sessions.Stage(staff.ID))

	fx.closeCafe()

	v := fx.d.HandleAction(staff, true, "cancel_action")
	require.Equal(t, "Action cancelled.", v.Text)
	require.Equal(t, StageNone, fx.sessions.Stage(staff.ID))
}

func TestDispatchDetailsDeepLink(t *testing.T) {
	fx := newDispatcher(t)
	staff := seedUser(t, fx.db, 500, "Bob")
	customer := seedUser(t, fx.db, 100, "Alice")

	fx.sessions.AddToCart(customer.ID, fx.latte.ID, 2)
	fx.d.HandleAction(customer, false, "confirm_order")

	var order entity.Order
	require.NoError(t, fx.db.First(&order).Error)

	v := fx.d.HandleMessage(staff, true, fmt.Sprintf("/details_%d", order.ID))
	require.Contains(t, v.Text, "Latte: 2 pcs")

	// customers never see other people's orders
	v = fx.d.HandleMessage(customer, false, fmt.Sprintf("/details_%d", order.ID))
	require.Empty(t, v.Text)

	v = fx.d.HandleMessage(staff, true, "/details_999")
	require.Equal(t, "Order #999 not found.", v.Text)

	v = fx.d.HandleMessage(staff, true, "/details_abc")
	require.Empty(t, v.Text)
}

func TestDispatchNoopDoesNothing(t *testing.T) {
	fx := newDispatcher(t)
	customer := seedUser(t, fx.db, 100, "Alice")

	v := fx.d.HandleAction(customer, false, "noop")
	require.Empty(t, v.Text)
	require.Empty(t, v.Notice)
}
