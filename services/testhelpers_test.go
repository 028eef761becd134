package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cafebot/entity"
	"cafebot/pkg/view"
	"cafebot/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.MenuItem{},
		&entity.Order{},
		&entity.OrderItem{},
	))
	return db
}

// seedCatalog builds a two-level tree: Drinks -> Coffee (leaf with items),
// plus a childless root Desserts. Returns the leaf and the two items.
func seedCatalog(t *testing.T, db *gorm.DB) (coffee entity.Category, latte, espresso entity.MenuItem) {
	t.Helper()

	drinks := entity.Category{Name: "Drinks"}
	require.NoError(t, db.Create(&drinks).Error)
	coffee = entity.Category{Name: "Coffee", ParentID: &drinks.ID}
	require.NoError(t, db.Create(&coffee).Error)
	desserts := entity.Category{Name: "Desserts"}
	require.NoError(t, db.Create(&desserts).Error)

	latte = entity.MenuItem{Name: "Latte", Price: 150, CategoryID: coffee.ID}
	require.NoError(t, db.Create(&latte).Error)
	espresso = entity.MenuItem{Name: "Espresso", Price: 300, CategoryID: coffee.ID}
	require.NoError(t, db.Create(&espresso).Error)
	return coffee, latte, espresso
}

func seedUser(t *testing.T, db *gorm.DB, telegramID int64, firstName string) *entity.User {
	t.Helper()
	u := entity.User{TelegramID: telegramID, FirstName: firstName}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

type sentNotification struct {
	UserID uint
	Text   string
}

// fakeNotifier records deliveries and can be told to fail for specific
// recipients.
type fakeNotifier struct {
	Sent    []sentNotification
	FailFor map[uint]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{FailFor: make(map[uint]bool)}
}

func (f *fakeNotifier) Notify(userID uint, v *view.View) error {
	if f.FailFor[userID] {
		return fmt.Errorf("delivery to %d failed", userID)
	}
	f.Sent = append(f.Sent, sentNotification{UserID: userID, Text: v.Text})
	return nil
}

// newOrderService wires an OrderService over the test db with a fake
// notifier and the given staff recipients.
func newOrderService(db *gorm.DB, notifier Notifier, staffIDs []int64) (*OrderService, *SessionStore) {
	sessions := NewSessionStore()
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewUserRepository(db),
		sessions,
		notifier,
		staffIDs,
	)
	return svc, sessions
}
