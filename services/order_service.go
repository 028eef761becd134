package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"cafebot/entity"
	"cafebot/keyboards"
	"cafebot/pkg/view"
	"cafebot/repository"
	"cafebot/utils"
)

const orderListLimit = 10

// OrderService turns carts into persisted orders and advances their status.
// Both write paths end with best-effort notifications: staff fan-out on
// creation, the owning customer on a status change. Notification failures are
// logged and never roll anything back.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Catalog  *repository.CatalogRepository
	Users    *repository.UserRepository
	Sessions *SessionStore
	Notifier Notifier

	// StaffIDs are the external ids of staff notification recipients.
	StaffIDs []int64

	// CanTransition guards AdvanceStatus; nil means DefaultTransition.
	CanTransition TransitionRule
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	catalog *repository.CatalogRepository,
	users *repository.UserRepository,
	sessions *SessionStore,
	notifier Notifier,
	staffIDs []int64,
) *OrderService {
	return &OrderService{
		DB:            db,
		Repo:          repo,
		Catalog:       catalog,
		Users:         users,
		Sessions:      sessions,
		Notifier:      notifier,
		StaffIDs:      staffIDs,
		CanTransition: DefaultTransition,
	}
}

// resolvedLine is one cart line whose item still resolves in the catalog.
type resolvedLine struct {
	name     string
	price    int64
	quantity int
}

// resolveCart drops cart lines whose item id no longer resolves; they count
// toward neither the total nor the snapshot.
func (s *OrderService) resolveCart(userID uint) ([]resolvedLine, int64, error) {
	lines := s.Sessions.CartLines(userID)
	resolved := make([]resolvedLine, 0, len(lines))
	var total int64
	for _, line := range lines {
		item, err := s.Catalog.GetItem(line.ItemID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		resolved = append(resolved, resolvedLine{name: item.Name, price: item.Price, quantity: line.Quantity})
		total += item.Price * int64(line.Quantity)
	}
	return resolved, total, nil
}

func (s *OrderService) emptyCartView(isStaff bool) (*view.View, error) {
	roots, err := s.Catalog.ListRootCategories()
	if err != nil {
		return nil, err
	}
	return &view.View{Text: "Your cart is empty.", Keyboard: keyboards.MainMenu(roots, isStaff)}, nil
}

// PlaceOrderPreview is a pure projection of the cart into a confirmation
// screen; nothing is written.
func (s *OrderService) PlaceOrderPreview(userID uint, isStaff bool) (*view.View, error) {
	if s.Sessions.CartSize(userID) == 0 {
		return s.emptyCartView(isStaff)
	}

	lines, total, err := s.resolveCart(userID)
	if err != nil {
		return nil, err
	}

	text := "🔍 *Review your order*\n\n"
	for _, l := range lines {
		text += fmt.Sprintf("▪️ *%s* \\(%s pcs\\) \\= %s\n",
			utils.EscapeMarkdown(l.name),
			utils.EscapeMarkdown(fmt.Sprintf("%d", l.quantity)),
			utils.EscapeMarkdown(fmt.Sprintf("%d", l.price*int64(l.quantity))),
		)
	}
	text += fmt.Sprintf("\n💰 *Total due:* %s", utils.EscapeMarkdown(fmt.Sprintf("%d", total)))

	return &view.View{Text: text, ParseMode: "MarkdownV2", Keyboard: keyboards.ConfirmOrder()}, nil
}

// ConfirmOrder persists one Order plus per-line snapshots in a single
// transaction, clears the cart, then fans the new order out to staff.
func (s *OrderService) ConfirmOrder(actor *entity.User, isStaff bool) (*view.View, error) {
	if s.Sessions.CartSize(actor.ID) == 0 {
		return s.emptyCartView(isStaff)
	}

	lines, total, err := s.resolveCart(actor.ID)
	if err != nil {
		return nil, err
	}

	order := entity.Order{UserID: actor.ID, Status: entity.StatusNew, TotalPrice: total}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, l := range lines {
			oi := entity.OrderItem{
				OrderID:  order.ID,
				ItemName: l.name,
				Quantity: l.quantity,
				Price:    l.price,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Sessions.ClearCart(actor.ID)
	s.notifyStaffNewOrder(&order, actor, lines)

	roots, err := s.Catalog.ListRootCategories()
	if err != nil {
		return nil, err
	}
	return &view.View{
		Text:      fmt.Sprintf("✅ Your order `#%d` has been accepted\\!", order.ID),
		ParseMode: "MarkdownV2",
		Keyboard:  keyboards.MainMenu(roots, isStaff),
	}, nil
}

// notifyStaffNewOrder fans out to every configured staff recipient. Each send
// is independent: one failure is logged and the loop continues.
func (s *OrderService) notifyStaffNewOrder(order *entity.Order, actor *entity.User, lines []resolvedLine) {
	text := fmt.Sprintf("🔔 *New order `#%d`*\n\nFrom: %s \\(@%s\\)\n\n",
		order.ID,
		utils.EscapeMarkdown(actor.FirstName),
		utils.EscapeMarkdown(actor.Handle()),
	)
	for _, l := range lines {
		text += fmt.Sprintf("▪️ %s: %s pcs\n",
			utils.EscapeMarkdown(l.name),
			utils.EscapeMarkdown(fmt.Sprintf("%d", l.quantity)),
		)
	}
	text += fmt.Sprintf("\n💰 *Total:* %s", utils.EscapeMarkdown(fmt.Sprintf("%d", order.TotalPrice)))

	msg := &view.View{Text: text, ParseMode: "MarkdownV2", Keyboard: keyboards.AdminOrder(order.ID)}
	for _, tgID := range s.StaffIDs {
		staff, err := s.Users.FindByTelegramID(tgID)
		if err != nil {
			log.Printf("order %d: staff recipient %d unknown: %v", order.ID, tgID, err)
			continue
		}
		if err := s.Notifier.Notify(staff.ID, msg); err != nil {
			log.Printf("order %d: could not notify staff %d: %v", order.ID, tgID, err)
		}
	}
}

// ListOrders renders the user's own orders, most recent first, capped at 10.
func (s *OrderService) ListOrders(userID uint, isStaff bool) (*view.View, error) {
	orders, err := s.Repo.ListByUser(userID, orderListLimit)
	if err != nil {
		return nil, err
	}

	roots, err := s.Catalog.ListRootCategories()
	if err != nil {
		return nil, err
	}
	kb := keyboards.MainMenu(roots, isStaff)

	if len(orders) == 0 {
		return &view.View{Text: "You have no orders yet.", Keyboard: kb}, nil
	}

	text := "📋 *Your last 10 orders:*\n\n"
	for _, o := range orders {
		text += fmt.Sprintf("Order `#%d` from %s\n", o.ID, utils.EscapeMarkdown(o.CreatedAt.Format("02.01.06 15:04")))
		text += fmt.Sprintf("Status: *%s* \\| Total: *%s*\n\n",
			utils.EscapeMarkdown(o.Status.Label()),
			utils.EscapeMarkdown(fmt.Sprintf("%d", o.TotalPrice)),
		)
	}
	return &view.View{Text: text, ParseMode: "MarkdownV2", Keyboard: kb}, nil
}

// AdminPanel is the staff landing screen with the new-order badge.
func (s *OrderService) AdminPanel() (*view.View, error) {
	newCount, err := s.Repo.CountByStatus(entity.StatusNew)
	if err != nil {
		return nil, err
	}
	return &view.View{Text: "Staff panel:", Keyboard: keyboards.AdminMenu(newCount)}, nil
}

// ListOrdersForStaff renders the staff order list: the ALL sentinel gives the
// 10 most recent orders across users, a concrete status gives every matching
// order, unbounded.
func (s *OrderService) ListOrdersForStaff(status entity.OrderStatus, all bool) (*view.View, error) {
	var (
		orders []entity.Order
		text   string
		err    error
	)
	if all {
		orders, err = s.Repo.ListRecent(orderListLimit)
		text = "📋 Last 10 orders:\n\n"
	} else {
		orders, err = s.Repo.ListByStatus(status)
		text = fmt.Sprintf("📋 Orders with status '%s':\n\n", status.Label())
	}
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		text += "No orders here."
	} else {
		for _, o := range orders {
			text += fmt.Sprintf("Order #%d from %s\n", o.ID, o.User.DisplayName())
			text += fmt.Sprintf("Status: %s\nTotal: %d\n", o.Status.Label(), o.TotalPrice)
			text += fmt.Sprintf("Details: /details_%d\n\n", o.ID)
		}
	}

	newCount, err := s.Repo.CountByStatus(entity.StatusNew)
	if err != nil {
		return nil, err
	}
	return &view.View{Text: text, Keyboard: keyboards.AdminMenu(newCount)}, nil
}

// AdvanceStatus overwrites the order's status and best-effort notifies the
// customer. The only guard is the transition rule; sequencing beyond that is
// staff judgment.
func (s *OrderService) AdvanceStatus(orderID uint, newStatus entity.OrderStatus) (*view.View, error) {
	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	rule := s.CanTransition
	if rule == nil {
		rule = DefaultTransition
	}
	if !rule(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: order #%d is already finalized", ErrValidation, orderID)
	}

	if err := s.Repo.UpdateStatus(s.DB, order.ID, newStatus); err != nil {
		return nil, err
	}

	s.notifyCustomerStatus(order, newStatus)

	newCount, err := s.Repo.CountByStatus(entity.StatusNew)
	if err != nil {
		return nil, err
	}
	return &view.View{
		Text: fmt.Sprintf("Order `#%d` status changed to *%s*",
			order.ID, utils.EscapeMarkdown(newStatus.Label())),
		ParseMode: "MarkdownV2",
		Keyboard:  keyboards.AdminMenu(newCount),
	}, nil
}

func (s *OrderService) notifyCustomerStatus(order *entity.Order, newStatus entity.OrderStatus) {
	text := fmt.Sprintf("Your order `#%d` status is now: *%s*",
		order.ID, utils.EscapeMarkdown(newStatus.Label()))
	if newStatus == entity.StatusReady {
		text += "\n\nYou can pick up your order\\!"
	}
	msg := &view.View{Text: text, ParseMode: "MarkdownV2"}
	if err := s.Notifier.Notify(order.UserID, msg); err != nil {
		log.Printf("order %d: could not notify customer %d: %v", order.ID, order.UserID, err)
	}
}

// RenderOrderDetail is the staff deep-link view: full snapshot list from
// OrderItem rows, never from live catalog data.
func (s *OrderService) RenderOrderDetail(orderID uint) (*view.View, error) {
	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("📝 Order #%d details\n\n", order.ID)
	text += fmt.Sprintf("Status: %s\n", order.Status.Label())
	text += fmt.Sprintf("Customer: %s (@%s)\n", order.User.DisplayName(), order.User.Handle())
	text += fmt.Sprintf("Total: %d\n\nContents:\n", order.TotalPrice)
	for _, item := range order.Items {
		text += fmt.Sprintf("▪️ %s: %d pcs\n", item.ItemName, item.Quantity)
	}

	return &view.View{Text: text, Keyboard: keyboards.AdminOrder(order.ID)}, nil
}
