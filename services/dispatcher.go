package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"cafebot/actions"
	"cafebot/entity"
	"cafebot/pkg/view"
	"cafebot/repository"
	"cafebot/utils"
)

// Dispatcher is the single entry point for inbound actions and messages. It
// parses tokens into typed actions, applies the availability gate, routes
// between the navigation engine, the order engine and the intake dialogue,
// and maps errors to transient notices. Malformed or unrecognized input is
// ignored, never fatal.
type Dispatcher struct {
	Nav    *NavigationService
	Orders *OrderService
	Intake *IntakeService
	Gate   *AvailabilityGate
}

func NewDispatcher(nav *NavigationService, orders *OrderService, intake *IntakeService, gate *AvailabilityGate) *Dispatcher {
	return &Dispatcher{Nav: nav, Orders: orders, Intake: intake, Gate: gate}
}

// HandleAction consumes one action token for one user session.
func (d *Dispatcher) HandleAction(user *entity.User, isStaff bool, token string) *view.View {
	// Dialogue entry is exempt from the hours gate: it is staff-only anyway.
	if token == "admin_add_item" {
		return d.render(d.Intake.Start(user.ID, isStaff))
	}
	if token == "cancel_action" {
		return d.cancelAction(user, isStaff)
	}

	if !d.Gate.IsOpen() && !isStaff {
		return view.NoticeOnly(d.Gate.ClosedMessage(), true)
	}

	// While the dialogue awaits a category, bare numeric tokens are its
	// choice buttons.
	if d.Intake != nil && d.Nav.Sessions.Stage(user.ID) == StageCategory {
		if id, err := strconv.ParseUint(token, 10, 32); err == nil {
			return d.render(d.Intake.SelectCategory(user.ID, uint(id)))
		}
	}

	action, ok := actions.Parse(token)
	if !ok {
		return &view.View{}
	}

	open := d.Gate.IsOpen()
	switch action.Kind {
	case actions.KindStart:
		return d.startView(user, isStaff)
	case actions.KindStartUserMenu:
		return d.render(d.Nav.UserMenu(isStaff))
	case actions.KindOpenCategory:
		return d.render(d.Nav.EnterCategory(action.CategoryID, isStaff))
	case actions.KindViewItem:
		return d.render(d.Nav.ViewItem(action.ItemID, isStaff, open))
	case actions.KindItemIncr, actions.KindItemDecr:
		return d.render(d.Nav.AdjustQuantity(action.ItemID, action.Quantity, isStaff, open))
	case actions.KindItemBack:
		return d.render(d.Nav.BackToCategory(action.ItemID, isStaff))
	case actions.KindCartAddMany:
		return d.render(d.Nav.AddToCart(user.ID, action.ItemID, action.Quantity, isStaff))
	case actions.KindViewCart:
		return d.render(d.Nav.ViewCart(user.ID, isStaff, open))
	case actions.KindClearCart:
		return d.render(d.Nav.ClearCart(user.ID, isStaff))
	case actions.KindPlaceOrder:
		return d.render(d.Orders.PlaceOrderPreview(user.ID, isStaff))
	case actions.KindConfirmOrder:
		return d.render(d.Orders.ConfirmOrder(user, isStaff))
	case actions.KindMyOrders:
		return d.render(d.Orders.ListOrders(user.ID, isStaff))
	case actions.KindAdminPanel:
		if !isStaff {
			return &view.View{}
		}
		return d.render(d.Orders.AdminPanel())
	case actions.KindAdminViewOrders:
		if !isStaff {
			return &view.View{}
		}
		return d.render(d.Orders.ListOrdersForStaff(action.Status, action.AllOrders))
	case actions.KindAdminSetStatus:
		if !isStaff {
			return &view.View{}
		}
		v, err := d.Orders.AdvanceStatus(action.OrderID, action.Status)
		if errors.Is(err, repository.ErrNotFound) {
			return view.NoticeOnly(fmt.Sprintf("Order #%d not found.", action.OrderID), true)
		}
		return d.render(v, err)
	case actions.KindNoop:
		return &view.View{}
	default:
		return &view.View{}
	}
}

// HandleMessage consumes one free-text message. Commands start with a slash
// and never feed the dialogue; everything else feeds the dialogue when one is
// running and is ignored otherwise.
func (d *Dispatcher) HandleMessage(user *entity.User, isStaff bool, text string) *view.View {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "/") {
		switch {
		case text == "/start":
			if !d.Gate.IsOpen() && !isStaff {
				return &view.View{Text: d.Gate.ClosedMessage()}
			}
			return d.startView(user, isStaff)
		case text == "/cancel":
			return d.cancelAction(user, isStaff)
		case text == "/skip":
			return d.render(d.Intake.SkipDescription(user.ID))
		case strings.HasPrefix(text, "/details_"):
			return d.detailsLink(isStaff, strings.TrimPrefix(text, "/details_"))
		default:
			return &view.View{}
		}
	}

	if d.Intake.InDialogue(user.ID) {
		return d.render(d.Intake.HandleText(user.ID, text))
	}
	return &view.View{}
}

// startView is the greeting screen: staff land on their panel, customers on
// the root listing.
func (d *Dispatcher) startView(user *entity.User, isStaff bool) *view.View {
	if isStaff {
		v, err := d.Orders.AdminPanel()
		if err != nil {
			return d.render(nil, err)
		}
		v.Text = fmt.Sprintf("Hello, %s \\(Staff\\)\\!", utils.EscapeMarkdown(user.FirstName))
		v.ParseMode = "MarkdownV2"
		return v
	}
	return d.render(d.Nav.EnterRoot(user, false))
}

// cancelAction discards any running dialogue and lands the user back on their
// normal screen.
func (d *Dispatcher) cancelAction(user *entity.User, isStaff bool) *view.View {
	d.Intake.Cancel(user.ID)
	if isStaff {
		v, err := d.Orders.AdminPanel()
		if err != nil {
			return d.render(nil, err)
		}
		v.Text = "Action cancelled."
		return v
	}
	v, err := d.Nav.UserMenu(false)
	if err != nil {
		return d.render(nil, err)
	}
	v.Text = "Action cancelled."
	return v
}

// detailsLink handles the staff /details_<orderId> deep link.
func (d *Dispatcher) detailsLink(isStaff bool, idStr string) *view.View {
	if !isStaff {
		return &view.View{}
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return &view.View{}
	}

	v, rerr := d.Orders.RenderOrderDetail(uint(id))
	if errors.Is(rerr, repository.ErrNotFound) {
		return &view.View{Text: fmt.Sprintf("Order #%d not found.", id)}
	}
	return d.render(v, rerr)
}

// render maps service errors onto the view contract: validation and
// permission problems become transient alerts, anything unexpected is logged
// and answered with a generic notice. No error here is fatal to the process.
func (d *Dispatcher) render(v *view.View, err error) *view.View {
	switch {
	case err == nil:
		return v
	case errors.Is(err, ErrValidation):
		return view.NoticeOnly(err.Error(), true)
	case errors.Is(err, ErrForbidden):
		return view.NoticeOnly("You are not allowed to do that.", true)
	case errors.Is(err, repository.ErrNotFound):
		return view.NoticeOnly("Not found.", true)
	default:
		log.Printf("dispatch: %v", err)
		return view.NoticeOnly("Something went wrong. Please try again.", true)
	}
}
