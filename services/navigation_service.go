package services

import (
	"errors"
	"fmt"

	"cafebot/entity"
	"cafebot/keyboards"
	"cafebot/pkg/view"
	"cafebot/repository"
	"cafebot/utils"
)

// NavigationService resolves menu-navigation actions into rendered views and
// owns cart mutation. A target id that does not resolve yields a graceful
// fallback view, never a failed action.
type NavigationService struct {
	Catalog  *repository.CatalogRepository
	Sessions *SessionStore
}

func NewNavigationService(catalog *repository.CatalogRepository, sessions *SessionStore) *NavigationService {
	return &NavigationService{Catalog: catalog, Sessions: sessions}
}

func (s *NavigationService) rootMenu(isStaff bool) (view.Keyboard, error) {
	roots, err := s.Catalog.ListRootCategories()
	if err != nil {
		return nil, err
	}
	return keyboards.MainMenu(roots, isStaff), nil
}

// EnterRoot renders the greeting plus the root listing.
func (s *NavigationService) EnterRoot(user *entity.User, isStaff bool) (*view.View, error) {
	kb, err := s.rootMenu(isStaff)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Hello, %s", utils.EscapeMarkdown(user.FirstName))
	if isStaff {
		text += " \\(Staff\\)"
	}
	text += "\\!"
	return &view.View{Text: text, ParseMode: "MarkdownV2", Keyboard: kb}, nil
}

// UserMenu is the root listing without the greeting, used when staff switch
// over from their panel.
func (s *NavigationService) UserMenu(isStaff bool) (*view.View, error) {
	kb, err := s.rootMenu(isStaff)
	if err != nil {
		return nil, err
	}
	return &view.View{Text: "Customer menu:", Keyboard: kb}, nil
}

// EnterCategory renders a category's subcategories or items. The same action
// drills arbitrarily deep: subcategory buttons carry further category tokens.
func (s *NavigationService) EnterCategory(categoryID uint, isStaff bool) (*view.View, error) {
	cat, err := s.Catalog.GetCategory(categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.fallback("Category not found.", isStaff)
	}
	if err != nil {
		return nil, err
	}

	var text string
	if len(cat.Subcategories) > 0 {
		text = fmt.Sprintf("Category '%s'. Choose a subcategory:", cat.Name)
	} else {
		text = fmt.Sprintf("Items in '%s':", cat.Name)
		if len(cat.Items) == 0 {
			text += "\n\nNothing here yet."
		}
	}
	return &view.View{Text: text, Keyboard: keyboards.Category(cat)}, nil
}

// ViewItem renders the item screen with the stepper initialized to 1.
func (s *NavigationService) ViewItem(itemID uint, isStaff, open bool) (*view.View, error) {
	return s.renderItem(itemID, 1, isStaff, open)
}

// AdjustQuantity re-renders the stepper. The quantity rides in the token, not
// in session state; below 1 it clamps, upward it is unbounded.
func (s *NavigationService) AdjustQuantity(itemID uint, quantity int, isStaff, open bool) (*view.View, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.renderItem(itemID, quantity, isStaff, open)
}

func (s *NavigationService) renderItem(itemID uint, quantity int, isStaff, open bool) (*view.View, error) {
	item, err := s.Catalog.GetItem(itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.fallback("Item not found.", isStaff)
	}
	if err != nil {
		return nil, err
	}

	desc := "No description"
	if item.Description != nil && *item.Description != "" {
		desc = *item.Description
	}
	text := fmt.Sprintf("*%s* \\(%s\\)\n\n_%s_",
		utils.EscapeMarkdown(item.Name),
		utils.EscapeMarkdown(fmt.Sprintf("%d", item.Price)),
		utils.EscapeMarkdown(desc),
	)
	canAdd := open || isStaff
	return &view.View{
		Text:      text,
		ParseMode: "MarkdownV2",
		Keyboard:  keyboards.ItemDetails(item.ID, quantity, canAdd),
	}, nil
}

// BackToCategory returns from an item screen to its category listing.
func (s *NavigationService) BackToCategory(itemID uint, isStaff bool) (*view.View, error) {
	item, err := s.Catalog.GetItem(itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.fallback("Item not found.", isStaff)
	}
	if err != nil {
		return nil, err
	}
	return s.EnterCategory(item.CategoryID, isStaff)
}

// AddToCart merge-adds quantity to any existing cart entry for the item, then
// returns to the item's category listing with an ephemeral acknowledgement.
func (s *NavigationService) AddToCart(userID, itemID uint, quantity int, isStaff bool) (*view.View, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	item, err := s.Catalog.GetItem(itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.fallback("Item not found.", isStaff)
	}
	if err != nil {
		return nil, err
	}

	s.Sessions.AddToCart(userID, item.ID, quantity)

	v, err := s.EnterCategory(item.CategoryID, isStaff)
	if err != nil {
		return nil, err
	}
	v.Notice = fmt.Sprintf("✅ %d pcs added to cart!", quantity)
	return v, nil
}

// ViewCart re-resolves every cart line against the catalog. Lines whose item
// no longer resolves are silently skipped; the cart is not an authoritative
// price source.
func (s *NavigationService) ViewCart(userID uint, isStaff, open bool) (*view.View, error) {
	lines := s.Sessions.CartLines(userID)
	if len(lines) == 0 {
		kb, err := s.rootMenu(isStaff)
		if err != nil {
			return nil, err
		}
		return &view.View{Text: "Your cart is empty.", Keyboard: kb}, nil
	}

	text := "🛒 *Your cart:*\n\n"
	var total int64
	for _, line := range lines {
		item, err := s.Catalog.GetItem(line.ItemID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lineTotal := int64(line.Quantity) * item.Price
		total += lineTotal
		text += fmt.Sprintf("▪️ *%s*\n_%s pcs x %s \\= %s_\n",
			utils.EscapeMarkdown(item.Name),
			utils.EscapeMarkdown(fmt.Sprintf("%d", line.Quantity)),
			utils.EscapeMarkdown(fmt.Sprintf("%d", item.Price)),
			utils.EscapeMarkdown(fmt.Sprintf("%d", lineTotal)),
		)
	}
	text += fmt.Sprintf("\n💰 *Total:* %s", utils.EscapeMarkdown(fmt.Sprintf("%d", total)))

	return &view.View{
		Text:      text,
		ParseMode: "MarkdownV2",
		Keyboard:  keyboards.CartActions(open || isStaff),
	}, nil
}

// ClearCart empties the cart unconditionally; clearing an empty cart is fine.
func (s *NavigationService) ClearCart(userID uint, isStaff bool) (*view.View, error) {
	s.Sessions.ClearCart(userID)
	kb, err := s.rootMenu(isStaff)
	if err != nil {
		return nil, err
	}
	return &view.View{Text: "Cart cleared.", Keyboard: kb}, nil
}

func (s *NavigationService) fallback(text string, isStaff bool) (*view.View, error) {
	kb, err := s.rootMenu(isStaff)
	if err != nil {
		return nil, err
	}
	return &view.View{Text: text, Keyboard: kb}, nil
}
