package services

import (
	"errors"
	"fmt"
	"strings"

	"cafebot/entity"
	"cafebot/keyboards"
	"cafebot/pkg/view"
	"cafebot/repository"
)

// IntakeService runs the staff-only item-creation dialogue: a strictly
// ordered four-stage conversation (category, name, description, price) whose
// draft lives on the session. One dialogue per session at a time; cancel is
// accepted at every stage and discards the draft without persisting anything.
type IntakeService struct {
	Catalog  *repository.CatalogRepository
	Sessions *SessionStore

	// Panel renders the screen staff land on when the dialogue exits.
	Panel func() (*view.View, error)
}

func NewIntakeService(catalog *repository.CatalogRepository, sessions *SessionStore, panel func() (*view.View, error)) *IntakeService {
	return &IntakeService{Catalog: catalog, Sessions: sessions, Panel: panel}
}

// InDialogue reports whether a dialogue is running for the session.
func (s *IntakeService) InDialogue(userID uint) bool {
	return s.Sessions.Stage(userID) != StageNone
}

// Start enters the dialogue. Only leaf categories are offered: items may only
// attach to categories without subcategories.
func (s *IntakeService) Start(userID uint, isStaff bool) (*view.View, error) {
	if !isStaff {
		return nil, fmt.Errorf("%w: adding items is staff-only", ErrForbidden)
	}

	leafs, err := s.Catalog.ListLeafCategories()
	if err != nil {
		return nil, err
	}

	s.Sessions.SetDraft(userID, &ItemDraft{})
	s.Sessions.SetStage(userID, StageCategory)

	return &view.View{
		Text:     "Pick a LEAF category for the new item:",
		Keyboard: keyboards.LeafCategoryChoice(leafs),
	}, nil
}

// SelectCategory handles the stage-1 choice. A non-leaf or unknown id
// re-prompts without advancing.
func (s *IntakeService) SelectCategory(userID, categoryID uint) (*view.View, error) {
	if s.Sessions.Stage(userID) != StageCategory {
		return &view.View{}, nil
	}

	cat, err := s.Catalog.GetCategory(categoryID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !cat.IsLeaf()) {
		leafs, lerr := s.Catalog.ListLeafCategories()
		if lerr != nil {
			return nil, lerr
		}
		return &view.View{
			Text:     "That category cannot hold items. Pick a LEAF category:",
			Keyboard: keyboards.LeafCategoryChoice(leafs),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	draft := s.Sessions.Draft(userID)
	draft.CategoryID = cat.ID
	s.Sessions.SetStage(userID, StageName)

	return &view.View{
		Text:     "Great! Now send the name of the new item:",
		Keyboard: keyboards.Cancel(),
	}, nil
}

// HandleText feeds a free-text message into whichever stage awaits one.
func (s *IntakeService) HandleText(userID uint, text string) (*view.View, error) {
	switch s.Sessions.Stage(userID) {
	case StageName:
		return s.submitName(userID, text)
	case StageDescription:
		return s.submitDescription(userID, &text)
	case StagePrice:
		return s.submitPrice(userID, text)
	default:
		return &view.View{}, nil
	}
}

// SkipDescription stores a null description and advances to the price stage.
func (s *IntakeService) SkipDescription(userID uint) (*view.View, error) {
	if s.Sessions.Stage(userID) != StageDescription {
		return &view.View{}, nil
	}
	return s.submitDescription(userID, nil)
}

func (s *IntakeService) submitName(userID uint, name string) (*view.View, error) {
	if strings.TrimSpace(name) == "" {
		return &view.View{
			Text:     "The name cannot be empty. Send the item name:",
			Keyboard: keyboards.Cancel(),
		}, nil
	}

	s.Sessions.Draft(userID).Name = name
	s.Sessions.SetStage(userID, StageDescription)
	return &view.View{
		Text:     "Name saved.\nNow send a description (or /skip):",
		Keyboard: keyboards.Cancel(),
	}, nil
}

func (s *IntakeService) submitDescription(userID uint, desc *string) (*view.View, error) {
	s.Sessions.Draft(userID).Description = desc
	s.Sessions.SetStage(userID, StagePrice)

	text := "Description saved. Now send the price (digits only):"
	if desc == nil {
		text = "Description skipped. Now send the price (digits only):"
	}
	return &view.View{Text: text, Keyboard: keyboards.Cancel()}, nil
}

// submitPrice accepts only a string of decimal digits encoding an integer
// strictly greater than zero; anything else re-prompts this same stage with
// the draft intact.
func (s *IntakeService) submitPrice(userID uint, text string) (*view.View, error) {
	price, ok := parsePrice(text)
	if !ok {
		return &view.View{
			Text:     "That price is not valid. Send a positive whole number:",
			Keyboard: keyboards.Cancel(),
		}, nil
	}

	draft := s.Sessions.Draft(userID)
	item := &entity.MenuItem{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       price,
		CategoryID:  draft.CategoryID,
	}
	if err := s.Catalog.CreateItem(item); err != nil {
		return nil, err
	}

	s.Sessions.ResetDialogue(userID)

	v, err := s.Panel()
	if err != nil {
		return nil, err
	}
	v.Notice = fmt.Sprintf("✅ New item '%s' added!", item.Name)
	return v, nil
}

// Cancel discards the draft and exits the dialogue; outside of one it still
// answers with the cancelled screen.
func (s *IntakeService) Cancel(userID uint) *view.View {
	s.Sessions.ResetDialogue(userID)
	return &view.View{Text: "Action cancelled."}
}

func parsePrice(text string) (int64, bool) {
	if text == "" || len(text) > 12 {
		return 0, false
	}
	var price int64
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
		price = price*10 + int64(r-'0')
	}
	if price <= 0 {
		return 0, false
	}
	return price, true
}
