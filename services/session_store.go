package services

import (
	"sort"
	"sync"
)

// DialogueStage tracks where a staff session is inside the item-intake
// dialogue. StageNone means no dialogue is running.
type DialogueStage int

const (
	StageNone DialogueStage = iota
	StageCategory
	StageName
	StageDescription
	StagePrice
)

// ItemDraft accumulates the intake dialogue's answers before the item is
// persisted.
type ItemDraft struct {
	CategoryID  uint
	Name        string
	Description *string
}

// Session is one user's ephemeral state: the cart and, for staff, the intake
// dialogue. Lives for the process lifetime; never expired in-core.
type Session struct {
	Cart  map[uint]int // item id -> quantity, always >= 1
	Stage DialogueStage
	Draft *ItemDraft
}

// CartLine is a deterministic snapshot of one cart entry.
type CartLine struct {
	ItemID   uint
	Quantity int
}

// SessionStore keeps per-user sessions behind one mutex, created on first
// contact. Each inbound action is handled to completion per session, so the
// lock only guards the map and short read/write bursts.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uint]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uint]*Session)}
}

func (s *SessionStore) get(userID uint) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{Cart: make(map[uint]int)}
		s.sessions[userID] = sess
	}
	return sess
}

// AddToCart merge-adds quantity for the item. Entries never drop to zero: a
// non-positive resulting quantity removes the entry.
func (s *SessionStore) AddToCart(userID, itemID uint, qty int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	next := sess.Cart[itemID] + qty
	if next <= 0 {
		delete(sess.Cart, itemID)
		return 0
	}
	sess.Cart[itemID] = next
	return next
}

// CartLines returns the cart ordered by item id so renders are stable.
func (s *SessionStore) CartLines(userID uint) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	lines := make([]CartLine, 0, len(sess.Cart))
	for id, qty := range sess.Cart {
		lines = append(lines, CartLine{ItemID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines
}

func (s *SessionStore) CartSize(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.get(userID).Cart)
}

// ClearCart is idempotent.
func (s *SessionStore) ClearCart(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).Cart = make(map[uint]int)
}

func (s *SessionStore) Stage(userID uint) DialogueStage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).Stage
}

func (s *SessionStore) SetStage(userID uint, stage DialogueStage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).Stage = stage
}

func (s *SessionStore) Draft(userID uint) *ItemDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).Draft
}

func (s *SessionStore) SetDraft(userID uint, draft *ItemDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).Draft = draft
}

// ResetDialogue discards any draft and leaves the dialogue.
func (s *SessionStore) ResetDialogue(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	sess.Stage = StageNone
	sess.Draft = nil
}
