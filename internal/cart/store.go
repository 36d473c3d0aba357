package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Store holds one shopper's cart and mirrors it into a Storage slot after
// every successful mutation.
//
// Policy violations (ErrStockExceeded, ErrInvalidQuantity) leave the cart
// untouched. Persistence is fire-and-forget from the caller's point of view:
// a failed save is logged and kept in Err, but never undoes the mutation.
type Store struct {
	mu      sync.Mutex
	items   []Item
	storage Storage
	logger  *log.Logger

	// loaded gates persist: nothing is written before the initial load ran,
	// so startup can never overwrite a stored cart with an empty one.
	loaded  bool
	lastErr error
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open creates a store and performs its single load from storage. A missing
// slot, a storage failure, or unreadable contents all start an empty cart.
func Open(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, items: []Item{}}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	defer func() { s.loaded = true }()

	raw, ok, err := s.storage.Load(ctx)
	if err != nil {
		s.logf("cart load failed, starting empty: %v", err)
		return
	}
	if !ok || len(raw) == 0 {
		return
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logf("cart contents unreadable, starting empty: %v", err)
		return
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 {
			continue
		}
		s.items = append(s.items, it)
	}
}

// Add puts quantity units of item in the cart, merging with an existing line
// for the same product, color, and size. quantity < 1 means 1.
func (s *Store) Add(ctx context.Context, item Item, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.Key()); i >= 0 {
		next := s.items[i].Quantity + quantity
		if next > s.items[i].Stock {
			return ErrStockExceeded
		}
		s.items[i].Quantity = next
	} else {
		if quantity > item.Stock {
			return ErrStockExceeded
		}
		item.Quantity = quantity
		s.items = append(s.items, item)
	}

	s.persist(ctx)
	return nil
}

// Remove drops the line for key. Removing an absent line is a no-op.
func (s *Store) Remove(ctx context.Context, key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persist(ctx)
}

// UpdateQuantity sets a line's quantity exactly. An absent line is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, key Key, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil
	}
	if quantity > s.items[i].Stock {
		return ErrStockExceeded
	}
	s.items[i].Quantity = quantity
	s.persist(ctx)
	return nil
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []Item{}
	s.persist(ctx)
}

// Total is the unrounded sum of price times quantity.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, it := range s.items {
		total += it.LineTotal()
	}
	return total
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Err reports the most recent persistence failure, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) indexOf(key Key) int {
	for i, it := range s.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) {
	if !s.loaded {
		return
	}
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.lastErr = fmt.Errorf("encode cart: %w", err)
		s.logf("%v", s.lastErr)
		return
	}
	if err := s.storage.Save(ctx, raw); err != nil {
		s.lastErr = fmt.Errorf("save cart: %w", err)
		s.logf("%v", s.lastErr)
		return
	}
	s.lastErr = nil
}

func (s *Store) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
