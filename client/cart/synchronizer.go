// Package cart mirrors the authenticated user's server-side cart.
//
// Every mutation is write-through: the server call happens first, and
// local state is only ever replaced by re-reading the server's list.
// No local patch survives a failed call, so after any successful
// operation the mirror cannot diverge from server state.
package cart

import (
	"context"
	"log/slog"
	"sync"

	"bookbazaar/app/domain"
	"bookbazaar/client/port"
	"bookbazaar/client/session"
)

// Synchronizer holds the local mirror of the server-side cart.
type Synchronizer struct {
	api      port.CartAPI
	notifier port.Notifier
	logger   *slog.Logger

	mu    sync.RWMutex
	token string
	items []domain.CartItem
}

// NewSynchronizer creates an empty cart synchronizer. Wire it to a
// session manager with Subscribe(s.OnSessionChange) so the cart follows
// the identity.
func NewSynchronizer(cartAPI port.CartAPI, notifier port.Notifier, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		api:      cartAPI,
		notifier: notifier,
		logger:   logger,
	}
}

// OnSessionChange reacts to identity-changed events: a gained session
// reloads the cart from the server, a lost session clears the local
// mirror immediately without any network call.
func (s *Synchronizer) OnSessionChange(event session.Event) {
	if event.Token == "" || event.Identity == nil {
		s.mu.Lock()
		s.token = ""
		s.items = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.token = event.Token
	s.mu.Unlock()

	s.Load(context.Background())
}

// Load replaces the local item sequence with the server's current list.
// On failure the prior local state is left untouched and no notification
// is surfaced; a stale cart stays available.
func (s *Synchronizer) Load(ctx context.Context) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return
	}

	items, err := s.api.FetchCart(ctx, token)
	if err != nil {
		s.logger.Debug("cart load failed, keeping stale state", "error", err)
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddItem asks the server to add one unit of a book, then resyncs.
// Title is only used for the success notification.
func (s *Synchronizer) AddItem(ctx context.Context, bookID, title string) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		s.notifier.Error("Please login", "You need to be logged in to add items to cart")
		return
	}

	if err := s.api.AddItem(ctx, token, bookID, 1); err != nil {
		s.notifier.Error("Failed to add to cart", "Please try again")
		return
	}

	s.Load(ctx)
	s.notifier.Success("Added to cart", title+" has been added to your cart")
}

// SetQuantity asks the server to set a line item's quantity, then
// resyncs. Quantities below the floor are clamped here rather than at
// every call site.
func (s *Synchronizer) SetQuantity(ctx context.Context, itemID string, quantity int) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return
	}

	quantity = domain.ClampQuantity(quantity)

	if err := s.api.UpdateItem(ctx, token, itemID, quantity); err != nil {
		s.notifier.Error("Failed to update quantity", "Please try again")
		return
	}

	s.Load(ctx)
}

// RemoveItem asks the server to delete a line item, then resyncs.
func (s *Synchronizer) RemoveItem(ctx context.Context, itemID string) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return
	}

	if err := s.api.RemoveItem(ctx, token, itemID); err != nil {
		s.notifier.Error("Failed to remove from cart", "Please try again")
		return
	}

	s.Load(ctx)
	s.notifier.Success("Removed from cart", "Item has been removed from your cart")
}

// Clear empties the local item sequence without contacting the server.
// Its one caller is the success path of order placement, where the
// server has already emptied its side.
func (s *Synchronizer) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a copy of the current local item sequence
func (s *Synchronizer) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems returns the sum of quantities, recomputed on every read
func (s *Synchronizer) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalItems(s.items)
}

// TotalPrice returns the monetary total, recomputed on every read
func (s *Synchronizer) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalPrice(s.items)
}
