package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/deisishop/storefront/internal/catalog"
	"github.com/deisishop/storefront/pkg/money"
)

// Item is one cart line. Title, price and image are snapshotted from the
// product at add time and never re-synced with the catalog.
type Item struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Store holds the session's cart lines, unique by product id and in insertion
// order. It lives only as long as the session; nothing is persisted.
type Store struct {
	mu    sync.Mutex
	items []Item
}

func NewStore() *Store {
	return &Store{}
}

// Add appends a new line for the product or increments the quantity of an
// existing one. There is no upper bound on quantity.
func (s *Store) Add(product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity++
			return
		}
	}

	s.items = append(s.items, Item{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  1,
	})
}

// Remove drops the line matching the product id. Removing an id that is not
// in the cart is a no-op.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Total recomputes the cart total from scratch on every call so the value can
// never drift from the line items.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(money.LineTotal(item.Price, item.Quantity))
	}
	return total
}

// Clear empties the cart. Called after a successful checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Len reports the number of distinct lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
