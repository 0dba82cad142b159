package storefront

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/deisishop/storefront/internal/cart"
	"github.com/deisishop/storefront/internal/catalog"
	"github.com/deisishop/storefront/internal/checkout"
	pkgerrors "github.com/deisishop/storefront/pkg/errors"
	"github.com/deisishop/storefront/pkg/logger"
	"github.com/deisishop/storefront/pkg/metrics"
	"github.com/deisishop/storefront/pkg/money"
)

// CatalogFetcher is the read side of the upstream shop API.
type CatalogFetcher interface {
	FetchProducts(ctx context.Context) []catalog.Product
	FetchCategories(ctx context.Context) []string
}

// OrderSubmitter posts a purchase and classifies the result.
type OrderSubmitter interface {
	Submit(ctx context.Context, items []checkout.LineItem, name string, student bool, coupon string) checkout.Outcome
}

// Session is the application root of one storefront run: it owns the cached
// catalog, the category list, and the cart, and orchestrates checkout.
type Session struct {
	fetcher   CatalogFetcher
	submitter OrderSubmitter
	cart      *cart.Store
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics

	mu         sync.RWMutex
	products   []catalog.Product
	categories []string

	checkoutBusy atomic.Bool
}

// Params carries the session dependencies.
type Params struct {
	Fetcher   CatalogFetcher
	Submitter OrderSubmitter
	Logger    *logger.Logger
	Metrics   *metrics.StorefrontMetrics
}

// NewSession builds a session with an empty cart.
func NewSession(params Params) (*Session, error) {
	if params.Fetcher == nil {
		return nil, fmt.Errorf("catalog fetcher required")
	}
	if params.Submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	return &Session{
		fetcher:   params.Fetcher,
		submitter: params.Submitter,
		cart:      cart.NewStore(),
		logg:      params.Logger,
		metrics:   params.Metrics,
	}, nil
}

// Start loads the catalog and then the categories. The order matters: the
// category fallback reads the already-settled product cache, so the category
// fetch only begins once the product fetch has settled.
func (s *Session) Start(ctx context.Context) {
	products := s.fetcher.FetchProducts(ctx)

	categories := s.fetcher.FetchCategories(ctx)
	if len(categories) == 0 {
		categories = deriveCategories(products)
		if s.logg != nil && len(categories) > 0 {
			s.logg.Info(ctx, "categories derived from catalog")
		}
	}

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.mu.Unlock()

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"products":   len(products),
			"categories": len(categories),
		})
		s.logg.Info(ctx, "storefront.started")
	}
}

// deriveCategories collects the distinct non-empty product categories in
// first-seen catalog order.
func deriveCategories(products []catalog.Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, product := range products {
		if product.Category == "" {
			continue
		}
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	return categories
}

// Products applies the current filter controls to the cached catalog.
func (s *Session) Products(category, search string, order catalog.SortOrder) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.ApplyFilters(s.products, category, search, order)
}

// Categories returns the category list for the filter control.
func (s *Session) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return categories
}

// AddToCart resolves the product from the catalog cache and snapshots it into
// the cart.
func (s *Session) AddToCart(productID int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.products {
		if product.ID == productID {
			s.cart.Add(product)
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not in catalog").WithDetails(map[string]any{"product_id": productID})
}

// RemoveFromCart drops the cart line for the product id; unknown ids are a
// no-op.
func (s *Session) RemoveFromCart(productID int64) {
	s.cart.Remove(productID)
}

// CartView is what the presentation layer renders for the cart.
type CartView struct {
	Items []cart.Item `json:"items"`
	Total string      `json:"total"`
}

// Cart returns the current cart lines and formatted total.
func (s *Session) Cart() CartView {
	return CartView{
		Items: s.cart.Items(),
		Total: money.Format(s.cart.Total()),
	}
}

// ErrCheckoutInFlight is returned while a previous submission is still
// pending; the repeated submission performs no network call.
var ErrCheckoutInFlight = pkgerrors.New(pkgerrors.CodeConflict, "a checkout is already in progress")

// Checkout submits the current cart. The cart is cleared only on a Success
// outcome; Rejected and TransportFailure leave it intact for retry.
func (s *Session) Checkout(ctx context.Context, name string, student bool, coupon string) (checkout.Outcome, error) {
	if !s.checkoutBusy.CompareAndSwap(false, true) {
		return checkout.Outcome{}, ErrCheckoutInFlight
	}
	defer s.checkoutBusy.Store(false)

	items := s.cart.Items()
	lines := make([]checkout.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, checkout.LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	outcome := s.submitter.Submit(ctx, lines, name, student, coupon)
	s.metrics.IncCheckoutOutcome(string(outcome.Status))

	if outcome.Status == checkout.StatusSuccess {
		s.cart.Clear()
	}

	if s.logg != nil {
		ctx = s.logg.WithField(ctx, "outcome", string(outcome.Status))
		s.logg.Info(ctx, "storefront.checkout")
	}

	return outcome, nil
}
