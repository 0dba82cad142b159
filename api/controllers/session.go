package controllers

import (
	"context"

	"github.com/deisishop/storefront/internal/catalog"
	"github.com/deisishop/storefront/internal/checkout"
	"github.com/deisishop/storefront/internal/storefront"
)

// Session is the slice of the storefront session the controllers consume.
type Session interface {
	Products(category, search string, order catalog.SortOrder) []catalog.Product
	Categories() []string
	AddToCart(productID int64) error
	RemoveFromCart(productID int64)
	Cart() storefront.CartView
	Checkout(ctx context.Context, name string, student bool, coupon string) (checkout.Outcome, error)
}

// Pinger reports whether the upstream shop is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
