package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/deisishop/storefront/api/responses"
	"github.com/deisishop/storefront/api/validators"
	pkgerrors "github.com/deisishop/storefront/pkg/errors"
	"github.com/deisishop/storefront/pkg/logger"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// CartFetch renders the current cart lines and total.
func CartFetch(session Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront session unavailable"))
			return
		}

		responses.WriteSuccess(w, session.Cart())
	}
}

// CartAddItem snapshots a catalog product into the cart, incrementing the
// quantity when the product is already there.
func CartAddItem(session Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront session unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := session.AddToCart(payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session.Cart())
	}
}

// CartRemoveItem drops the cart line for the given product id. Removing an id
// that is not in the cart just returns the unchanged cart.
func CartRemoveItem(session Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront session unavailable"))
			return
		}

		raw := chi.URLParam(r, "productID")
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		session.RemoveFromCart(productID)
		responses.WriteSuccess(w, session.Cart())
	}
}
