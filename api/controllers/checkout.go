package controllers

import (
	"net/http"

	"github.com/deisishop/storefront/api/responses"
	"github.com/deisishop/storefront/api/validators"
	"github.com/deisishop/storefront/internal/checkout"
	pkgerrors "github.com/deisishop/storefront/pkg/errors"
	"github.com/deisishop/storefront/pkg/logger"
)

type checkoutRequest struct {
	Name    string `json:"name" validate:"max=200"`
	Student bool   `json:"student"`
	Coupon  string `json:"coupon" validate:"max=64"`
}

// CheckoutSubmit posts the current cart to the shop and maps the classified
// outcome onto the HTTP surface. Name and cart emptiness are left to the
// submitter so its validation messages reach the buyer unchanged.
func CheckoutSubmit(session Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront session unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := session.Checkout(r.Context(), payload.Name, payload.Student, payload.Coupon)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch outcome.Status {
		case checkout.StatusSuccess:
			responses.WriteSuccess(w, outcome)
		case checkout.StatusValidationFailed:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, outcome.Message).WithDetails(outcome))
		case checkout.StatusRejected:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUpstreamRejected, outcome.Message).WithDetails(outcome))
		case checkout.StatusTransportFailure:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUpstreamUnavailable, outcome.Message).WithDetails(outcome))
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "unclassified checkout outcome"))
		}
	}
}
