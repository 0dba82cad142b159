package controllers

import (
	"net/http"

	"github.com/deisishop/storefront/api/responses"
	"github.com/deisishop/storefront/internal/catalog"
	pkgerrors "github.com/deisishop/storefront/pkg/errors"
	"github.com/deisishop/storefront/pkg/logger"
)

// ProductsList renders the catalog through the current filter controls. The
// query parameters mirror the storefront's filter widgets: category, q for
// the title search, and sort (asc/desc by price).
func ProductsList(session Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront session unavailable"))
			return
		}

		query := r.URL.Query()
		products := session.Products(
			query.Get("category"),
			query.Get("q"),
			catalog.ParseSortOrder(query.Get("sort")),
		)

		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

// CategoriesList renders the options for the category filter control.
func CategoriesList(session Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront session unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"categories": session.Categories(),
		})
	}
}
