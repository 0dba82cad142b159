package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deisishop/storefront/api/controllers"
	"github.com/deisishop/storefront/api/middleware"
	"github.com/deisishop/storefront/pkg/config"
	"github.com/deisishop/storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	session controllers.Session,
	shop controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, shop))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(session, logg))
		r.Get("/categories", controllers.CategoriesList(session, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(session, logg))
			r.Post("/items", controllers.CartAddItem(session, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(session, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(session, logg))
	})

	return r
}
