package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rivayastudio/rivaya-backend/api/controllers"
	"github.com/rivayastudio/rivaya-backend/api/middleware"
	"github.com/rivayastudio/rivaya-backend/internal/adminauth"
	"github.com/rivayastudio/rivaya-backend/internal/catalog"
	"github.com/rivayastudio/rivaya-backend/internal/coupons"
	"github.com/rivayastudio/rivaya-backend/internal/orders"
	"github.com/rivayastudio/rivaya-backend/internal/settings"
	"github.com/rivayastudio/rivaya-backend/internal/stats"
	"github.com/rivayastudio/rivaya-backend/pkg/config"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store kv.Pinger,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	couponService coupons.Service,
	orderService orders.Service,
	authService adminauth.Service,
	settingsService settings.Service,
	statsService stats.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{id}", controllers.GetProduct(catalogService, logg))
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Post("/coupons/validate", controllers.ValidateCoupon(couponService, logg))
		r.Post("/orders", controllers.CreateOrder(orderService, logg))
		r.Get("/orders/{id}", controllers.GetOrder(orderService, logg))
		r.Get("/settings", controllers.GetSettings(settingsService, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", controllers.AdminLogin(authService, logg))
			// Logout and verify stay outside the token gate: logging
			// out an already-dead token still answers success, and the
			// panel checks tokens it does not yet trust.
			r.Post("/logout", controllers.AdminLogout(authService, logg))
			r.Get("/verify", controllers.AdminVerify(authService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(authService, logg))

				r.Post("/products", controllers.AdminCreateProduct(catalogService, logg))
				r.Put("/products/{id}", controllers.AdminUpdateProduct(catalogService, logg))
				r.Delete("/products/{id}", controllers.AdminDeleteProduct(catalogService, logg))

				r.Post("/categories", controllers.AdminReplaceCategories(catalogService, logg))

				r.Get("/coupons", controllers.AdminListCoupons(couponService, logg))
				r.Post("/coupons", controllers.AdminCreateCoupon(couponService, logg))
				r.Delete("/coupons/{code}", controllers.AdminDeleteCoupon(couponService, logg))

				r.Get("/orders", controllers.AdminListOrders(orderService, logg))
				r.Get("/orders/{id}", controllers.GetOrder(orderService, logg))
				r.Put("/orders/{id}", controllers.AdminUpdateOrder(orderService, logg))

				r.Get("/settings", controllers.GetSettings(settingsService, logg))
				r.Put("/settings", controllers.AdminUpdateSettings(settingsService, logg))

				r.Get("/stats", controllers.AdminStats(statsService, logg))
			})
		})
	})

	return r
}
