package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ziiziikids/ziizii-backend/api/controllers"
	"github.com/ziiziikids/ziizii-backend/api/middleware"
	"github.com/ziiziikids/ziizii-backend/internal/catalog"
	"github.com/ziiziikids/ziizii-backend/internal/inventory"
	"github.com/ziiziikids/ziizii-backend/internal/notifications"
	"github.com/ziiziikids/ziizii-backend/internal/orders"
	productsvc "github.com/ziiziikids/ziizii-backend/internal/products"
	"github.com/ziiziikids/ziizii-backend/pkg/config"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
	pkgredis "github.com/ziiziikids/ziizii-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers. Optional
// dependencies (redis, metrics registry) may be nil.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     controllers.Pinger
	RedisPinger  controllers.Pinger
	Idempotency  pkgredis.IdempotencyStore
	MetricsReg   *prometheus.Registry
	Products     productsvc.Service
	Catalog      catalog.Service
	Orders       orders.Service
	Inventory    inventory.Service
	Notification notifications.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	logg := deps.Logger
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.MetricsReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsReg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.Idempotency, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
			r.Put("/{productId}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(deps.Products, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Catalog, logg))
			r.Get("/{slug}", controllers.GetCategory(deps.Catalog, logg))
		})
		r.Get("/brands", controllers.ListBrands(deps.Catalog, logg))

		r.Route("/search", func(r chi.Router) {
			r.Get("/", controllers.SearchProducts(deps.Products, logg))
			r.Get("/suggestions", controllers.SearchSuggestions(deps.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
			r.Get("/user/{userId}", controllers.ListUserOrders(deps.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(deps.Orders, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/adjust", controllers.AdjustStock(deps.Inventory, logg))
			r.Post("/reserve", controllers.ReserveStock(deps.Inventory, logg))
			r.Post("/release", controllers.ReleaseStock(deps.Inventory, logg))
			r.Get("/low-stock", controllers.LowStockAlerts(deps.Inventory, logg))
			r.Get("/summary", controllers.StockSummary(deps.Inventory, logg))
			r.Get("/history/{variantId}", controllers.StockHistory(deps.Inventory, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notification, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notification, logg))
		})
	})

	return r
}
