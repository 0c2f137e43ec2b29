package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bnuindustry/warehouse-backend/api/controllers"
	"github.com/bnuindustry/warehouse-backend/api/middleware"
	"github.com/bnuindustry/warehouse-backend/internal/finance"
	"github.com/bnuindustry/warehouse-backend/internal/fulfillment"
	"github.com/bnuindustry/warehouse-backend/internal/inventory"
	"github.com/bnuindustry/warehouse-backend/internal/purchasing"
	"github.com/bnuindustry/warehouse-backend/internal/suppliers"
	"github.com/bnuindustry/warehouse-backend/pkg/config"
	"github.com/bnuindustry/warehouse-backend/pkg/logger"
	"github.com/bnuindustry/warehouse-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	inventorySvc inventory.Service,
	supplierSvc suppliers.Service,
	purchasingSvc purchasing.Service,
	fulfillmentSvc fulfillment.Service,
	financeSvc finance.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventorySvc, logg))
			r.Post("/", controllers.InventoryRegister(inventorySvc, logg))
			r.Get("/low-stock", controllers.InventoryLowStock(inventorySvc, logg))
			r.Get("/{productId}", controllers.InventoryDetail(inventorySvc, logg))
			r.Post("/{productId}/receive", controllers.InventoryReceive(inventorySvc, logg))
			r.Post("/{productId}/consume", controllers.InventoryConsume(inventorySvc, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.SupplierList(supplierSvc, logg))
			r.Post("/", controllers.SupplierAdd(supplierSvc, logg))
			r.Get("/{supplierId}", controllers.SupplierDetail(supplierSvc, logg))
			r.Patch("/{supplierId}/contact-email", controllers.SupplierUpdateContactEmail(supplierSvc, logg))
			r.Delete("/{supplierId}", controllers.SupplierRemove(supplierSvc, logg))
			r.Get("/{supplierId}/orders", controllers.SupplierOrders(supplierSvc, purchasingSvc, logg))
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", controllers.PurchaseOrderList(purchasingSvc, logg))
			r.Post("/", controllers.PurchaseOrderCreate(purchasingSvc, logg))
			r.Get("/{orderId}", controllers.PurchaseOrderDetail(purchasingSvc, logg))
			r.Post("/{orderId}/status", controllers.PurchaseOrderStatus(purchasingSvc, logg))
		})

		r.Route("/customer-orders", func(r chi.Router) {
			r.Get("/", controllers.CustomerOrderList(fulfillmentSvc, logg))
			r.Post("/", controllers.CustomerOrderCreate(fulfillmentSvc, logg))
			r.Get("/{orderId}", controllers.CustomerOrderDetail(fulfillmentSvc, logg))
			r.Post("/{orderId}/fulfill", controllers.CustomerOrderFulfill(fulfillmentSvc, logg))
		})

		r.Route("/finance", func(r chi.Router) {
			r.Get("/transactions", controllers.FinanceTransactions(financeSvc, logg))
			r.Get("/summary", controllers.FinanceSummary(financeSvc, logg))
		})
	})

	return r
}
