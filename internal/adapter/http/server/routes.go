package server

import (
	"context"
	"net/http"

	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/middleware"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware, mode types.ServiceMode, log logger.Logger) {
	// System Health
	mux.HandleFunc("/health", routes.health.HealthCheck)

	setupSwaggerRoutes(mux, mode, log)
	setupMetricsRoute(mux)

	switch mode {
	case types.StorefrontService:
		setupStorefrontRoutes(mux, routes, m)
	case types.NavigatorService:
		setupNavigatorRoutes(mux, routes)
	}
}

// setupStorefrontRoutes setups routes for the storefront service.
// Destructive pin actions sit behind the unlock gate.
func setupStorefrontRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	mux.HandleFunc("POST /auth/unlock", routes.auth.Unlock) // Exchange the PIN for an unlock token

	mux.HandleFunc("GET /pins", routes.pin.List)
	mux.HandleFunc("GET /history", routes.pin.History)
	mux.Handle("POST /pins", m.Gate(routes.pin.Create))                       // Drop a new delivery pin
	mux.Handle("POST /pins/import", m.Gate(routes.pin.Import))                // Bulk import (replace or append)
	mux.Handle("DELETE /pins/{pin_id}", m.Gate(routes.pin.Delete))            // Remove a pin from the board
	mux.Handle("POST /pins/{pin_id}/complete", m.Gate(routes.pin.Complete))   // Mark delivered, move to history

	mux.HandleFunc("POST /orders", routes.order.Submit) // Submit a customer cart
	mux.HandleFunc("GET /orders", routes.order.List)
	mux.HandleFunc("GET /orders/{order_id}", routes.order.Get)
	mux.HandleFunc("POST /orders/{order_id}/printed", routes.order.MarkPrinted)
}

// setupNavigatorRoutes setups routes for the navigator service
func setupNavigatorRoutes(mux *http.ServeMux, routes *handlers) {
	mux.HandleFunc("GET /ws/drivers/{driver_id}", routes.driver.HandleWS) // WebSocket connection for drivers
}

// setupSwaggerRoutes configures Swagger UI endpoints based on service mode
func setupSwaggerRoutes(mux *http.ServeMux, mode types.ServiceMode, log logger.Logger) {
	var instanceName string

	switch mode {
	case types.StorefrontService:
		instanceName = "storefront"
	case types.NavigatorService:
		instanceName = "navigator"
	default:
		log.Warn(wrap.WithAction(context.Background(), "setup swagger routes"), "unknown service mode for swagger setup", "mode", mode)
		return
	}

	// Swagger UI endpoint
	swaggerURL := httpSwagger.InstanceName(instanceName)
	mux.HandleFunc("/swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
}
