package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, metrics *observability.Metrics, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger),
	}
	s.setupRoutes(metrics, templateHandlers)
	return s
}

func (s *Server) setupRoutes(metrics *observability.Metrics, templateHandlers *TemplateHandlers) {
	// Dashboard page and operational endpoints
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	if metrics != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	}

	// REST API endpoints
	s.mux.HandleFunc("GET /api/dashboard", s.apiHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /api/sales/{dimension}", s.apiHandlers.HandleSales)
	s.mux.HandleFunc("GET /api/top/products", s.apiHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /api/top/customers", s.apiHandlers.HandleTopCustomers)
	s.mux.HandleFunc("GET /api/trend/daily", s.apiHandlers.HandleDailyTrend)
	s.mux.HandleFunc("GET /api/customers/segments", s.apiHandlers.HandleSegments)
	s.mux.HandleFunc("GET /api/customers/{attribute}", s.apiHandlers.HandleDistribution)
	s.mux.HandleFunc("GET /api/transactions", s.apiHandlers.HandleTransactions)
	s.mux.HandleFunc("GET /api/meta", s.apiHandlers.HandleMeta)
	s.mux.HandleFunc("GET /api/export", s.apiHandlers.HandleExport)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /sse/segments", s.sseHandlers.HandleSegments)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
