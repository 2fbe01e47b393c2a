package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"sales-dashboard/internal/engine"
	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/export"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const (
	defaultTopLimit   = 10
	defaultTableLimit = 50
	cacheMaxAge       = "public, max-age=300"
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
		validate:  validator.New(),
	}
}

func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := observability.GetRequestID(r.Context())
	apperrors.WriteError(w, h.logger, toAppError(err), requestID)
}

var cacheHeaders = map[string]string{"Cache-Control": cacheMaxAge}

// HandleDashboard returns every derived sales view for one filter selection.
func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	payload, err := h.analytics.Dashboard(criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, payload, cacheHeaders)
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	kpis, err := h.analytics.KPIs(criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, kpis, cacheHeaders)
}

// HandleSales sums totals by the path dimension: region, category,
// payment_method or customer_grade.
func (h *APIHandlers) HandleSales(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dim := engine.Dimension(r.PathValue("dimension"))
	groups, err := h.analytics.GroupSum(criteria, dim)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, groups, cacheHeaders)
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	h.handleTopN(w, r, engine.DimensionProductName)
}

func (h *APIHandlers) HandleTopCustomers(w http.ResponseWriter, r *http.Request) {
	h.handleTopN(w, r, engine.DimensionCustomerName)
}

func (h *APIHandlers) handleTopN(w http.ResponseWriter, r *http.Request, dim engine.Dimension) {
	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	limit, err := limitFromQuery(r, defaultTopLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	top, err := h.analytics.TopN(criteria, dim, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, top, cacheHeaders)
}

func (h *APIHandlers) HandleDailyTrend(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	series, err := h.analytics.DailySeries(criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, series, cacheHeaders)
}

// HandleSegments returns all four customer distributions. These cover the
// whole customer table and ignore the sales filter.
func (h *APIHandlers) HandleSegments(w http.ResponseWriter, r *http.Request) {
	payload, err := h.analytics.Segments()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, payload, cacheHeaders)
}

// HandleDistribution returns one customer distribution by path attribute:
// age_group, gender, region or segment.
func (h *APIHandlers) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	attr := engine.Attribute(r.PathValue("attribute"))

	dist, err := h.analytics.Distribution(attr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, dist, cacheHeaders)
}

// HandleTransactions returns filtered rows for the detail table, capped by
// the limit parameter.
func (h *APIHandlers) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	limit, err := limitFromQuery(r, defaultTableLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rows, err := h.analytics.Transactions(criteria, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccessWithHeaders(w, rows, cacheHeaders)
}

func (h *APIHandlers) HandleMeta(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteSuccessWithHeaders(w, h.analytics.Meta(), cacheHeaders)
}

// HandleExport streams the filtered dashboard as an Excel workbook.
func (h *APIHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	payload, err := h.analytics.Dashboard(criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	workbook, err := export.BuildWorkbook(payload, criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("sales-report_%s_%s.xlsx",
		criteria.Start.Format(dateLayout), criteria.End.Format(dateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := workbook.WriteTo(w); err != nil {
		h.logger.Error("write workbook", "error", err)
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteSuccess(w, h.analytics.Stats())
}
