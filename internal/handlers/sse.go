package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/services"
)

const maxTableRows = 50

var kpiTemplate = template.Must(template.New("kpiCards").Parse(`
<div id="kpi-content">
<div class="kpi-grid">
<div class="kpi-card"><span class="kpi-label">Total Sales</span><strong>{{.TotalSales}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Transactions</span><strong>{{.TransactionCount}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Avg Transaction</span><strong>{{printf "%.2f" .AverageFloat}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Customers</span><strong>{{.UniqueCustomers}}</strong></div>
</div>
</div>`))

var tableTemplate = template.Must(template.New("txTable").Parse(`
<div id="transactions-content">
<table class="modern-table">
<thead><tr><th>Date</th><th>Customer</th><th>Product</th><th>Category</th><th>Price</th><th>Qty</th><th>Total</th><th>Payment</th><th>Region</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Date.Format "2006-01-02"}}</td>
<td>{{.CustomerName}}</td>
<td>{{.ProductName}}</td>
<td><span class="category-badge">{{.Category}}</span></td>
<td>{{.Price}}</td>
<td>{{.Quantity}}</td>
<td><strong>{{.Total}}</strong></td>
<td>{{.PaymentMethod}}</td>
<td>{{.Region}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
		validate:  validator.New(),
	}
}

type kpiView struct {
	TotalSales       string
	TransactionCount int
	AverageFloat     float64
	UniqueCustomers  int
}

// HandleDashboard recomputes every view for the filter selection in the
// query string and patches the page: KPI cards and the detail table as HTML
// fragments, chart data as signals.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	criteria, err := filterFromQuery(r, h.analytics.Meta(), h.validate)
	if err != nil {
		h.logger.Warn("invalid filter selection", "error", err)
		sse.PatchElements(`<div id="kpi-content">Invalid filter selection</div>`)
		return
	}

	payload, err := h.analytics.Dashboard(criteria)
	if err != nil {
		h.logger.Error("compute dashboard", "error", err)
		return
	}

	var kpiBuf strings.Builder
	view := kpiView{
		TotalSales:       payload.KPIs.TotalSales.StringFixed(2),
		TransactionCount: payload.KPIs.TransactionCount,
		AverageFloat:     payload.KPIs.AverageTransaction.InexactFloat64(),
		UniqueCustomers:  payload.KPIs.UniqueCustomers,
	}
	if err := kpiTemplate.Execute(&kpiBuf, view); err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(kpiBuf.String())

	rows, err := h.analytics.Transactions(criteria, maxTableRows)
	if err != nil {
		h.logger.Error("load transaction table", "error", err)
		return
	}
	var tableBuf strings.Builder
	if err := tableTemplate.Execute(&tableBuf, rows); err != nil {
		h.logger.Error("render transaction table", "error", err)
		return
	}
	sse.PatchElements(tableBuf.String())

	signals, err := json.Marshal(map[string]any{
		"regionData":   payload.SalesByRegion,
		"categoryData": payload.SalesByCategory,
		"paymentData":  payload.SalesByPayment,
		"gradeData":    payload.SalesByGrade,
		"topProducts":  payload.TopProducts,
		"topCustomers": payload.TopCustomers,
		"trendData":    payload.DailyTrend,
	})
	if err != nil {
		h.logger.Error("marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleSegments patches the customer analysis charts. Segmentation runs
// over the whole customer table and takes no filter parameters.
func (h *SSEHandlers) HandleSegments(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	payload, err := h.analytics.Segments()
	if err != nil {
		h.logger.Error("compute segments", "error", err)
		return
	}

	signals, err := json.Marshal(map[string]any{
		"ageGroupData": payload.ByAgeGroup,
		"genderData":   payload.ByGender,
		"custRegions":  payload.ByRegion,
		"segmentData":  payload.BySegment,
	})
	if err != nil {
		h.logger.Error("marshal segment signals", "error", err)
		return
	}
	sse.PatchSignals(signals)
	sse.PatchElements(`<div id="segments-content">Customer analysis loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
