package services

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"sales-dashboard/internal/engine"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

// Snapshot is the immutable dataset handed to the engine. It is replaced
// wholesale on reload and never mutated, so any number of concurrent
// computations may read from it.
type Snapshot struct {
	Transactions []models.Transaction
	Customers    []models.Customer
	LoadedAt     time.Time
}

// Analytics owns the current dataset snapshot and runs the engine over it.
// Every query method takes its own criteria and computes fresh results;
// nothing derived is cached between calls.
type Analytics struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewAnalytics() *Analytics {
	return &Analytics{
		snapshot: &Snapshot{},
		logger:   slog.Default(),
	}
}

// SetMetrics attaches Prometheus instruments. Optional; a nil metrics set
// disables recording.
func (a *Analytics) SetMetrics(m *observability.Metrics) {
	a.metrics = m
}

// SetData replaces the snapshot with in-memory tables, bypassing the CSV
// loaders. Used by tests and by callers that own their own data source.
func (a *Analytics) SetData(txs []models.Transaction, customers []models.Customer) {
	a.swapSnapshot(&Snapshot{
		Transactions: txs,
		Customers:    customers,
		LoadedAt:     time.Now(),
	})
}

func (a *Analytics) swapSnapshot(s *Snapshot) {
	a.mu.Lock()
	a.snapshot = s
	a.mu.Unlock()

	a.metrics.SetDatasetSize("transactions", len(s.Transactions))
	a.metrics.SetDatasetSize("customers", len(s.Customers))
}

func (a *Analytics) current() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Dashboard runs one filter pass and derives every sales view from it.
func (a *Analytics) Dashboard(criteria models.FilterCriteria) (*models.DashboardPayload, error) {
	start := time.Now()
	defer a.metrics.ObserveComputation("dashboard", start)

	filtered, err := engine.Filter(a.current().Transactions, criteria)
	if err != nil {
		return nil, err
	}

	payload := &models.DashboardPayload{
		KPIs:       engine.ComputeKPIs(filtered),
		DailyTrend: engine.DailySeries(filtered),
	}

	groupDims := []struct {
		dim  engine.Dimension
		dest *[]models.GroupTotal
	}{
		{engine.DimensionRegion, &payload.SalesByRegion},
		{engine.DimensionCategory, &payload.SalesByCategory},
		{engine.DimensionPaymentMethod, &payload.SalesByPayment},
		{engine.DimensionCustomerGrade, &payload.SalesByGrade},
	}
	for _, g := range groupDims {
		if *g.dest, err = engine.GroupSum(filtered, g.dim); err != nil {
			return nil, err
		}
	}

	if payload.TopProducts, err = engine.TopN(filtered, engine.DimensionProductName, topLimit); err != nil {
		return nil, err
	}
	if payload.TopCustomers, err = engine.TopN(filtered, engine.DimensionCustomerName, topLimit); err != nil {
		return nil, err
	}
	return payload, nil
}

const topLimit = 10

// Segments derives the four customer distributions over the whole customer
// table. The sales filter never applies here.
func (a *Analytics) Segments() (*models.SegmentationPayload, error) {
	start := time.Now()
	defer a.metrics.ObserveComputation("segments", start)

	customers := a.current().Customers
	payload := &models.SegmentationPayload{}

	attrs := []struct {
		attr engine.Attribute
		dest *[]models.GroupCount
	}{
		{engine.AttributeAgeGroup, &payload.ByAgeGroup},
		{engine.AttributeGender, &payload.ByGender},
		{engine.AttributeRegion, &payload.ByRegion},
		{engine.AttributeSegment, &payload.BySegment},
	}
	for _, s := range attrs {
		var err error
		if *s.dest, err = engine.Distribution(customers, s.attr); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

func (a *Analytics) KPIs(criteria models.FilterCriteria) (models.KPISet, error) {
	start := time.Now()
	defer a.metrics.ObserveComputation("kpis", start)

	filtered, err := engine.Filter(a.current().Transactions, criteria)
	if err != nil {
		return models.KPISet{}, err
	}
	return engine.ComputeKPIs(filtered), nil
}

func (a *Analytics) GroupSum(criteria models.FilterCriteria, dim engine.Dimension) ([]models.GroupTotal, error) {
	start := time.Now()
	defer a.metrics.ObserveComputation("group_sum", start)

	filtered, err := engine.Filter(a.current().Transactions, criteria)
	if err != nil {
		return nil, err
	}
	return engine.GroupSum(filtered, dim)
}

func (a *Analytics) TopN(criteria models.FilterCriteria, dim engine.Dimension, n int) ([]models.GroupTotal, error) {
	start := time.Now()
	defer a.metrics.ObserveComputation("top_n", start)

	filtered, err := engine.Filter(a.current().Transactions, criteria)
	if err != nil {
		return nil, err
	}
	return engine.TopN(filtered, dim, n)
}

func (a *Analytics) DailySeries(criteria models.FilterCriteria) ([]models.TimeSeriesPoint, error) {
	start := time.Now()
	defer a.metrics.ObserveComputation("daily_series", start)

	filtered, err := engine.Filter(a.current().Transactions, criteria)
	if err != nil {
		return nil, err
	}
	return engine.DailySeries(filtered), nil
}

func (a *Analytics) Distribution(attr engine.Attribute) ([]models.GroupCount, error) {
	start := time.Now()
	defer a.metrics.ObserveComputation("distribution", start)

	return engine.Distribution(a.current().Customers, attr)
}

// Transactions returns up to limit filtered rows for the detail table.
func (a *Analytics) Transactions(criteria models.FilterCriteria, limit int) ([]models.Transaction, error) {
	filtered, err := engine.Filter(a.current().Transactions, criteria)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// Meta reports dataset bounds and the known filter options, sorted for
// stable dashboard controls.
func (a *Analytics) Meta() models.DatasetMeta {
	snap := a.current()

	meta := models.DatasetMeta{
		TransactionCount: len(snap.Transactions),
		CustomerCount:    len(snap.Customers),
	}

	regions := make(map[string]struct{})
	categories := make(map[string]struct{})
	for i, tx := range snap.Transactions {
		if i == 0 || tx.Date.Before(meta.MinDate) {
			meta.MinDate = tx.Date
		}
		if i == 0 || tx.Date.After(meta.MaxDate) {
			meta.MaxDate = tx.Date
		}
		regions[tx.Region] = struct{}{}
		categories[tx.Category] = struct{}{}
	}

	meta.Regions = sortedKeys(regions)
	meta.Categories = sortedKeys(categories)
	return meta
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Stats exposes dataset counters for the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	snap := a.current()
	meta := a.Meta()

	return map[string]any{
		"transactions": len(snap.Transactions),
		"customers":    len(snap.Customers),
		"regions":      len(meta.Regions),
		"categories":   len(meta.Categories),
		"loaded_at":    snap.LoadedAt,
	}
}
