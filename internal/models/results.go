package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPISet holds the scalar summary metrics for a filtered transaction set.
type KPISet struct {
	TotalSales         decimal.Decimal `json:"total_sales"`
	TransactionCount   int             `json:"transaction_count"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
	UniqueCustomers    int             `json:"unique_customers"`
}

// GroupTotal is one entry of a sum-by-dimension aggregation.
type GroupTotal struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
}

// GroupCount is one entry of a count-by-attribute distribution.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TimeSeriesPoint is one day of the sales trend. Cumulative is the running
// prefix sum of Total up to and including this date.
type TimeSeriesPoint struct {
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// DashboardPayload bundles every derived view for one filter selection.
type DashboardPayload struct {
	KPIs            KPISet            `json:"kpis"`
	SalesByRegion   []GroupTotal      `json:"sales_by_region"`
	SalesByCategory []GroupTotal      `json:"sales_by_category"`
	SalesByPayment  []GroupTotal      `json:"sales_by_payment"`
	SalesByGrade    []GroupTotal      `json:"sales_by_grade"`
	TopProducts     []GroupTotal      `json:"top_products"`
	TopCustomers    []GroupTotal      `json:"top_customers"`
	DailyTrend      []TimeSeriesPoint `json:"daily_trend"`
}

// SegmentationPayload bundles the customer distributions. These are computed
// over the whole customer table and ignore the sales filter.
type SegmentationPayload struct {
	ByAgeGroup []GroupCount `json:"by_age_group"`
	ByGender   []GroupCount `json:"by_gender"`
	ByRegion   []GroupCount `json:"by_region"`
	BySegment  []GroupCount `json:"by_segment"`
}

// DatasetMeta describes the loaded dataset: date bounds and the known filter
// options, used to populate the dashboard controls.
type DatasetMeta struct {
	MinDate          time.Time `json:"min_date"`
	MaxDate          time.Time `json:"max_date"`
	Regions          []string  `json:"regions"`
	Categories       []string  `json:"categories"`
	TransactionCount int       `json:"transaction_count"`
	CustomerCount    int       `json:"customer_count"`
}
