package engine

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// DailySeries sums Total per calendar date and carries a running cumulative
// total, ordered ascending by date. Dates with no transactions are not
// synthesized; the series only contains dates present in the input.
func DailySeries(txs []models.Transaction) []models.TimeSeriesPoint {
	totals := make(map[time.Time]decimal.Decimal)
	for _, tx := range txs {
		day := tx.Date.Truncate(24 * time.Hour)
		sum, seen := totals[day]
		if !seen {
			sum = decimal.Zero
		}
		totals[day] = sum.Add(tx.Total)
	}

	days := make([]time.Time, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	series := make([]models.TimeSeriesPoint, 0, len(days))
	cumulative := decimal.Zero
	for _, day := range days {
		cumulative = cumulative.Add(totals[day])
		series = append(series, models.TimeSeriesPoint{
			Date:       day,
			Total:      totals[day],
			Cumulative: cumulative,
		})
	}
	return series
}
