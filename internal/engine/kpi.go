package engine

import (
	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// ComputeKPIs summarizes a filtered transaction set. An empty input yields
// all-zero metrics; the average guards division by zero instead of erroring.
func ComputeKPIs(txs []models.Transaction) models.KPISet {
	kpis := models.KPISet{
		TotalSales:         decimal.Zero,
		AverageTransaction: decimal.Zero,
		TransactionCount:   len(txs),
	}

	customers := make(map[string]struct{})
	for _, tx := range txs {
		kpis.TotalSales = kpis.TotalSales.Add(tx.Total)
		customers[tx.CustomerID] = struct{}{}
	}
	kpis.UniqueCustomers = len(customers)

	if kpis.TransactionCount > 0 {
		kpis.AverageTransaction = kpis.TotalSales.Div(decimal.NewFromInt(int64(kpis.TransactionCount)))
	}
	return kpis
}
