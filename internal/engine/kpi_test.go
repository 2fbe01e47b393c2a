package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/models"
)

func TestComputeKPIs(t *testing.T) {
	txs := []models.Transaction{
		tx(day(2024, time.January, 1), "100.50", byCustomer("C1", "Alice")),
		tx(day(2024, time.January, 2), "200.00", byCustomer("C2", "Bob")),
		tx(day(2024, time.January, 3), "99.50", byCustomer("C1", "Alice")),
	}

	kpis := ComputeKPIs(txs)

	assert.True(t, kpis.TotalSales.Equal(amount("400")), "total sales = %s", kpis.TotalSales)
	assert.Equal(t, 3, kpis.TransactionCount)
	assert.True(t, kpis.AverageTransaction.Equal(amount("133.3333333333333333")),
		"average = %s", kpis.AverageTransaction)
	assert.Equal(t, 2, kpis.UniqueCustomers)
}

func TestComputeKPIs_Empty(t *testing.T) {
	kpis := ComputeKPIs(nil)

	assert.True(t, kpis.TotalSales.IsZero())
	assert.Equal(t, 0, kpis.TransactionCount)
	assert.True(t, kpis.AverageTransaction.IsZero(), "zero-division guard")
	assert.Equal(t, 0, kpis.UniqueCustomers)
}

func TestComputeKPIs_SingleRowAverageEqualsTotal(t *testing.T) {
	kpis := ComputeKPIs([]models.Transaction{tx(day(2024, time.January, 1), "100")})

	assert.True(t, kpis.TotalSales.Equal(amount("100")))
	assert.True(t, kpis.AverageTransaction.Equal(amount("100")))
	assert.Equal(t, 1, kpis.UniqueCustomers)
}

func TestComputeKPIs_EmptyFilterYieldsZeroes(t *testing.T) {
	txs := randomTransactions(50)
	criteria := allCriteria()
	criteria.Regions = models.NewStringSet()

	filtered, err := Filter(txs, criteria)
	require.NoError(t, err)
	require.Empty(t, filtered)

	kpis := ComputeKPIs(filtered)
	assert.True(t, kpis.TotalSales.IsZero())
	assert.Zero(t, kpis.TransactionCount)
	assert.True(t, kpis.AverageTransaction.IsZero())
	assert.Zero(t, kpis.UniqueCustomers)
}
