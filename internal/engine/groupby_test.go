package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/models"
)

func TestGroupSum_ByRegion(t *testing.T) {
	txs := []models.Transaction{
		tx(day(2024, time.January, 1), "100", inRegion("North")),
		tx(day(2024, time.January, 2), "50", inRegion("South")),
		tx(day(2024, time.January, 3), "200", inRegion("South")),
		tx(day(2024, time.January, 4), "30", inRegion("East")),
	}

	got, err := GroupSum(txs, DimensionRegion)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "South", got[0].Key)
	assert.True(t, got[0].Total.Equal(amount("250")))
	assert.Equal(t, "North", got[1].Key)
	assert.True(t, got[1].Total.Equal(amount("100")))
	assert.Equal(t, "East", got[2].Key)
	assert.True(t, got[2].Total.Equal(amount("30")))
}

func TestGroupSum_Dimensions(t *testing.T) {
	txs := []models.Transaction{
		tx(day(2024, time.January, 1), "10", paidWith("card"), withGrade("Gold"), inCategory("A")),
		tx(day(2024, time.January, 2), "20", paidWith("cash"), withGrade("Silver"), inCategory("B")),
	}

	for _, dim := range []Dimension{
		DimensionRegion, DimensionCategory, DimensionPaymentMethod, DimensionCustomerGrade,
	} {
		t.Run(string(dim), func(t *testing.T) {
			got, err := GroupSum(txs, dim)
			require.NoError(t, err)
			assert.NotEmpty(t, got)
		})
	}
}

func TestGroupSum_RejectsRankingDimensions(t *testing.T) {
	for _, dim := range []Dimension{DimensionProductName, DimensionCustomerName, Dimension("stock")} {
		_, err := GroupSum(nil, dim)
		require.ErrorIs(t, err, ErrInvalidAttribute, "dimension %q", dim)
	}
}

func TestGroupSum_Empty(t *testing.T) {
	got, err := GroupSum(nil, DimensionCategory)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupSum_TieBreakIsFirstSeen(t *testing.T) {
	txs := []models.Transaction{
		tx(day(2024, time.January, 1), "100", inRegion("West")),
		tx(day(2024, time.January, 1), "100", inRegion("North")),
		tx(day(2024, time.January, 1), "100", inRegion("East")),
	}

	got, err := GroupSum(txs, DimensionRegion)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "West", got[0].Key)
	assert.Equal(t, "North", got[1].Key)
	assert.Equal(t, "East", got[2].Key)
}

// Group totals partition the filtered total: their sum must equal the
// TotalSales KPI for the same filtered set.
func TestGroupSum_PartitionsTotalSales(t *testing.T) {
	txs := randomTransactions(300)
	criteria := models.FilterCriteria{
		Start:      day(2024, time.January, 5),
		End:        day(2024, time.February, 20),
		Regions:    models.NewStringSet("North", "South", "West"),
		Categories: models.NewStringSet("Electronics", "Apparel"),
	}

	filtered, err := Filter(txs, criteria)
	require.NoError(t, err)
	kpis := ComputeKPIs(filtered)

	for _, dim := range []Dimension{
		DimensionRegion, DimensionCategory, DimensionPaymentMethod, DimensionCustomerGrade,
	} {
		groups, err := GroupSum(filtered, dim)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, g := range groups {
			sum = sum.Add(g.Total)
		}
		assert.True(t, sum.Equal(kpis.TotalSales),
			"dimension %s: group sum %s != total sales %s", dim, sum, kpis.TotalSales)
	}
}
