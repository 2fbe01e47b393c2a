package engine

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// GroupSum sums Total by the chosen dimension, one of region, category,
// payment_method or customer_grade. Entries are ordered by descending total;
// ties keep first-seen input order. Groups with no rows are absent.
func GroupSum(txs []models.Transaction, dim Dimension) ([]models.GroupTotal, error) {
	switch dim {
	case DimensionRegion, DimensionCategory, DimensionPaymentMethod, DimensionCustomerGrade:
	default:
		return nil, fmt.Errorf("%w: %q is not a group-sum dimension", ErrInvalidAttribute, dim)
	}

	keyOf, err := dimensionKey(dim)
	if err != nil {
		return nil, err
	}
	return groupTotals(txs, keyOf), nil
}

// groupTotals accumulates per-key sums and sorts them by descending total.
// The sort is stable over first-seen key order, so identical input always
// produces identical output.
func groupTotals(txs []models.Transaction, keyOf func(models.Transaction) string) []models.GroupTotal {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, tx := range txs {
		key := keyOf(tx)
		sum, seen := totals[key]
		if !seen {
			sum = decimal.Zero
			order = append(order, key)
		}
		totals[key] = sum.Add(tx.Total)
	}

	result := make([]models.GroupTotal, 0, len(order))
	for _, key := range order {
		result = append(result, models.GroupTotal{Key: key, Total: totals[key]})
	}
	slices.SortStableFunc(result, func(a, b models.GroupTotal) int {
		return b.Total.Cmp(a.Total)
	})
	return result
}
