package engine

import (
	"fmt"

	"sales-dashboard/internal/models"
)

// TopN returns the n highest-grossing groups for the chosen dimension, one
// of product_name or customer_name. Ordering and tie-breaks follow GroupSum;
// when fewer than n groups exist, all of them are returned.
func TopN(txs []models.Transaction, dim Dimension, n int) ([]models.GroupTotal, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: top-n limit must be positive, got %d", ErrInvalidCriteria, n)
	}

	switch dim {
	case DimensionProductName, DimensionCustomerName:
	default:
		return nil, fmt.Errorf("%w: %q is not a ranking dimension", ErrInvalidAttribute, dim)
	}

	keyOf, err := dimensionKey(dim)
	if err != nil {
		return nil, err
	}

	ranked := groupTotals(txs, keyOf)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
