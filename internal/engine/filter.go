package engine

import (
	"fmt"

	"sales-dashboard/internal/models"
)

// Filter returns the transactions matching the criteria: date within the
// inclusive [Start, End] range, region in Regions and category in Categories.
// Relative order of retained rows is preserved and the input slice is never
// modified. An empty region or category set matches nothing; that is a valid
// selection, not an error.
func Filter(txs []models.Transaction, c models.FilterCriteria) ([]models.Transaction, error) {
	if c.Start.After(c.End) {
		return nil, fmt.Errorf("%w: start date %s after end date %s",
			ErrInvalidCriteria, c.Start.Format("2006-01-02"), c.End.Format("2006-01-02"))
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Before(c.Start) || tx.Date.After(c.End) {
			continue
		}
		if !c.Regions.Has(tx.Region) || !c.Categories.Has(tx.Category) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}
