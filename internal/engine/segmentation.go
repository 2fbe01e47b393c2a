package engine

import (
	"fmt"
	"slices"

	"sales-dashboard/internal/models"
)

// ageBuckets in ascending bucket order. Each bucket covers a half-open
// interval on the upper bound: (0,20] is "10s", (20,30] is "20s" and so on.
var ageBuckets = []string{"10s", "20s", "30s", "40s", "50s", "60s+"}

// AgeGroup maps an age to its bucket label. Ages at a boundary fall in the
// lower bucket, so 20 is "10s" and 21 is "20s". A non-positive age is out of
// the engine's domain and is rejected rather than silently bucketed.
func AgeGroup(age int) (string, error) {
	switch {
	case age <= 0:
		return "", fmt.Errorf("%w: age %d is not positive", ErrOutOfDomainValue, age)
	case age <= 20:
		return "10s", nil
	case age <= 30:
		return "20s", nil
	case age <= 40:
		return "30s", nil
	case age <= 50:
		return "40s", nil
	case age <= 60:
		return "50s", nil
	default:
		return "60s+", nil
	}
}

// Distribution counts customers by the chosen attribute, one of age_group,
// gender, region or segment. The age_group distribution is ordered by bucket
// ascending; every other attribute is ordered by descending count with
// first-seen tie-breaks. Buckets with no customers are absent.
//
// Distributions cover the entire customer table; the sales filter does not
// apply here.
func Distribution(customers []models.Customer, attr Attribute) ([]models.GroupCount, error) {
	if attr == AttributeAgeGroup {
		return ageDistribution(customers)
	}

	var keyOf func(models.Customer) string
	switch attr {
	case AttributeGender:
		keyOf = func(c models.Customer) string { return c.Gender }
	case AttributeRegion:
		keyOf = func(c models.Customer) string { return c.Region }
	case AttributeSegment:
		keyOf = func(c models.Customer) string { return c.Segment }
	default:
		return nil, fmt.Errorf("%w: unknown customer attribute %q", ErrInvalidAttribute, attr)
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, c := range customers {
		key := keyOf(c)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	result := make([]models.GroupCount, 0, len(order))
	for _, key := range order {
		result = append(result, models.GroupCount{Key: key, Count: counts[key]})
	}
	slices.SortStableFunc(result, func(a, b models.GroupCount) int {
		return b.Count - a.Count
	})
	return result, nil
}

func ageDistribution(customers []models.Customer) ([]models.GroupCount, error) {
	counts := make(map[string]int, len(ageBuckets))
	for _, c := range customers {
		bucket, err := AgeGroup(c.Age)
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.CustomerID, err)
		}
		counts[bucket]++
	}

	result := make([]models.GroupCount, 0, len(ageBuckets))
	for _, bucket := range ageBuckets {
		if n, ok := counts[bucket]; ok {
			result = append(result, models.GroupCount{Key: bucket, Count: n})
		}
	}
	return result, nil
}
