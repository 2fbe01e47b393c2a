// Package engine implements the filtering and aggregation core of the
// dashboard. Every function is a pure pass over an immutable snapshot:
// nothing here holds state, mutates its inputs, or performs I/O, so calls
// may run concurrently without synchronization.
package engine

import (
	"errors"
	"fmt"

	"sales-dashboard/internal/models"
)

var (
	// ErrInvalidCriteria reports an unusable filter selection, such as a
	// start date after the end date or a non-positive top-N limit.
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrInvalidAttribute reports a dimension or attribute name outside the
	// supported enumeration.
	ErrInvalidAttribute = errors.New("invalid attribute")

	// ErrOutOfDomainValue reports a record value the engine refuses to
	// aggregate, such as a non-positive customer age.
	ErrOutOfDomainValue = errors.New("value out of domain")
)

// Dimension selects the transaction field a sum aggregation groups by.
type Dimension string

const (
	DimensionRegion        Dimension = "region"
	DimensionCategory      Dimension = "category"
	DimensionPaymentMethod Dimension = "payment_method"
	DimensionCustomerGrade Dimension = "customer_grade"
	DimensionProductName   Dimension = "product_name"
	DimensionCustomerName  Dimension = "customer_name"
)

// Attribute selects the customer field a distribution counts by.
type Attribute string

const (
	AttributeAgeGroup Attribute = "age_group"
	AttributeGender   Attribute = "gender"
	AttributeRegion   Attribute = "region"
	AttributeSegment  Attribute = "segment"
)

func dimensionKey(dim Dimension) (func(models.Transaction) string, error) {
	switch dim {
	case DimensionRegion:
		return func(tx models.Transaction) string { return tx.Region }, nil
	case DimensionCategory:
		return func(tx models.Transaction) string { return tx.Category }, nil
	case DimensionPaymentMethod:
		return func(tx models.Transaction) string { return tx.PaymentMethod }, nil
	case DimensionCustomerGrade:
		return func(tx models.Transaction) string { return tx.CustomerGrade }, nil
	case DimensionProductName:
		return func(tx models.Transaction) string { return tx.ProductName }, nil
	case DimensionCustomerName:
		return func(tx models.Transaction) string { return tx.CustomerName }, nil
	default:
		return nil, fmt.Errorf("%w: unknown dimension %q", ErrInvalidAttribute, dim)
	}
}
