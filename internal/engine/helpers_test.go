package engine

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type txOpt func(*models.Transaction)

func tx(date time.Time, total string, opts ...txOpt) models.Transaction {
	t := models.Transaction{
		Date:          date,
		CustomerID:    "C001",
		CustomerName:  "Alice Kim",
		ProductName:   "Laptop",
		Category:      "Electronics",
		Price:         amount(total),
		Quantity:      1,
		Total:         amount(total),
		PaymentMethod: "card",
		Region:        "North",
		CustomerGrade: "Gold",
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func inRegion(region string) txOpt {
	return func(t *models.Transaction) { t.Region = region }
}

func inCategory(category string) txOpt {
	return func(t *models.Transaction) { t.Category = category }
}

func byCustomer(id, name string) txOpt {
	return func(t *models.Transaction) {
		t.CustomerID = id
		t.CustomerName = name
	}
}

func forProduct(name string) txOpt {
	return func(t *models.Transaction) { t.ProductName = name }
}

func paidWith(method string) txOpt {
	return func(t *models.Transaction) { t.PaymentMethod = method }
}

func withGrade(grade string) txOpt {
	return func(t *models.Transaction) { t.CustomerGrade = grade }
}

// randomTransactions produces a deterministic pseudo-random table for
// property-style tests.
func randomTransactions(n int) []models.Transaction {
	faker := gofakeit.New(42)
	regions := []string{"North", "South", "East", "West"}
	categories := []string{"Electronics", "Apparel", "Grocery"}
	methods := []string{"card", "cash", "transfer"}
	grades := []string{"Gold", "Silver", "Bronze"}

	txs := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		date := day(2024, time.January, 1).AddDate(0, 0, faker.Number(0, 59))
		price := decimal.NewFromFloat(faker.Price(1, 500)).Round(2)
		qty := faker.Number(1, 5)
		txs = append(txs, models.Transaction{
			Date:          date,
			CustomerID:    faker.RandomString([]string{"C001", "C002", "C003", "C004", "C005"}),
			CustomerName:  faker.Name(),
			ProductName:   faker.RandomString([]string{"Laptop", "Phone", "Desk", "Chair", "Monitor"}),
			Category:      faker.RandomString(categories),
			Price:         price,
			Quantity:      qty,
			Total:         price.Mul(decimal.NewFromInt(int64(qty))),
			PaymentMethod: faker.RandomString(methods),
			Region:        faker.RandomString(regions),
			CustomerGrade: faker.RandomString(grades),
		})
	}
	return txs
}

func allCriteria() models.FilterCriteria {
	return models.FilterCriteria{
		Start:      day(2024, time.January, 1),
		End:        day(2024, time.December, 31),
		Regions:    models.NewStringSet("North", "South", "East", "West"),
		Categories: models.NewStringSet("Electronics", "Apparel", "Grocery"),
	}
}
