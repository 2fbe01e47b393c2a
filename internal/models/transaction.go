package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single sales record. Total is trusted as stored and never
// recomputed from Price and Quantity.
type Transaction struct {
	Date          time.Time       `json:"date"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Region        string          `json:"region"`
	CustomerGrade string          `json:"customer_grade"`
}

type Customer struct {
	CustomerID       string    `json:"customer_id"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	Region           string    `json:"region"`
	Segment          string    `json:"segment"`
	JoinDate         time.Time `json:"join_date"`
	LastPurchaseDate time.Time `json:"last_purchase_date"`
}
