// Command seed generates sample CSV datasets for local development. The
// output matches the schemas the web server loads at startup.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var (
	regions        = []string{"North", "South", "East", "West", "Central"}
	categories     = []string{"Electronics", "Clothing", "Food", "Books", "Sports"}
	paymentMethods = []string{"card", "cash", "transfer", "mobile"}
	grades         = []string{"Bronze", "Silver", "Gold", "VIP"}
	segments       = []string{"New", "Regular", "Loyal", "VIP"}
)

type seededCustomer struct {
	id     string
	name   string
	region string
	grade  string
}

func main() {
	var (
		customerCount    = flag.Int("customers", 200, "number of customers to generate")
		transactionCount = flag.Int("transactions", 5000, "number of transactions to generate")
		outDir           = flag.String("out", "data", "output directory")
		seed             = flag.Int64("seed", 0, "random seed (0 uses a time-based seed)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(*seed)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("create output directory", "error", err)
		os.Exit(1)
	}

	customers := generateCustomers(faker, *customerCount)

	customersPath := filepath.Join(*outDir, "customer_data.csv")
	if err := writeCustomersCSV(customersPath, faker, customers); err != nil {
		logger.Error("write customers CSV", "error", err)
		os.Exit(1)
	}

	salesPath := filepath.Join(*outDir, "sales_data.csv")
	if err := writeSalesCSV(salesPath, faker, customers, *transactionCount); err != nil {
		logger.Error("write sales CSV", "error", err)
		os.Exit(1)
	}

	logger.Info("datasets generated",
		"customers", *customerCount,
		"transactions", *transactionCount,
		"dir", *outDir,
		"seed", *seed,
	)
}

func generateCustomers(faker *gofakeit.Faker, n int) []seededCustomer {
	customers := make([]seededCustomer, n)
	for i := range customers {
		customers[i] = seededCustomer{
			id:     uuid.NewString(),
			name:   faker.Name(),
			region: regions[faker.IntRange(0, len(regions)-1)],
			grade:  grades[faker.IntRange(0, len(grades)-1)],
		}
	}
	return customers
}

func writeCustomersCSV(path string, faker *gofakeit.Faker, customers []seededCustomer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"customer_id", "name", "age", "gender", "region", "segment", "join_date", "last_purchase_date"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, c := range customers {
		joined := faker.DateRange(
			time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		)
		lastPurchase := faker.DateRange(joined, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))

		record := []string{
			c.id,
			c.name,
			strconv.Itoa(faker.IntRange(18, 75)),
			faker.RandomString([]string{"M", "F"}),
			c.region,
			segments[faker.IntRange(0, len(segments)-1)],
			joined.Format(dateLayout),
			lastPurchase.Format(dateLayout),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeSalesCSV(path string, faker *gofakeit.Faker, customers []seededCustomer, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"date", "customer_id", "customer_name", "product_name", "category", "price", "quantity", "total", "payment_method", "region", "customer_grade"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		c := customers[faker.IntRange(0, len(customers)-1)]

		price := decimal.NewFromFloat(faker.Price(5, 1500)).Round(2)
		quantity := faker.IntRange(1, 5)
		total := price.Mul(decimal.NewFromInt(int64(quantity)))

		date := faker.DateRange(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		)

		record := []string{
			date.Format(dateLayout),
			c.id,
			c.name,
			faker.ProductName(),
			categories[faker.IntRange(0, len(categories)-1)],
			price.String(),
			strconv.Itoa(quantity),
			total.String(),
			paymentMethods[faker.IntRange(0, len(paymentMethods)-1)],
			c.region,
			c.grade,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
