package services

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10

	salesColumns    = 11
	customerColumns = 8
)

// LoadCSV reads both tables, validates every row and swaps in the new
// snapshot. The two files load in parallel; a malformed row fails the whole
// load rather than being dropped, since downstream components trust the
// snapshot completely.
func (a *Analytics) LoadCSV(ctx context.Context, salesPath, customersPath string) error {
	if cached, err := a.loadFromCache(salesPath, customersPath); err == nil {
		if sourcesUnchangedSince(cached.LoadedAt, salesPath, customersPath) {
			a.swapSnapshot(cached)
			a.logger.Info("loaded dataset from cache",
				"transactions", len(cached.Transactions),
				"customers", len(cached.Customers))
			return nil
		}
	}

	start := time.Now()
	a.logger.Info("loading dataset", "sales", salesPath, "customers", customersPath)

	snap := &Snapshot{LoadedAt: time.Now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := loadTransactions(gctx, salesPath)
		if err != nil {
			return fmt.Errorf("load sales table: %w", err)
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		customers, err := loadCustomers(gctx, customersPath)
		if err != nil {
			return fmt.Errorf("load customer table: %w", err)
		}
		snap.Customers = customers
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.swapSnapshot(snap)

	if err := a.saveToCache(salesPath, customersPath, snap); err != nil {
		a.logger.Warn("failed to save dataset cache", "error", err)
	}

	a.logger.Info("dataset loaded",
		"transactions", len(snap.Transactions),
		"customers", len(snap.Customers),
		"duration", time.Since(start))
	return nil
}

// loadTransactions streams the sales CSV in batches, parsing each batch in
// parallel. Results are written by row index so the snapshot keeps file
// order regardless of worker scheduling.
func loadTransactions(ctx context.Context, path string) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty file")
	}

	var out []models.Transaction
	batch := make([]string, 0, batchSize)
	row := 1

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		parsed := make([]models.Transaction, len(batch))
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(maxWorkers)
		for i, line := range batch {
			lineRow := row + i
			g.Go(func() error {
				tx, err := parseTransaction(line)
				if err != nil {
					return fmt.Errorf("row %d: %w", lineRow, err)
				}
				parsed[i] = tx
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		out = append(out, parsed...)
		row += len(batch)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch = append(batch, scanner.Text())
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no records found")
	}
	return out, nil
}

func loadCustomers(ctx context.Context, path string) ([]models.Customer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty file")
	}

	var out []models.Customer
	row := 1
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c, err := parseCustomer(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		out = append(out, c)
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no records found")
	}
	return out, nil
}

// Sales CSV layout:
// date,customer_id,customer_name,product_name,category,price,quantity,total,payment_method,region,customer_grade
func parseTransaction(line string) (models.Transaction, error) {
	record := strings.Split(line, ",")
	if len(record) != salesColumns {
		return models.Transaction{}, fmt.Errorf("expected %d columns, got %d", salesColumns, len(record))
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("date: %w", err)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("price: %w", err)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("quantity: %w", err)
	}
	if quantity < 0 {
		return models.Transaction{}, fmt.Errorf("quantity must not be negative, got %d", quantity)
	}

	total, err := decimal.NewFromString(strings.TrimSpace(record[7]))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("total: %w", err)
	}

	return models.Transaction{
		Date:          date,
		CustomerID:    strings.TrimSpace(record[1]),
		CustomerName:  strings.TrimSpace(record[2]),
		ProductName:   strings.TrimSpace(record[3]),
		Category:      strings.TrimSpace(record[4]),
		Price:         price,
		Quantity:      quantity,
		Total:         total,
		PaymentMethod: strings.TrimSpace(record[8]),
		Region:        strings.TrimSpace(record[9]),
		CustomerGrade: strings.TrimSpace(record[10]),
	}, nil
}

// Customer CSV layout:
// customer_id,name,age,gender,region,segment,join_date,last_purchase_date
func parseCustomer(line string) (models.Customer, error) {
	record := strings.Split(line, ",")
	if len(record) != customerColumns {
		return models.Customer{}, fmt.Errorf("expected %d columns, got %d", customerColumns, len(record))
	}

	age, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return models.Customer{}, fmt.Errorf("age: %w", err)
	}
	if age <= 0 {
		return models.Customer{}, fmt.Errorf("age must be positive, got %d", age)
	}

	joinDate, err := time.Parse("2006-01-02", strings.TrimSpace(record[6]))
	if err != nil {
		return models.Customer{}, fmt.Errorf("join_date: %w", err)
	}

	lastPurchase, err := time.Parse("2006-01-02", strings.TrimSpace(record[7]))
	if err != nil {
		return models.Customer{}, fmt.Errorf("last_purchase_date: %w", err)
	}

	return models.Customer{
		CustomerID:       strings.TrimSpace(record[0]),
		Name:             strings.TrimSpace(record[1]),
		Age:              age,
		Gender:           strings.TrimSpace(record[3]),
		Region:           strings.TrimSpace(record[4]),
		Segment:          strings.TrimSpace(record[5]),
		JoinDate:         joinDate,
		LastPurchaseDate: lastPurchase,
	}, nil
}
