package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/engine"
	"sales-dashboard/internal/models"
)

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "test*.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func testTransactions() []models.Transaction {
	d := func(day int) time.Time {
		return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	}
	money := decimal.RequireFromString
	return []models.Transaction{
		{
			Date: d(1), CustomerID: "C001", CustomerName: "Alice Kim",
			ProductName: "Laptop", Category: "Electronics",
			Price: money("999.99"), Quantity: 1, Total: money("999.99"),
			PaymentMethod: "card", Region: "North", CustomerGrade: "Gold",
		},
		{
			Date: d(2), CustomerID: "C002", CustomerName: "Bob Lee",
			ProductName: "Mouse", Category: "Electronics",
			Price: money("29.99"), Quantity: 2, Total: money("59.98"),
			PaymentMethod: "cash", Region: "South", CustomerGrade: "Silver",
		},
		{
			Date: d(5), CustomerID: "C001", CustomerName: "Alice Kim",
			ProductName: "Desk", Category: "Furniture",
			Price: money("150.00"), Quantity: 1, Total: money("150.00"),
			PaymentMethod: "card", Region: "North", CustomerGrade: "Gold",
		},
	}
}

func testCustomers() []models.Customer {
	d := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	return []models.Customer{
		{CustomerID: "C001", Name: "Alice Kim", Age: 34, Gender: "F", Region: "North", Segment: "VIP", JoinDate: d, LastPurchaseDate: d},
		{CustomerID: "C002", Name: "Bob Lee", Age: 27, Gender: "M", Region: "South", Segment: "Regular", JoinDate: d, LastPurchaseDate: d},
		{CustomerID: "C003", Name: "Carol Park", Age: 61, Gender: "F", Region: "North", Segment: "Regular", JoinDate: d, LastPurchaseDate: d},
	}
}

func allFilter() models.FilterCriteria {
	return models.FilterCriteria{
		Start:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Regions:    models.NewStringSet("North", "South"),
		Categories: models.NewStringSet("Electronics", "Furniture"),
	}
}

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics()
	if a == nil {
		t.Fatal("NewAnalytics() returned nil")
	}
	if a.snapshot == nil {
		t.Error("snapshot should be initialized")
	}
	if a.logger == nil {
		t.Error("logger should be initialized")
	}
}

func TestAnalytics_Dashboard(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	payload, err := a.Dashboard(allFilter())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if payload.KPIs.TransactionCount != 3 {
		t.Errorf("transaction count = %d, want 3", payload.KPIs.TransactionCount)
	}
	if !payload.KPIs.TotalSales.Equal(decimal.RequireFromString("1209.97")) {
		t.Errorf("total sales = %s, want 1209.97", payload.KPIs.TotalSales)
	}
	if payload.KPIs.UniqueCustomers != 2 {
		t.Errorf("unique customers = %d, want 2", payload.KPIs.UniqueCustomers)
	}

	if len(payload.SalesByRegion) != 2 {
		t.Errorf("regions = %d, want 2", len(payload.SalesByRegion))
	}
	if payload.SalesByRegion[0].Key != "North" {
		t.Errorf("top region = %q, want North", payload.SalesByRegion[0].Key)
	}
	if len(payload.SalesByCategory) != 2 || len(payload.SalesByPayment) != 2 || len(payload.SalesByGrade) != 2 {
		t.Error("every group-by view should have two groups")
	}
	if len(payload.TopProducts) != 3 || payload.TopProducts[0].Key != "Laptop" {
		t.Errorf("top products = %v", payload.TopProducts)
	}
	if len(payload.TopCustomers) != 2 || payload.TopCustomers[0].Key != "Alice Kim" {
		t.Errorf("top customers = %v", payload.TopCustomers)
	}
	if len(payload.DailyTrend) != 3 {
		t.Errorf("daily trend points = %d, want 3", len(payload.DailyTrend))
	}
	last := payload.DailyTrend[len(payload.DailyTrend)-1]
	if !last.Cumulative.Equal(payload.KPIs.TotalSales) {
		t.Errorf("final cumulative %s != total sales %s", last.Cumulative, payload.KPIs.TotalSales)
	}
}

func TestAnalytics_Dashboard_EmptySelection(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	criteria := allFilter()
	criteria.Regions = models.NewStringSet()

	payload, err := a.Dashboard(criteria)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if payload.KPIs.TransactionCount != 0 {
		t.Errorf("transaction count = %d, want 0", payload.KPIs.TransactionCount)
	}
	if !payload.KPIs.TotalSales.IsZero() || !payload.KPIs.AverageTransaction.IsZero() {
		t.Error("KPIs should be zero for an empty selection")
	}
	if len(payload.SalesByRegion) != 0 || len(payload.TopProducts) != 0 || len(payload.DailyTrend) != 0 {
		t.Error("derived views should be empty for an empty selection")
	}
}

func TestAnalytics_Dashboard_InvalidRange(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	criteria := allFilter()
	criteria.Start, criteria.End = criteria.End, criteria.Start

	if _, err := a.Dashboard(criteria); err == nil {
		t.Error("Dashboard() should reject start after end")
	}
}

func TestAnalytics_Segments(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	payload, err := a.Segments()
	if err != nil {
		t.Fatalf("Segments() error = %v", err)
	}

	wantAges := []models.GroupCount{{Key: "20s", Count: 1}, {Key: "30s", Count: 1}, {Key: "60s+", Count: 1}}
	if len(payload.ByAgeGroup) != len(wantAges) {
		t.Fatalf("age groups = %v, want %v", payload.ByAgeGroup, wantAges)
	}
	for i, want := range wantAges {
		if payload.ByAgeGroup[i] != want {
			t.Errorf("age group[%d] = %v, want %v", i, payload.ByAgeGroup[i], want)
		}
	}

	if payload.ByGender[0].Key != "F" || payload.ByGender[0].Count != 2 {
		t.Errorf("gender distribution = %v", payload.ByGender)
	}
	if payload.ByRegion[0].Key != "North" || payload.ByRegion[0].Count != 2 {
		t.Errorf("region distribution = %v", payload.ByRegion)
	}
	if payload.BySegment[0].Key != "Regular" || payload.BySegment[0].Count != 2 {
		t.Errorf("segment distribution = %v", payload.BySegment)
	}
}

// Segmentation ignores the sales filter entirely.
func TestAnalytics_SegmentsIgnoreSalesFilter(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	before, err := a.Segments()
	if err != nil {
		t.Fatal(err)
	}

	if len(before.ByAgeGroup) == 0 {
		t.Fatal("expected age groups over the whole customer table")
	}
}

func TestAnalytics_TopN(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	top, err := a.TopN(allFilter(), engine.DimensionProductName, 2)
	if err != nil {
		t.Fatalf("TopN() error = %v", err)
	}
	if len(top) != 2 {
		t.Errorf("top entries = %d, want 2", len(top))
	}

	if _, err := a.TopN(allFilter(), engine.DimensionProductName, 0); err == nil {
		t.Error("TopN() should reject n = 0")
	}
}

func TestAnalytics_Transactions(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	rows, err := a.Transactions(allFilter(), 2)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2 (limit applied)", len(rows))
	}
	if !rows[0].Date.Before(rows[1].Date) {
		t.Error("rows should keep input order")
	}
}

func TestAnalytics_Meta(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	meta := a.Meta()

	if got := meta.MinDate.Format("2006-01-02"); got != "2024-01-01" {
		t.Errorf("min date = %s", got)
	}
	if got := meta.MaxDate.Format("2006-01-02"); got != "2024-01-05" {
		t.Errorf("max date = %s", got)
	}
	if len(meta.Regions) != 2 || meta.Regions[0] != "North" {
		t.Errorf("regions = %v, want sorted [North South]", meta.Regions)
	}
	if len(meta.Categories) != 2 || meta.Categories[0] != "Electronics" {
		t.Errorf("categories = %v, want sorted [Electronics Furniture]", meta.Categories)
	}
	if meta.TransactionCount != 3 || meta.CustomerCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", meta.TransactionCount, meta.CustomerCount)
	}
}

func TestAnalytics_LoadCSV_ValidData(t *testing.T) {
	salesCSV := `date,customer_id,customer_name,product_name,category,price,quantity,total,payment_method,region,customer_grade
2024-01-15,C001,Alice Kim,Laptop,Electronics,999.99,1,999.99,card,North,Gold
2024-01-16,C002,Bob Lee,Mouse,Electronics,29.99,2,59.98,cash,South,Silver`
	customersCSV := `customer_id,name,age,gender,region,segment,join_date,last_purchase_date
C001,Alice Kim,34,F,North,VIP,2023-06-01,2024-01-15
C002,Bob Lee,27,M,South,Regular,2023-07-12,2024-01-16`

	a := NewAnalytics()
	err := a.LoadCSV(context.Background(), createTempCSV(t, salesCSV), createTempCSV(t, customersCSV))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	meta := a.Meta()
	if meta.TransactionCount != 2 || meta.CustomerCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", meta.TransactionCount, meta.CustomerCount)
	}
}

func TestAnalytics_LoadCSV_InvalidData(t *testing.T) {
	validCustomers := `customer_id,name,age,gender,region,segment,join_date,last_purchase_date
C001,Alice Kim,34,F,North,VIP,2023-06-01,2024-01-15`
	validSales := `date,customer_id,customer_name,product_name,category,price,quantity,total,payment_method,region,customer_grade
2024-01-15,C001,Alice Kim,Laptop,Electronics,999.99,1,999.99,card,North,Gold`

	tests := []struct {
		name      string
		sales     string
		customers string
	}{
		{
			name:      "empty sales file",
			sales:     "",
			customers: validCustomers,
		},
		{
			name:      "sales header only",
			sales:     "date,customer_id,customer_name,product_name,category,price,quantity,total,payment_method,region,customer_grade",
			customers: validCustomers,
		},
		{
			name: "invalid date",
			sales: `date,customer_id,customer_name,product_name,category,price,quantity,total,payment_method,region,customer_grade
not-a-date,C001,Alice Kim,Laptop,Electronics,999.99,1,999.99,card,North,Gold`,
			customers: validCustomers,
		},
		{
			name: "invalid total",
			sales: `date,customer_id,customer_name,product_name,category,price,quantity,total,payment_method,region,customer_grade
2024-01-15,C001,Alice Kim,Laptop,Electronics,999.99,1,not-money,card,North,Gold`,
			customers: validCustomers,
		},
		{
			name: "negative quantity",
			sales: `date,customer_id,customer_name,product_name,category,price,quantity,total,payment_method,region,customer_grade
2024-01-15,C001,Alice Kim,Laptop,Electronics,999.99,-1,999.99,card,North,Gold`,
			customers: validCustomers,
		},
		{
			name:  "non-positive customer age",
			sales: validSales,
			customers: `customer_id,name,age,gender,region,segment,join_date,last_purchase_date
C001,Alice Kim,0,F,North,VIP,2023-06-01,2024-01-15`,
		},
		{
			name:  "customer column count mismatch",
			sales: validSales,
			customers: `customer_id,name,age,gender,region,segment,join_date
C001,Alice Kim,34,F,North,VIP,2023-06-01`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalytics()
			err := a.LoadCSV(context.Background(), createTempCSV(t, tt.sales), createTempCSV(t, tt.customers))
			if err == nil {
				t.Error("LoadCSV() should fail on malformed input")
			}
		})
	}
}

func TestAnalytics_ConcurrentAccess(t *testing.T) {
	a := NewAnalytics()
	a.SetData(testTransactions(), testCustomers())

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()

			if _, err := a.Dashboard(allFilter()); err != nil {
				t.Error(err)
			}
			if _, err := a.Segments(); err != nil {
				t.Error(err)
			}
			_ = a.Meta()
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestAnalytics_EmptyData(t *testing.T) {
	a := NewAnalytics()

	payload, err := a.Dashboard(allFilter())
	if err != nil {
		t.Fatalf("Dashboard() on empty data error = %v", err)
	}
	if payload.KPIs.TransactionCount != 0 {
		t.Error("expected zero KPIs on empty data")
	}

	segments, err := a.Segments()
	if err != nil {
		t.Fatalf("Segments() on empty data error = %v", err)
	}
	if len(segments.ByAgeGroup) != 0 {
		t.Error("expected empty distributions on empty data")
	}
}

func BenchmarkAnalytics_Dashboard(b *testing.B) {
	a := NewAnalytics()
	txs := make([]models.Transaction, 0, 1000)
	base := testTransactions()
	for i := 0; i < 1000; i++ {
		tx := base[i%len(base)]
		tx.Date = tx.Date.AddDate(0, 0, i%30)
		txs = append(txs, tx)
	}
	a.SetData(txs, testCustomers())
	criteria := allFilter()

	b.ResetTimer()
	for b.Loop() {
		if _, err := a.Dashboard(criteria); err != nil {
			b.Fatal(err)
		}
	}
}
