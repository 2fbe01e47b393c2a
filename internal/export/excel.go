// Package export renders analytics results into downloadable reports.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

// BuildWorkbook lays a dashboard payload out as an Excel workbook: one
// summary sheet plus one sheet per derived view. The caller owns the file
// and must Close it.
func BuildWorkbook(payload *models.DashboardPayload, criteria models.FilterCriteria) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummary(f, payload, criteria); err != nil {
		f.Close()
		return nil, err
	}

	groupSheets := []struct {
		name   string
		header string
		groups []models.GroupTotal
	}{
		{"Sales by Region", "Region", payload.SalesByRegion},
		{"Sales by Category", "Category", payload.SalesByCategory},
		{"Sales by Payment", "Payment Method", payload.SalesByPayment},
		{"Sales by Grade", "Customer Grade", payload.SalesByGrade},
		{"Top Products", "Product", payload.TopProducts},
		{"Top Customers", "Customer", payload.TopCustomers},
	}
	for _, sheet := range groupSheets {
		if err := writeGroupSheet(f, sheet.name, sheet.header, sheet.groups); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeTrendSheet(f, payload.DailyTrend); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSummary(f *excelize.File, payload *models.DashboardPayload, criteria models.FilterCriteria) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := []struct {
		label string
		value any
	}{
		{"Period Start", criteria.Start.Format(dateLayout)},
		{"Period End", criteria.End.Format(dateLayout)},
		{"Total Sales", payload.KPIs.TotalSales.InexactFloat64()},
		{"Transactions", payload.KPIs.TransactionCount},
		{"Average Transaction", payload.KPIs.AverageTransaction.InexactFloat64()},
		{"Unique Customers", payload.KPIs.UniqueCustomers},
	}
	for i, row := range rows {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), row.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row.value); err != nil {
			return err
		}
	}
	return nil
}

func writeGroupSheet(f *excelize.File, sheet, keyHeader string, groups []models.GroupTotal) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", keyHeader); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "Total Sales"); err != nil {
		return err
	}
	for i, g := range groups {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), g.Key); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), g.Total.InexactFloat64()); err != nil {
			return err
		}
	}
	return nil
}

func writeTrendSheet(f *excelize.File, series []models.TimeSeriesPoint) error {
	const sheet = "Daily Trend"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for col, header := range []string{"Date", "Sales", "Cumulative"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	for i, point := range series {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), point.Date.Format(dateLayout)); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), point.Total.InexactFloat64()); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", row), point.Cumulative.InexactFloat64()); err != nil {
			return err
		}
	}
	return nil
}
