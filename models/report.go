package models

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/vyasarsoft/invoices_backend/config"
	"github.com/vyasarsoft/invoices_backend/utils"
	"github.com/xuri/excelize/v2"
)

type StatusCount struct {
	Status InvoiceStatus `json:"status"`
	Count  int64         `json:"count"`
}

type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type DashboardSummary struct {
	InvoiceCount  int64           `json:"invoice_count"`
	StatusCounts  []StatusCount   `json:"status_counts"`
	PaidRevenue   decimal.Decimal `json:"paid_revenue"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	MonthlyTotals []MonthlyTotal  `json:"monthly_totals"`
}

func GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	var summary DashboardSummary

	if err := db.WithContext(ctx).Model(&Invoice{}).
		Where("user_id = ?", userId).
		Count(&summary.InvoiceCount).Error; err != nil {
		return nil, err
	}

	statusSql := `
SELECT status, COUNT(id) AS count
FROM invoices
WHERE user_id = ?
GROUP BY status;
`
	if err := db.WithContext(ctx).Raw(statusSql, userId).Scan(&summary.StatusCounts).Error; err != nil {
		return nil, err
	}

	amountSql := `
SELECT
    COALESCE(SUM(CASE WHEN status = 'paid' THEN total ELSE 0 END), 0) AS paid_revenue,
    COALESCE(SUM(CASE WHEN status IN ('unpaid', 'partial', 'overdue') THEN total ELSE 0 END), 0) AS pending_amount
FROM invoices
WHERE user_id = ?;
`
	var amounts struct {
		PaidRevenue   decimal.Decimal
		PendingAmount decimal.Decimal
	}
	if err := db.WithContext(ctx).Raw(amountSql, userId).Scan(&amounts).Error; err != nil {
		return nil, err
	}
	summary.PaidRevenue = amounts.PaidRevenue
	summary.PendingAmount = amounts.PendingAmount

	monthlySql := `
SELECT DATE_FORMAT(date, '%Y-%m') AS month, COALESCE(SUM(total), 0) AS total
FROM invoices
WHERE user_id = ? AND date >= DATE_SUB(CURDATE(), INTERVAL 12 MONTH)
GROUP BY DATE_FORMAT(date, '%Y-%m')
ORDER BY month;
`
	if err := db.WithContext(ctx).Raw(monthlySql, userId).Scan(&summary.MonthlyTotals).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}

// ExportInvoicesExcel writes the filtered invoice list as an xlsx workbook.
func ExportInvoicesExcel(ctx context.Context, filter InvoiceFilter, w io.Writer) error {
	invoices, err := ListInvoices(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	_, err = f.NewSheet("Sheet1")
	if err != nil {
		return err
	}

	// Add headers
	f.SetCellValue("Sheet1", "A1", "InvoiceNumber")
	f.SetCellValue("Sheet1", "B1", "Date")
	f.SetCellValue("Sheet1", "C1", "BillTo")
	f.SetCellValue("Sheet1", "D1", "Status")
	f.SetCellValue("Sheet1", "E1", "Subtotal")
	f.SetCellValue("Sheet1", "F1", "TaxAmount")
	f.SetCellValue("Sheet1", "G1", "Discount")
	f.SetCellValue("Sheet1", "H1", "Total")

	// Add data
	for i, inv := range invoices {
		f.SetCellValue("Sheet1", "A"+fmt.Sprint(i+2), inv.InvoiceNumber)
		f.SetCellValue("Sheet1", "B"+fmt.Sprint(i+2), inv.Date.Format("2006-01-02"))
		f.SetCellValue("Sheet1", "C"+fmt.Sprint(i+2), inv.ToName)
		f.SetCellValue("Sheet1", "D"+fmt.Sprint(i+2), string(inv.Status))
		f.SetCellValue("Sheet1", "E"+fmt.Sprint(i+2), inv.Subtotal.InexactFloat64())
		f.SetCellValue("Sheet1", "F"+fmt.Sprint(i+2), inv.TaxAmount.InexactFloat64())
		f.SetCellValue("Sheet1", "G"+fmt.Sprint(i+2), inv.Discount.InexactFloat64())
		f.SetCellValue("Sheet1", "H"+fmt.Sprint(i+2), inv.Total.InexactFloat64())
	}

	return f.Write(w)
}
