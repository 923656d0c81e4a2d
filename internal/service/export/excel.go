package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

const (
	summarySheet  = "Summary"
	balesSheet    = "Bales"
	expensesSheet = "Expenses"
	savingsSheet  = "Savings Report"
)

// writeFinancialExcel builds the financial workbook: a Summary sheet plus
// Bales and Expenses sheets only when the corresponding data is non-empty.
// Amount cells stay numeric; percentage and date columns are display strings.
func writeFinancialExcel(ctx context.Context, w io.Writer, report models.FinancialReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := sheetColumns(f, summarySheet,
		column{"Metric", 25}, column{"Amount (Ksh)", 20}, column{"Percentage", 15}); err != nil {
		return err
	}

	m := report.Metrics
	summaryRows := []summaryRow{
		{metric: "Total Sales", amount: &m.TotalBalesSales},
		{metric: "Total Purchases", amount: &m.TotalBalesPurchases},
		{metric: "Operating Expenses", amount: &m.PureExpenses},
		{metric: "Total Costs", amount: &m.TotalCosts},
		{metric: "Net Profit/Loss", amount: &m.ActualProfit, percentage: fmt.Sprintf("%.1f%%", m.ProfitMargin)},
		{metric: "Expense Ratio", percentage: fmt.Sprintf("%.1f%%", m.ExpenseRatio)},
	}
	for i, row := range summaryRows {
		r := i + 2
		if err := setRow(f, summarySheet, r, row.metric, amountCell(row.amount), row.percentage); err != nil {
			return err
		}
	}

	transactions := append([]models.BaleTransactionView{},
		report.BalesData.RecentPurchases...)
	transactions = append(transactions, report.BalesData.RecentSales...)

	if len(transactions) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.NewSheet(balesSheet); err != nil {
			return fmt.Errorf("add bales sheet: %w", err)
		}
		if err := sheetColumns(f, balesSheet,
			column{"Date", 15}, column{"Type", 12}, column{"Description", 30}, column{"Amount (Ksh)", 20}); err != nil {
			return err
		}
		for i, tx := range transactions {
			kind := "PURCHASE"
			if tx.TransactionType == models.TransactionSale {
				kind = "SALE"
			}
			description := tx.Description
			if description == "" {
				description = "N/A"
			}
			if err := setRow(f, balesSheet, i+2,
				tx.CreatedAt.Format("2006-01-02"), kind, description, tx.TotalAmount); err != nil {
				return err
			}
		}
	}

	if len(report.ExpensesData.ExpensesList) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.NewSheet(expensesSheet); err != nil {
			return fmt.Errorf("add expenses sheet: %w", err)
		}
		if err := sheetColumns(f, expensesSheet,
			column{"Date", 15}, column{"Category", 20}, column{"Description", 30}, column{"Amount (Ksh)", 20}); err != nil {
			return err
		}
		for i, e := range report.ExpensesData.ExpensesList {
			description := e.ExpenseDescription
			if description == "" {
				description = "N/A"
			}
			if err := setRow(f, expensesSheet, i+2,
				e.ExpenseDate.Format("2006-01-02"), string(e.ExpenseType), description, e.ExpenseAmount); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// writeSavingsExcel builds the savings workbook: one transactions sheet with
// a bold TOTAL row.
func writeSavingsExcel(ctx context.Context, w io.Writer, savings []models.SavingsRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", savingsSheet); err != nil {
		return fmt.Errorf("rename savings sheet: %w", err)
	}
	if err := sheetColumns(f, savingsSheet,
		column{"Date", 15}, column{"Description", 30}, column{"Amount (Ksh)", 15}, column{"Type", 15}); err != nil {
		return err
	}

	var total float64
	for i, saving := range savings {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := saving.TargetName
		if name == "" {
			name = "General Savings"
		}
		if err := setRow(f, savingsSheet, i+2,
			saving.SavingsDate.Format("2006-01-02"), name, saving.SavingsAmount, string(saving.SavingsType)); err != nil {
			return err
		}
		total += saving.SavingsAmount
	}

	totalRow := len(savings) + 2
	if err := setRow(f, savingsSheet, totalRow, "", "TOTAL", total, ""); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create bold style: %w", err)
	}
	cell := fmt.Sprintf("C%d", totalRow)
	if err := f.SetCellStyle(savingsSheet, cell, cell, bold); err != nil {
		return fmt.Errorf("style total cell: %w", err)
	}

	return f.Write(w)
}

type column struct {
	header string
	width  float64
}

func sheetColumns(f *excelize.File, sheet string, columns ...column) error {
	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("resolve column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return fmt.Errorf("size column %s: %w", name, err)
		}
		if err := f.SetCellValue(sheet, name+"1", col.header); err != nil {
			return fmt.Errorf("write header %s: %w", col.header, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("resolve cell %d,%d: %w", i+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return nil
}

// amountCell boxes an optional amount for setRow: nil means leave the cell
// empty rather than writing a zero.
func amountCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
