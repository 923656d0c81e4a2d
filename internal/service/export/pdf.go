package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

// A4 layout, millimetres. Pagination is managed manually: each row needs
// rowHeight of vertical space, and when the remaining page height cannot fit
// the next row the footer is emitted and a fresh page restarts at the header.
const (
	pageMargin   = 15.0
	rowHeight    = 9.0
	footerHeight = 25.0
	colMetricX   = pageMargin
	colAmountX   = 110.0
	colAmountW   = 45.0
	colPercentX  = 160.0
	colPercentW  = 35.0
)

type summaryRow struct {
	metric     string
	amount     *float64
	percentage string
	bold       bool
}

type financialPage struct {
	pdf         *fpdf.Fpdf
	periodLabel string
	generated   time.Time
	pageWidth   float64
	pageBottom  float64
	y           float64
}

func writeFinancialPDF(ctx context.Context, w io.Writer, report models.FinancialReport, periodLabel string, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	pageWidth, pageHeight := pdf.GetPageSize()
	page := &financialPage{
		pdf:         pdf,
		periodLabel: periodLabel,
		generated:   now,
		pageWidth:   pageWidth,
		pageBottom:  pageHeight - footerHeight,
	}

	page.newPage()

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pageMargin, page.y, fmt.Sprintf("Report Period: %s - %s",
		report.Period.StartDate.Format("2006-01-02"),
		report.Period.EndDate.Format("2006-01-02")))
	page.y += 14

	pdf.SetFont("Helvetica", "BU", 16)
	pdf.Text(pageMargin, page.y, "FINANCIAL SUMMARY")
	page.y += 10

	page.tableHeader()

	m := report.Metrics
	rows := []summaryRow{
		{metric: "Total Sales", amount: &m.TotalBalesSales},
		{metric: "Total Purchases", amount: &m.TotalBalesPurchases},
		{metric: "Operating Expenses", amount: &m.PureExpenses},
		{metric: "Total Costs", amount: &m.TotalCosts},
		{metric: "Net Profit/Loss", amount: &m.ActualProfit, percentage: fmt.Sprintf("%.1f%%", m.ProfitMargin), bold: true},
		{metric: "Expense Ratio", percentage: fmt.Sprintf("%.1f%%", m.ExpenseRatio)},
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if page.y+rowHeight > page.pageBottom {
			page.footer()
			page.newPage()
			page.tableHeader()
		}
		page.row(row)
	}

	page.footer()

	return pdf.Output(w)
}

// newPage starts a page and emits the report header.
func (p *financialPage) newPage() {
	p.pdf.AddPage()
	p.y = pageMargin + 5

	p.pdf.SetTextColor(68, 68, 68)
	p.pdf.SetFont("Helvetica", "B", 20)
	p.pdf.Text(pageMargin, p.y, "FINANCIAL REPORT")

	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.SetXY(p.pageWidth-pageMargin-70, p.y-4)
	p.pdf.CellFormat(70, 5, "Period: "+p.periodLabel, "", 2, "R", false, 0, "")
	p.pdf.CellFormat(70, 5, "Generated: "+p.generated.Format("2006-01-02"), "", 0, "R", false, 0, "")

	p.y += 16
}

func (p *financialPage) tableHeader() {
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.Text(colMetricX, p.y, "Metric")
	p.cellRight(colAmountX, colAmountW, "Amount (Ksh)", true)
	p.cellRight(colPercentX, colPercentW, "Percentage", true)

	p.pdf.SetDrawColor(68, 68, 68)
	p.pdf.Line(pageMargin, p.y+2, p.pageWidth-pageMargin, p.y+2)
	p.y += rowHeight
	p.pdf.SetFont("Helvetica", "", 12)
}

func (p *financialPage) row(r summaryRow) {
	if r.bold {
		p.pdf.SetFont("Helvetica", "B", 12)
	}

	p.pdf.Text(colMetricX, p.y, r.metric)
	if r.amount != nil {
		p.cellRight(colAmountX, colAmountW, formatAmount(*r.amount), r.bold)
	}
	if r.percentage != "" {
		p.cellRight(colPercentX, colPercentW, r.percentage, r.bold)
	}

	if r.bold {
		p.pdf.SetFont("Helvetica", "", 12)
	}
	p.y += rowHeight
}

func (p *financialPage) footer() {
	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.SetXY(pageMargin, p.pageBottom+10)
	p.pdf.CellFormat(p.pageWidth-2*pageMargin, 5, "Auto-generated financial report", "", 0, "C", false, 0, "")
}

// cellRight draws right-aligned text whose baseline matches the current row.
func (p *financialPage) cellRight(x, width float64, text string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	p.pdf.SetFont("Helvetica", style, 12)
	p.pdf.SetXY(x, p.y-4)
	p.pdf.CellFormat(width, 5, text, "", 0, "R", false, 0, "")
	p.pdf.SetFont("Helvetica", "", 12)
}

func writeSavingsPDF(ctx context.Context, w io.Writer, savings []models.SavingsRecord, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	pageWidth, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - footerHeight

	pdf.AddPage()
	y := pageMargin + 5

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(pageMargin, y-5)
	pdf.CellFormat(pageWidth-2*pageMargin, 10, "Savings Report", "", 0, "C", false, 0, "")
	y += 14

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(pageMargin, y-4)
	pdf.CellFormat(pageWidth-2*pageMargin, 5, "Generated on: "+now.Format("2006-01-02"), "", 0, "R", false, 0, "")
	y += 14

	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(pageMargin, y, "Savings Summary:")
	y += 10

	pdf.SetFont("Helvetica", "", 12)

	var total float64
	for i, saving := range savings {
		if err := ctx.Err(); err != nil {
			return err
		}
		if y+rowHeight > bottom {
			pdf.AddPage()
			y = pageMargin + 10
			pdf.SetFont("Helvetica", "", 12)
		}

		name := saving.TargetName
		if name == "" {
			name = "General Savings"
		}
		pdf.Text(pageMargin, y, fmt.Sprintf("%d. %s - %s: Ksh %s",
			i+1, saving.SavingsDate.Format("2006-01-02"), name, formatAmount(saving.SavingsAmount)))

		total += saving.SavingsAmount
		y += rowHeight
	}

	if y+rowHeight > bottom {
		pdf.AddPage()
		y = pageMargin + 10
	}
	y += 4
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin, y, "Total Savings: Ksh "+formatAmount(total))

	return pdf.Output(w)
}
