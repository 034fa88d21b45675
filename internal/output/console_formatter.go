package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the dashboard metrics and the yearly table
// as plain text for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Projections == nil {
		return nil, fmt.Errorf("nil report")
	}
	p := report.Projections
	m := report.Metrics

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Projection: %d-%d (%d years)\n", p.StartYear, p.StartYear+p.Years-1, p.Years)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Final Net Worth:        %s\n", FormatCurrency(m.FinalNetWorth))
	fmt.Fprintf(&buf, "  Investments:          %s\n", FormatCurrency(m.FinalInvestmentBalance))
	fmt.Fprintf(&buf, "  Pension:              %s\n", FormatCurrency(m.FinalPensionBalance))
	fmt.Fprintf(&buf, "Net Worth CAGR:         %s\n", FormatPercentage(m.NetWorthCAGR))
	fmt.Fprintf(&buf, "Avg Savings Rate:       %s\n", FormatPercentage(m.AverageSavingsRate))
	fmt.Fprintf(&buf, "Avg Effective Tax Rate: %s\n", FormatPercentage(m.AverageEffectiveTaxRate))
	fmt.Fprintf(&buf, "Total Net Savings:      %s\n", FormatCurrency(m.TotalNetSavings))
	if m.TotalRSUGrossValue.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&buf, "RSU Gross / Tax / Net:  %s / %s / %s\n",
			FormatCurrency(m.TotalRSUGrossValue), FormatCurrency(m.TotalRSUTaxPaid), FormatCurrency(m.TotalRSUNetValue))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-6s %14s %14s %14s %12s %14s %14s\n",
		"Year", "Gross", "Net", "Expenses", "SavingsRate", "Investments", "Pension")
	for i, yf := range p.YearlyFinancials {
		fmt.Fprintf(&buf, "%-6d %14s %14s %14s %12s %14s %14s\n",
			yf.Year,
			yf.TotalGrossIncome.StringFixed(0),
			yf.TotalNetIncome.StringFixed(0),
			yf.TotalExpenses.StringFixed(0),
			FormatPercentage(yf.SavingsRate),
			p.YearlyInvestments[i].ClosingBalance.StringFixed(0),
			p.YearlyPension[i].ClosingBalance.StringFixed(0),
		)
	}
	return buf.Bytes(), nil
}
