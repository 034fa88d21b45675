package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVFormatter exports the yearly series as one flat row per year, for
// spreadsheet import.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Projections == nil {
		return nil, fmt.Errorf("nil report")
	}
	p := report.Projections

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year",
		"GrossSalary", "GrossRSUValue", "TotalGrossIncome",
		"NetSalary", "NetRSUValue", "TotalNetIncome",
		"TotalTax", "EffectiveTaxRate",
		"EmployeePension", "EmployerPension",
		"TotalExpenses", "NetSavings", "SavingsRate",
		"InvestmentOpening", "InvestmentContributions", "InvestmentGrowth", "InvestmentClosing",
		"PensionOpening", "PensionContributions", "PensionGrowth", "PensionClosing",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, yf := range p.YearlyFinancials {
		yi := p.YearlyInvestments[i]
		yp := p.YearlyPension[i]
		row := []string{
			fmt.Sprintf("%d", yf.Year),
			yf.GrossSalary.StringFixed(2),
			yf.GrossRSUValue.StringFixed(2),
			yf.TotalGrossIncome.StringFixed(2),
			yf.NetSalary.StringFixed(2),
			yf.NetRSUValue.StringFixed(2),
			yf.TotalNetIncome.StringFixed(2),
			// Salary tax plus RSU tax, so the column shares its basis
			// with EffectiveTaxRate.
			p.TaxResults[i].TotalTax.Add(p.RSUVestingByYear[i].TaxPaid).StringFixed(2),
			yf.EffectiveTaxRate.StringFixed(4),
			yf.EmployeePensionContribution.StringFixed(2),
			yf.EmployerPensionContribution.StringFixed(2),
			yf.TotalExpenses.StringFixed(2),
			yf.NetSavings.StringFixed(2),
			yf.SavingsRate.StringFixed(4),
			yi.OpeningBalance.StringFixed(2),
			yi.TotalContributions.StringFixed(2),
			yi.Growth.StringFixed(2),
			yi.ClosingBalance.StringFixed(2),
			yp.OpeningBalance.StringFixed(2),
			yp.TotalContributions.StringFixed(2),
			yp.Growth.StringFixed(2),
			yp.ClosingBalance.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
