package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/nlplan/finance-planner/internal/domain"
)

// CAGR returns the compound annual growth rate between two values. A
// non-positive starting value or year count returns zero rather than
// NaN or infinity.
func CAGR(startValue, endValue decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || startValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	// decimal.Pow only supports integer exponents; take the fractional
	// root in float64.
	ratio, _ := endValue.Div(startValue).Float64()
	if ratio <= 0 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(math.Pow(ratio, 1.0/float64(years)) - 1)
}

// SummarizeMetrics reduces the projection's year series into the scalar
// dashboard KPIs.
func SummarizeMetrics(p *domain.FinancialProjections) domain.DashboardMetrics {
	var m domain.DashboardMetrics
	if p == nil {
		return m
	}

	investment, pension := p.FinalBalances()
	m.FinalInvestmentBalance = investment
	m.FinalPensionBalance = pension
	m.FinalNetWorth = investment.Add(pension)

	if len(p.YearlyInvestments) > 0 && len(p.YearlyPension) > 0 {
		startingNetWorth := p.YearlyInvestments[0].OpeningBalance.Add(p.YearlyPension[0].OpeningBalance)
		m.NetWorthCAGR = CAGR(startingNetWorth, m.FinalNetWorth, p.Years)
	}

	if n := len(p.YearlyFinancials); n > 0 {
		savingsSum := decimal.Zero
		taxRateSum := decimal.Zero
		for _, yf := range p.YearlyFinancials {
			savingsSum = savingsSum.Add(yf.SavingsRate)
			taxRateSum = taxRateSum.Add(yf.EffectiveTaxRate)
			m.TotalNetSavings = m.TotalNetSavings.Add(yf.NetSavings)
		}
		count := decimal.NewFromInt(int64(n))
		m.AverageSavingsRate = savingsSum.Div(count)
		m.AverageEffectiveTaxRate = taxRateSum.Div(count)
	}

	for _, rv := range p.RSUVestingByYear {
		m.TotalRSUGrossValue = m.TotalRSUGrossValue.Add(rv.GrossValue)
		m.TotalRSUTaxPaid = m.TotalRSUTaxPaid.Add(rv.TaxPaid)
		m.TotalRSUNetValue = m.TotalRSUNetValue.Add(rv.NetValue)
	}

	return m
}
