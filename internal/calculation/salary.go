package calculation

import (
	"github.com/shopspring/decimal"
)

// ProjectSalaries returns the gross base salary for each projection
// year: base * (1+growthRate)^i for year offset i.
func ProjectSalaries(baseSalary, growthRate decimal.Decimal, years int) []decimal.Decimal {
	if years <= 0 {
		return nil
	}
	salaries := make([]decimal.Decimal, years)
	factor := decimal.NewFromInt(1).Add(growthRate)
	for i := 0; i < years; i++ {
		salaries[i] = baseSalary.Mul(factor.Pow(decimal.NewFromInt(int64(i))))
	}
	return salaries
}

// ProjectExpenses returns the total annual expenses for each projection
// year: the monthly category sum annualized and inflated per year
// offset.
func ProjectExpenses(totalMonthly, inflationRate decimal.Decimal, years int) []decimal.Decimal {
	if years <= 0 {
		return nil
	}
	expenses := make([]decimal.Decimal, years)
	annual := totalMonthly.Mul(decimal.NewFromInt(12))
	factor := decimal.NewFromInt(1).Add(inflationRate)
	for i := 0; i < years; i++ {
		expenses[i] = annual.Mul(factor.Pow(decimal.NewFromInt(int64(i))))
	}
	return expenses
}
