package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nlplan/finance-planner/internal/domain"
)

// rollBalance applies one year of growth to a balance with
// contributions. Half the year's contributions participate in growth,
// modeling deposits that arrive uniformly through the year (linear
// accrual).
func rollBalance(opening, contributions, returnRate decimal.Decimal) (growth, closing decimal.Decimal) {
	half := contributions.Div(decimal.NewFromInt(2))
	growth = opening.Add(half).Mul(returnRate)
	closing = opening.Add(contributions).Add(growth)
	return growth, closing
}

// InvestmentContributions is the per-year liquid contribution breakdown
// computed by the aggregator.
type InvestmentContributions struct {
	Savings decimal.Decimal // monthly savings remainder, floored at zero
	Bonus   decimal.Decimal // invested fraction of the net bonus
	Holiday decimal.Decimal // invested fraction of the net holiday allowance
	RSU     decimal.Decimal // net RSU value, invested in full
}

// Total sums all contribution sources.
func (ic InvestmentContributions) Total() decimal.Decimal {
	return ic.Savings.Add(ic.Bonus).Add(ic.Holiday).Add(ic.RSU)
}

// ProjectInvestments rolls the liquid investment balance over the
// projection, threading each year's closing balance into the next
// year's opening balance.
func ProjectInvestments(startYear int, openingBalance, returnRate decimal.Decimal, contributions []InvestmentContributions) []domain.YearlyInvestment {
	results := make([]domain.YearlyInvestment, len(contributions))
	currentBalance := openingBalance
	for i, c := range contributions {
		total := c.Total()
		growth, closing := rollBalance(currentBalance, total, returnRate)
		results[i] = domain.YearlyInvestment{
			Year:                startYear + i,
			OpeningBalance:      currentBalance,
			SavingsContribution: c.Savings,
			BonusContribution:   c.Bonus,
			HolidayContribution: c.Holiday,
			RSUContribution:     c.RSU,
			TotalContributions:  total,
			Growth:              growth,
			ClosingBalance:      closing,
		}
		currentBalance = closing
	}
	return results
}

// PensionContributions is the per-year pension contribution pair.
type PensionContributions struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// ProjectPension rolls the pension balance over the projection using
// the same half-year contribution model as the investment projector.
func ProjectPension(startYear int, openingBalance, returnRate decimal.Decimal, contributions []PensionContributions) []domain.YearlyPension {
	results := make([]domain.YearlyPension, len(contributions))
	currentBalance := openingBalance
	for i, c := range contributions {
		total := c.Employee.Add(c.Employer)
		growth, closing := rollBalance(currentBalance, total, returnRate)
		results[i] = domain.YearlyPension{
			Year:                 startYear + i,
			OpeningBalance:       currentBalance,
			EmployeeContribution: c.Employee,
			EmployerContribution: c.Employer,
			TotalContributions:   total,
			Growth:               growth,
			ClosingBalance:       closing,
		}
		currentBalance = closing
	}
	return results
}
