package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeSettings describes the employment income assumptions for the plan.
// Rates are fractions (0.08 = 8%), amounts are annual EUR unless noted.
type IncomeSettings struct {
	BaseSalary               decimal.Decimal `yaml:"base_salary" json:"base_salary"`
	BonusRate                decimal.Decimal `yaml:"bonus_rate" json:"bonus_rate"`
	HolidayAllowanceRate     decimal.Decimal `yaml:"holiday_allowance_rate" json:"holiday_allowance_rate"`
	EmployeePensionRate      decimal.Decimal `yaml:"employee_pension_rate" json:"employee_pension_rate"`
	EmployerPensionRate      decimal.Decimal `yaml:"employer_pension_rate" json:"employer_pension_rate"`
	HealthcareBenefitMonthly decimal.Decimal `yaml:"healthcare_benefit_monthly" json:"healthcare_benefit_monthly"` // tax-free
	Has30PercentRuling       bool            `yaml:"has_30_percent_ruling" json:"has_30_percent_ruling"`
	SalaryGrowthRate         decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`
}

// InvestmentSettings describes starting balances and return assumptions.
type InvestmentSettings struct {
	StartingNetWorth       decimal.Decimal `yaml:"starting_net_worth" json:"starting_net_worth"`
	StartingPensionBalance decimal.Decimal `yaml:"starting_pension_balance" json:"starting_pension_balance"`
	AnnualReturnRate       decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate"`
	PensionReturnRate      decimal.Decimal `yaml:"pension_return_rate" json:"pension_return_rate"`
	SharePriceGrowthRate   decimal.Decimal `yaml:"share_price_growth_rate" json:"share_price_growth_rate"`
	CurrentSharePrice      decimal.Decimal `yaml:"current_share_price" json:"current_share_price"`
	BonusInvestedRate      decimal.Decimal `yaml:"bonus_invested_rate" json:"bonus_invested_rate"`
	HolidayInvestedRate    decimal.Decimal `yaml:"holiday_invested_rate" json:"holiday_invested_rate"`
}

// PlanningSettings describes the projection window.
type PlanningSettings struct {
	StartYear            int             `yaml:"start_year" json:"start_year"`
	ProjectionYears      int             `yaml:"projection_years" json:"projection_years"`
	ExpenseInflationRate decimal.Decimal `yaml:"expense_inflation_rate" json:"expense_inflation_rate"`
}

// ExpenseCategory is one recurring monthly expense. Categories form an
// unordered set; the expense projector only needs their sum.
type ExpenseCategory struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
}

// RSUGrant is a single equity grant vesting linearly over VestingYears.
// Shares is derived from GrantValue and SharePriceAtGrant; call
// DeriveShares after changing either operand.
type RSUGrant struct {
	ID                     string          `yaml:"id" json:"id"`
	GrantYear              int             `yaml:"grant_year" json:"grant_year"`
	GrantType              string          `yaml:"grant_type" json:"grant_type"` // free-form label
	GrantValue             decimal.Decimal `yaml:"grant_value" json:"grant_value"`
	SharePriceAtGrant      decimal.Decimal `yaml:"share_price_at_grant" json:"share_price_at_grant"`
	Shares                 decimal.Decimal `yaml:"shares,omitempty" json:"shares"`
	VestingYears           int             `yaml:"vesting_years" json:"vesting_years"`
	VestingFractionPerYear decimal.Decimal `yaml:"vesting_fraction_per_year" json:"vesting_fraction_per_year"`
}

// DeriveShares recomputes the share count from value and price. A
// non-positive price yields zero shares rather than a division error;
// the config validator rejects such grants before the engine runs.
func (g *RSUGrant) DeriveShares() {
	if g.SharePriceAtGrant.LessThanOrEqual(decimal.Zero) {
		g.Shares = decimal.Zero
		return
	}
	g.Shares = g.GrantValue.Div(g.SharePriceAtGrant)
}

// SharesVestingInYear returns the shares of this grant that vest in the
// given calendar year: a constant slice per year inside the vesting
// window, zero outside it. No partial-year proration.
func (g *RSUGrant) SharesVestingInYear(year int) decimal.Decimal {
	offset := year - g.GrantYear
	if offset < 0 || offset >= g.VestingYears {
		return decimal.Zero
	}
	return g.Shares.Mul(g.VestingFractionPerYear)
}

// Settings is the full immutable input snapshot for one projection run.
type Settings struct {
	Income     IncomeSettings     `yaml:"income" json:"income"`
	Investment InvestmentSettings `yaml:"investment" json:"investment"`
	Planning   PlanningSettings   `yaml:"planning" json:"planning"`
	Expenses   []ExpenseCategory  `yaml:"expenses" json:"expenses"`
	Grants     []RSUGrant         `yaml:"grants" json:"grants"`

	// TaxRules may be omitted; the engine falls back to the built-in
	// NL2025 table.
	TaxRules *TaxRules `yaml:"tax_rules,omitempty" json:"tax_rules,omitempty"`
}

// TotalMonthlyExpenses sums all expense categories.
func (s *Settings) TotalMonthlyExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Expenses {
		total = total.Add(c.MonthlyAmount)
	}
	return total
}
