package domain

import (
	"github.com/shopspring/decimal"
)

// TaxResult is the outcome of one tax-engine run for one year.
type TaxResult struct {
	Year                int             `json:"year"`
	GrossIncome         decimal.Decimal `json:"gross_income"`
	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	IncomeTax           decimal.Decimal `json:"income_tax"`
	SocialContributions decimal.Decimal `json:"social_contributions"`
	PensionContribution decimal.Decimal `json:"pension_contribution"`
	GeneralCredit       decimal.Decimal `json:"general_credit"`
	LabourCredit        decimal.Decimal `json:"labour_credit"`
	TaxBeforeCredits    decimal.Decimal `json:"tax_before_credits"`
	TaxAfterCredits     decimal.Decimal `json:"tax_after_credits"`
	TotalTax            decimal.Decimal `json:"total_tax"`
	NetIncome           decimal.Decimal `json:"net_income"`
	EffectiveRate       decimal.Decimal `json:"effective_rate"`
	MarginalRate        decimal.Decimal `json:"marginal_rate"`
}

// RSUVestingYear describes the shares vesting across all grants in one year.
type RSUVestingYear struct {
	Year                  int             `json:"year"`
	SharesVested          decimal.Decimal `json:"shares_vested"`
	WeightedAvgGrantPrice decimal.Decimal `json:"weighted_avg_grant_price"`
	VestingPrice          decimal.Decimal `json:"vesting_price"`
	GrossValue            decimal.Decimal `json:"gross_value"`
	AppreciationAmount    decimal.Decimal `json:"appreciation_amount"`
	AppreciationRate      decimal.Decimal `json:"appreciation_rate"`
	EffectiveMarginalRate decimal.Decimal `json:"effective_marginal_rate"`
	TaxPaid               decimal.Decimal `json:"tax_paid"`
	NetValue              decimal.Decimal `json:"net_value"`
}

// YearlyFinancial is the combined per-year statement.
type YearlyFinancial struct {
	Year                        int             `json:"year"`
	GrossSalary                 decimal.Decimal `json:"gross_salary"` // base + bonus + holiday allowance
	GrossRSUValue               decimal.Decimal `json:"gross_rsu_value"`
	TotalGrossIncome            decimal.Decimal `json:"total_gross_income"`
	NetSalary                   decimal.Decimal `json:"net_salary"` // includes tax-free healthcare benefit
	NetRSUValue                 decimal.Decimal `json:"net_rsu_value"`
	TotalNetIncome              decimal.Decimal `json:"total_net_income"`
	EmployeePensionContribution decimal.Decimal `json:"employee_pension_contribution"`
	EmployerPensionContribution decimal.Decimal `json:"employer_pension_contribution"`
	TotalExpenses               decimal.Decimal `json:"total_expenses"`
	NetSavings                  decimal.Decimal `json:"net_savings"`
	SavingsRate                 decimal.Decimal `json:"savings_rate"`
	EffectiveTaxRate            decimal.Decimal `json:"effective_tax_rate"`
}

// YearlyInvestment is one year of the liquid-investment balance roll.
// ClosingBalance of year N is the OpeningBalance of year N+1.
type YearlyInvestment struct {
	Year                int             `json:"year"`
	OpeningBalance      decimal.Decimal `json:"opening_balance"`
	SavingsContribution decimal.Decimal `json:"savings_contribution"`
	BonusContribution   decimal.Decimal `json:"bonus_contribution"`
	HolidayContribution decimal.Decimal `json:"holiday_contribution"`
	RSUContribution     decimal.Decimal `json:"rsu_contribution"`
	TotalContributions  decimal.Decimal `json:"total_contributions"`
	Growth              decimal.Decimal `json:"growth"`
	ClosingBalance      decimal.Decimal `json:"closing_balance"`
}

// YearlyPension is one year of the pension balance roll.
type YearlyPension struct {
	Year                 int             `json:"year"`
	OpeningBalance       decimal.Decimal `json:"opening_balance"`
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	TotalContributions   decimal.Decimal `json:"total_contributions"`
	Growth               decimal.Decimal `json:"growth"`
	ClosingBalance       decimal.Decimal `json:"closing_balance"`
}

// FinancialProjections is the full output of one pipeline run: parallel
// slices with one entry per projection year, index-aligned to
// StartYear + i.
type FinancialProjections struct {
	StartYear         int                `json:"start_year"`
	Years             int                `json:"years"`
	TaxResults        []TaxResult        `json:"tax_results"`
	RSUVestingByYear  []RSUVestingYear   `json:"rsu_vesting_by_year"`
	YearlyFinancials  []YearlyFinancial  `json:"yearly_financials"`
	YearlyInvestments []YearlyInvestment `json:"yearly_investments"`
	YearlyPension     []YearlyPension    `json:"yearly_pension"`
}

// DashboardMetrics reduces the year series into scalar KPIs.
type DashboardMetrics struct {
	FinalNetWorth           decimal.Decimal `json:"final_net_worth"`
	FinalInvestmentBalance  decimal.Decimal `json:"final_investment_balance"`
	FinalPensionBalance     decimal.Decimal `json:"final_pension_balance"`
	NetWorthCAGR            decimal.Decimal `json:"net_worth_cagr"`
	AverageSavingsRate      decimal.Decimal `json:"average_savings_rate"`
	AverageEffectiveTaxRate decimal.Decimal `json:"average_effective_tax_rate"`
	TotalNetSavings         decimal.Decimal `json:"total_net_savings"`
	TotalRSUGrossValue      decimal.Decimal `json:"total_rsu_gross_value"`
	TotalRSUTaxPaid         decimal.Decimal `json:"total_rsu_tax_paid"`
	TotalRSUNetValue        decimal.Decimal `json:"total_rsu_net_value"`
}

// FinalBalances returns the closing balances of the last projected
// year, or zeros for an empty projection.
func (fp *FinancialProjections) FinalBalances() (investment, pension decimal.Decimal) {
	if n := len(fp.YearlyInvestments); n > 0 {
		investment = fp.YearlyInvestments[n-1].ClosingBalance
	}
	if n := len(fp.YearlyPension); n > 0 {
		pension = fp.YearlyPension[n-1].ClosingBalance
	}
	return investment, pension
}
