package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nlplan/finance-planner/internal/domain"
)

// InputParser handles parsing of settings files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a settings snapshot from a YAML file and validates
// it. Non-fatal findings are returned as warnings alongside the
// settings.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Settings, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var settings domain.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	warnings, err := ip.ValidateSettings(&settings)
	if err != nil {
		return nil, warnings, fmt.Errorf("settings validation failed: %w", err)
	}

	// Shares is always derived from value and price, never trusted from
	// the file.
	for i := range settings.Grants {
		settings.Grants[i].DeriveShares()
	}

	return &settings, warnings, nil
}

// ValidateSettings validates the loaded settings. Hard violations
// return an error; configurations that are legal but almost certainly
// unintended come back as warnings.
func (ip *InputParser) ValidateSettings(settings *domain.Settings) ([]string, error) {
	var warnings []string

	if err := ip.validateIncome(&settings.Income); err != nil {
		return warnings, fmt.Errorf("income validation failed: %w", err)
	}
	if err := ip.validateInvestment(&settings.Investment); err != nil {
		return warnings, fmt.Errorf("investment validation failed: %w", err)
	}
	if err := ip.validatePlanning(&settings.Planning); err != nil {
		return warnings, fmt.Errorf("planning validation failed: %w", err)
	}

	for i, category := range settings.Expenses {
		if category.MonthlyAmount.LessThan(decimal.Zero) {
			return warnings, fmt.Errorf("expense category %d (%s): monthly amount cannot be negative", i, category.Name)
		}
	}

	for i, grant := range settings.Grants {
		grantWarnings, err := ip.validateGrant(i, &grant)
		warnings = append(warnings, grantWarnings...)
		if err != nil {
			return warnings, fmt.Errorf("grant %d validation failed: %w", i, err)
		}
	}

	if settings.TaxRules != nil {
		if err := ip.validateTaxRules(settings.TaxRules); err != nil {
			return warnings, fmt.Errorf("tax rules validation failed: %w", err)
		}
	}

	return warnings, nil
}

// validateIncome validates the employment income block
func (ip *InputParser) validateIncome(income *domain.IncomeSettings) error {
	if income.BaseSalary.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("base salary must be positive")
	}
	if income.BonusRate.LessThan(decimal.Zero) {
		return fmt.Errorf("bonus rate cannot be negative")
	}
	if income.HolidayAllowanceRate.LessThan(decimal.Zero) {
		return fmt.Errorf("holiday allowance rate cannot be negative")
	}
	if income.EmployeePensionRate.LessThan(decimal.Zero) || income.EmployeePensionRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("employee pension rate must be between 0 and 1")
	}
	if income.EmployerPensionRate.LessThan(decimal.Zero) || income.EmployerPensionRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("employer pension rate must be between 0 and 1")
	}
	if income.HealthcareBenefitMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("healthcare benefit cannot be negative")
	}
	if income.SalaryGrowthRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("salary growth rate cannot be less than -100%%")
	}
	return nil
}

// validateInvestment validates balances and return assumptions
func (ip *InputParser) validateInvestment(investment *domain.InvestmentSettings) error {
	if investment.StartingNetWorth.LessThan(decimal.Zero) {
		return fmt.Errorf("starting net worth cannot be negative")
	}
	if investment.StartingPensionBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("starting pension balance cannot be negative")
	}
	if investment.AnnualReturnRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("annual return rate cannot be less than -100%%")
	}
	if investment.PensionReturnRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("pension return rate cannot be less than -100%%")
	}
	if investment.SharePriceGrowthRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("share price growth rate cannot be less than -100%%")
	}
	if investment.CurrentSharePrice.LessThan(decimal.Zero) {
		return fmt.Errorf("current share price cannot be negative")
	}
	if investment.BonusInvestedRate.LessThan(decimal.Zero) || investment.BonusInvestedRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("bonus invested rate must be between 0 and 1")
	}
	if investment.HolidayInvestedRate.LessThan(decimal.Zero) || investment.HolidayInvestedRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("holiday invested rate must be between 0 and 1")
	}
	return nil
}

// validatePlanning validates the projection window
func (ip *InputParser) validatePlanning(planning *domain.PlanningSettings) error {
	if planning.StartYear < 1900 || planning.StartYear > 2200 {
		return fmt.Errorf("start year %d is out of range", planning.StartYear)
	}
	if planning.ProjectionYears <= 0 || planning.ProjectionYears > 60 {
		return fmt.Errorf("projection years must be between 1 and 60")
	}
	if planning.ExpenseInflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("expense inflation rate cannot be less than -10%% (extreme deflation)")
	}
	return nil
}

// validateGrant validates a single RSU grant
func (ip *InputParser) validateGrant(_ int, grant *domain.RSUGrant) ([]string, error) {
	var warnings []string

	if grant.GrantValue.LessThanOrEqual(decimal.Zero) {
		return warnings, fmt.Errorf("grant value must be positive")
	}
	if grant.SharePriceAtGrant.LessThanOrEqual(decimal.Zero) {
		return warnings, fmt.Errorf("share price at grant must be positive")
	}
	if grant.GrantYear < 1900 || grant.GrantYear > 2200 {
		return warnings, fmt.Errorf("grant year %d is out of range", grant.GrantYear)
	}
	if grant.VestingYears <= 0 {
		return warnings, fmt.Errorf("vesting years must be positive")
	}
	if grant.VestingFractionPerYear.LessThan(decimal.Zero) || grant.VestingFractionPerYear.GreaterThan(decimal.NewFromFloat(1.0)) {
		return warnings, fmt.Errorf("vesting fraction per year must be between 0 and 1")
	}

	if grant.VestingFractionPerYear.IsZero() {
		warnings = append(warnings, fmt.Sprintf("grant %s: vesting fraction per year is zero, no shares will ever vest", grant.ID))
	}

	// A fraction that does not spread the grant across its window, like
	// 0.5/year over 4 years, is legal but usually a typo.
	totalFraction := grant.VestingFractionPerYear.Mul(decimal.NewFromInt(int64(grant.VestingYears)))
	if !totalFraction.IsZero() && !totalFraction.Equal(decimal.NewFromInt(1)) {
		warnings = append(warnings, fmt.Sprintf(
			"grant %s: vesting fraction %s over %d years vests %s of the grant",
			grant.ID, grant.VestingFractionPerYear.String(), grant.VestingYears,
			totalFraction.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%"))
	}

	return warnings, nil
}

// validateTaxRules checks a custom rule set for structural soundness:
// brackets must tile the income line from zero with ascending,
// contiguous boundaries.
func (ip *InputParser) validateTaxRules(rules *domain.TaxRules) error {
	if len(rules.Brackets) == 0 {
		return fmt.Errorf("at least one tax bracket is required")
	}

	if !rules.Brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", rules.Brackets[0].Min.String())
	}

	for i, bracket := range rules.Brackets {
		if bracket.Rate.LessThan(decimal.Zero) || bracket.Rate.GreaterThan(decimal.NewFromFloat(1.0)) {
			return fmt.Errorf("bracket %d rate must be between 0 and 1", i)
		}

		last := i == len(rules.Brackets)-1
		if last {
			if bracket.Max != nil {
				return fmt.Errorf("final bracket must be unbounded")
			}
			continue
		}
		if bracket.Max == nil {
			return fmt.Errorf("bracket %d: only the final bracket may be unbounded", i)
		}
		if bracket.Max.LessThanOrEqual(bracket.Min) {
			return fmt.Errorf("bracket %d: max %s must exceed min %s", i, bracket.Max.String(), bracket.Min.String())
		}
		if !rules.Brackets[i+1].Min.Equal(*bracket.Max) {
			return fmt.Errorf("bracket %d ends at %s but bracket %d starts at %s",
				i, bracket.Max.String(), i+1, rules.Brackets[i+1].Min.String())
		}
	}

	for i, sc := range rules.SocialContributions {
		if sc.Rate.LessThan(decimal.Zero) || sc.Rate.GreaterThan(decimal.NewFromFloat(1.0)) {
			return fmt.Errorf("social contribution %d rate must be between 0 and 1", i)
		}
		if sc.Ceiling.LessThan(decimal.Zero) {
			return fmt.Errorf("social contribution %d ceiling cannot be negative", i)
		}
	}

	if rules.RulingExemptRate.LessThan(decimal.Zero) || rules.RulingExemptRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("ruling exempt rate must be between 0 and 1")
	}

	return nil
}

// CreateExampleSettings creates an example settings snapshot
func (ip *InputParser) CreateExampleSettings() *domain.Settings {
	return &domain.Settings{
		Income: domain.IncomeSettings{
			BaseSalary:               decimal.NewFromInt(75000),
			BonusRate:                decimal.NewFromFloat(0.10),
			HolidayAllowanceRate:     decimal.NewFromFloat(0.08),
			EmployeePensionRate:      decimal.NewFromFloat(0.0338),
			EmployerPensionRate:      decimal.NewFromFloat(0.07),
			HealthcareBenefitMonthly: decimal.NewFromInt(100),
			Has30PercentRuling:       false,
			SalaryGrowthRate:         decimal.NewFromFloat(0.03),
		},
		Investment: domain.InvestmentSettings{
			StartingNetWorth:       decimal.NewFromInt(50000),
			StartingPensionBalance: decimal.NewFromInt(20000),
			AnnualReturnRate:       decimal.NewFromFloat(0.07),
			PensionReturnRate:      decimal.NewFromFloat(0.04),
			SharePriceGrowthRate:   decimal.NewFromFloat(0.05),
			CurrentSharePrice:      decimal.NewFromInt(100),
			BonusInvestedRate:      decimal.NewFromFloat(0.50),
			HolidayInvestedRate:    decimal.NewFromFloat(0.25),
		},
		Planning: domain.PlanningSettings{
			StartYear:            2025,
			ProjectionYears:      10,
			ExpenseInflationRate: decimal.NewFromFloat(0.02),
		},
		Expenses: []domain.ExpenseCategory{
			{ID: "housing", Name: "Housing", MonthlyAmount: decimal.NewFromInt(1800)},
			{ID: "groceries", Name: "Groceries", MonthlyAmount: decimal.NewFromInt(500)},
			{ID: "transport", Name: "Transport", MonthlyAmount: decimal.NewFromInt(150)},
			{ID: "insurance", Name: "Insurance", MonthlyAmount: decimal.NewFromInt(180)},
		},
		Grants: []domain.RSUGrant{
			{
				ID:                     "new-hire-2024",
				GrantYear:              2024,
				GrantType:              "new-hire",
				GrantValue:             decimal.NewFromInt(100000),
				SharePriceAtGrant:      decimal.NewFromInt(100),
				VestingYears:           4,
				VestingFractionPerYear: decimal.NewFromFloat(0.25),
			},
		},
	}
}
