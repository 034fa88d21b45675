package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlplan/finance-planner/internal/domain"
)

func testSettings() *domain.Settings {
	grant := domain.RSUGrant{
		ID:                     "grant-2024",
		GrantYear:              2024,
		GrantType:              "new-hire",
		GrantValue:             decimal.NewFromInt(100000),
		SharePriceAtGrant:      decimal.NewFromInt(100),
		VestingYears:           4,
		VestingFractionPerYear: decimal.NewFromFloat(0.25),
	}
	return &domain.Settings{
		Income: domain.IncomeSettings{
			BaseSalary:               decimal.NewFromInt(75000),
			BonusRate:                decimal.NewFromFloat(0.10),
			HolidayAllowanceRate:     decimal.NewFromFloat(0.08),
			EmployeePensionRate:      decimal.NewFromFloat(0.0338),
			EmployerPensionRate:      decimal.NewFromFloat(0.07),
			HealthcareBenefitMonthly: decimal.NewFromInt(100),
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
		},
		Grants: []domain.RSUGrant{grant},
	}
}

// TestGenerateProjectionsShape verifies every output series covers the
// full projection window, index-aligned to the start year.
func TestGenerateProjectionsShape(t *testing.T) {
	engine := NewEngine()
	s := testSettings()

	p, err := engine.Project(s)
	require.NoError(t, err)
	require.NotNil(t, p)

	years := s.Planning.ProjectionYears
	assert.Equal(t, s.Planning.StartYear, p.StartYear)
	assert.Equal(t, years, p.Years)
	assert.Len(t, p.TaxResults, years)
	assert.Len(t, p.RSUVestingByYear, years)
	assert.Len(t, p.YearlyFinancials, years)
	assert.Len(t, p.YearlyInvestments, years)
	assert.Len(t, p.YearlyPension, years)

	for i := 0; i < years; i++ {
		expectedYear := s.Planning.StartYear + i
		assert.Equal(t, expectedYear, p.TaxResults[i].Year)
		assert.Equal(t, expectedYear, p.RSUVestingByYear[i].Year)
		assert.Equal(t, expectedYear, p.YearlyFinancials[i].Year)
		assert.Equal(t, expectedYear, p.YearlyInvestments[i].Year)
		assert.Equal(t, expectedYear, p.YearlyPension[i].Year)
	}
}

// TestGenerateProjectionsRSUFlow checks the 2024 grant against the
// 2025-2027 plan years: 250 shares per year until the window closes.
func TestGenerateProjectionsRSUFlow(t *testing.T) {
	engine := NewEngine()
	p, err := engine.Project(testSettings())
	require.NoError(t, err)

	// Grant window 2024-2027 overlaps plan years 2025, 2026, 2027.
	for i := 0; i < 3; i++ {
		rv := p.RSUVestingByYear[i]
		assert.True(t, rv.SharesVested.Equal(decimal.NewFromInt(250)),
			"year %d: expected 250 shares, got %s", rv.Year, rv.SharesVested.String())
		assert.True(t, rv.GrossValue.GreaterThan(decimal.Zero))
		assert.True(t, rv.TaxPaid.GreaterThanOrEqual(decimal.Zero),
			"year %d: negative RSU tax", rv.Year)
		assert.True(t, rv.NetValue.Equal(rv.GrossValue.Sub(rv.TaxPaid)))
	}
	// 2025 vests at the current share price.
	assert.True(t, p.RSUVestingByYear[0].GrossValue.Equal(decimal.NewFromInt(25000)))

	for i := 3; i < p.Years; i++ {
		assert.True(t, p.RSUVestingByYear[i].SharesVested.IsZero(),
			"year %d: grant window should be closed", p.RSUVestingByYear[i].Year)
	}
}

// TestGenerateProjectionsAccounting checks the internal consistency of
// each yearly financial statement.
func TestGenerateProjectionsAccounting(t *testing.T) {
	engine := NewEngine()
	s := testSettings()
	p, err := engine.Project(s)
	require.NoError(t, err)

	tolerance := decimal.NewFromFloat(0.01)
	for i, yf := range p.YearlyFinancials {
		assert.True(t, yf.TotalGrossIncome.Equal(yf.GrossSalary.Add(yf.GrossRSUValue)),
			"year %d: gross income does not add up", yf.Year)
		assert.True(t, yf.TotalNetIncome.Equal(yf.NetSalary.Add(yf.NetRSUValue)),
			"year %d: net income does not add up", yf.Year)
		assert.True(t, yf.TotalNetIncome.LessThan(yf.TotalGrossIncome),
			"year %d: net should be below gross", yf.Year)

		expectedSavings := yf.TotalNetIncome.Sub(yf.TotalExpenses).Add(yf.EmployerPensionContribution)
		assert.True(t, yf.NetSavings.Sub(expectedSavings).Abs().LessThan(tolerance),
			"year %d: savings identity broken", yf.Year)

		// Pension contributions track the growing base salary.
		if i > 0 {
			prev := p.YearlyFinancials[i-1]
			assert.True(t, yf.EmployeePensionContribution.GreaterThan(prev.EmployeePensionContribution))
		}
	}
}

// TestGenerateProjectionsBalanceChaining verifies balances thread
// year over year and start from the configured openings.
func TestGenerateProjectionsBalanceChaining(t *testing.T) {
	engine := NewEngine()
	s := testSettings()
	p, err := engine.Project(s)
	require.NoError(t, err)

	assert.True(t, p.YearlyInvestments[0].OpeningBalance.Equal(s.Investment.StartingNetWorth))
	assert.True(t, p.YearlyPension[0].OpeningBalance.Equal(s.Investment.StartingPensionBalance))

	for i := 1; i < p.Years; i++ {
		assert.True(t, p.YearlyInvestments[i].OpeningBalance.Equal(p.YearlyInvestments[i-1].ClosingBalance))
		assert.True(t, p.YearlyPension[i].OpeningBalance.Equal(p.YearlyPension[i-1].ClosingBalance))
	}
}

// TestProjectDeterministic runs the same snapshot twice and requires
// identical output.
func TestProjectDeterministic(t *testing.T) {
	engine := NewEngine()
	s := testSettings()

	first, err := engine.Project(s)
	require.NoError(t, err)
	second, err := engine.Project(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestProjectDoesNotMutateSettings verifies the grant share derivation
// happens on a copy.
func TestProjectDoesNotMutateSettings(t *testing.T) {
	engine := NewEngine()
	s := testSettings()
	require.True(t, s.Grants[0].Shares.IsZero())

	_, err := engine.Project(s)
	require.NoError(t, err)

	assert.True(t, s.Grants[0].Shares.IsZero(),
		"projection must not write derived shares back into the snapshot")
}

func TestProjectInvalidSettings(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Project(nil)
	assert.Error(t, err)

	s := testSettings()
	s.Planning.ProjectionYears = 0
	_, err = engine.Project(s)
	assert.Error(t, err)
}

// TestProjectCustomTaxRules verifies a snapshot-level rule set replaces
// the engine default for that run.
func TestProjectCustomTaxRules(t *testing.T) {
	engine := NewEngine()
	s := testSettings()

	base, err := engine.Project(s)
	require.NoError(t, err)

	// A single flat 10% bracket and nothing else.
	s.TaxRules = &domain.TaxRules{
		Version: "flat-test",
		Brackets: []domain.TaxBracket{
			{Min: decimal.Zero, Max: nil, Rate: decimal.NewFromFloat(0.10)},
		},
	}
	flat, err := engine.Project(s)
	require.NoError(t, err)

	assert.True(t, flat.YearlyFinancials[0].TotalNetIncome.GreaterThan(base.YearlyFinancials[0].TotalNetIncome),
		"flat 10% rules should leave more net income than the progressive defaults")
}

// TestGenerateProjectionsSavingsFloor verifies the invested savings
// remainder never goes negative when expenses exceed net base salary.
func TestGenerateProjectionsSavingsFloor(t *testing.T) {
	engine := NewEngine()
	s := testSettings()
	s.Expenses = []domain.ExpenseCategory{
		{ID: "housing", Name: "Housing", MonthlyAmount: decimal.NewFromInt(6000)},
	}

	p, err := engine.Project(s)
	require.NoError(t, err)

	for _, yi := range p.YearlyInvestments {
		assert.True(t, yi.SavingsContribution.GreaterThanOrEqual(decimal.Zero),
			"year %d: savings contribution went negative", yi.Year)
	}
	// Net savings in the statement may legitimately be negative.
	assert.True(t, p.YearlyFinancials[0].NetSavings.LessThan(decimal.Zero),
		"expected negative net savings with EUR 6,000/month expenses")
}

// TestGenerateProjectionsNoGrants verifies a grant-free plan produces
// zero RSU rows but otherwise full output.
func TestGenerateProjectionsNoGrants(t *testing.T) {
	engine := NewEngine()
	s := testSettings()
	s.Grants = nil

	p, err := engine.Project(s)
	require.NoError(t, err)

	for _, rv := range p.RSUVestingByYear {
		assert.True(t, rv.GrossValue.IsZero())
		assert.True(t, rv.TaxPaid.IsZero())
	}
	for _, yf := range p.YearlyFinancials {
		assert.True(t, yf.GrossRSUValue.IsZero())
		assert.True(t, yf.TotalNetIncome.GreaterThan(decimal.Zero))
	}
}
