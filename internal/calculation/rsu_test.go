package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlplan/finance-planner/internal/domain"
)

func testGrant(grantYear int, value, price float64, vestingYears int) domain.RSUGrant {
	g := domain.RSUGrant{
		ID:                     "grant-1",
		GrantYear:              grantYear,
		GrantType:              "new-hire",
		GrantValue:             decimal.NewFromFloat(value),
		SharePriceAtGrant:      decimal.NewFromFloat(price),
		VestingYears:           vestingYears,
		VestingFractionPerYear: decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(vestingYears))),
	}
	g.DeriveShares()
	return g
}

// TestRSUVestingSchedule verifies the vesting window and per-year share
// counts for a standard four-year grant.
func TestRSUVestingSchedule(t *testing.T) {
	calc := NewRSUCalculator(NewDutchTaxCalculator2025(), nil)

	// EUR 100,000 at EUR 100/share: 1000 shares, 250 per year 2024-2027.
	grant := testGrant(2024, 100000, 100, 4)
	require.True(t, grant.Shares.Equal(decimal.NewFromInt(1000)))

	salaries := ProjectSalaries(decimal.NewFromInt(60000), decimal.Zero, 5)
	schedule := calc.ComputeVesting([]domain.RSUGrant{grant}, 2025, 5,
		salaries, decimal.NewFromFloat(0.05), decimal.NewFromInt(100),
		decimal.NewFromFloat(0.0338), false, nil, nil)
	require.Len(t, schedule, 5)

	// 2025 is the plan start year: vesting price is the current price.
	first := schedule[0]
	assert.Equal(t, 2025, first.Year)
	assert.True(t, first.SharesVested.Equal(decimal.NewFromInt(250)),
		"expected 250 shares in 2025, got %s", first.SharesVested.String())
	assert.True(t, first.VestingPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, first.GrossValue.Equal(decimal.NewFromInt(25000)),
		"expected gross 25000, got %s", first.GrossValue.StringFixed(2))

	// 2026 vests at 5% appreciation on the plan-start price.
	second := schedule[1]
	assert.True(t, second.VestingPrice.Sub(decimal.NewFromInt(105)).Abs().LessThan(decimal.NewFromFloat(0.01)))

	// The grant window ends after 2027; 2028 and 2029 vest nothing.
	for _, idle := range schedule[3:] {
		assert.True(t, idle.SharesVested.IsZero(), "year %d should vest nothing", idle.Year)
		assert.True(t, idle.GrossValue.IsZero())
		assert.True(t, idle.TaxPaid.IsZero())
	}
}

// TestRSUSharesConservation verifies the total shares vested over the
// full window equal the grant's derived share count.
func TestRSUSharesConservation(t *testing.T) {
	grant := testGrant(2025, 80000, 40, 4)

	total := decimal.Zero
	for year := 2024; year <= 2031; year++ {
		total = total.Add(grant.SharesVestingInYear(year))
	}
	assert.True(t, total.Equal(grant.Shares),
		"expected all %s shares to vest, got %s", grant.Shares.String(), total.String())
}

// TestRSUWeightedAvgGrantPrice verifies overlapping grants at different
// prices produce a share-weighted average.
func TestRSUWeightedAvgGrantPrice(t *testing.T) {
	calc := NewRSUCalculator(NewDutchTaxCalculator2025(), nil)

	grants := []domain.RSUGrant{
		testGrant(2025, 40000, 100, 4), // 400 shares, 100 per year
		testGrant(2025, 30000, 150, 4), // 200 shares, 50 per year
	}
	salaries := ProjectSalaries(decimal.NewFromInt(60000), decimal.Zero, 1)
	schedule := calc.ComputeVesting(grants, 2025, 1,
		salaries, decimal.Zero, decimal.NewFromInt(120),
		decimal.Zero, false, nil, nil)
	require.Len(t, schedule, 1)

	// (100*100 + 50*150) / 150 = 116.67
	expected := decimal.NewFromFloat(10000 + 7500).Div(decimal.NewFromInt(150))
	assert.True(t, schedule[0].WeightedAvgGrantPrice.Sub(expected).Abs().LessThan(decimal.NewFromFloat(0.01)),
		"expected avg grant price %s, got %s", expected.StringFixed(2),
		schedule[0].WeightedAvgGrantPrice.StringFixed(2))
	assert.True(t, schedule[0].SharesVested.Equal(decimal.NewFromInt(150)))
}

// TestRSUExactTaxMode verifies exact mode charges the difference of the
// two tax series and never a negative amount for positive RSU income.
func TestRSUExactTaxMode(t *testing.T) {
	taxCalc := NewDutchTaxCalculator2025()
	calc := NewRSUCalculator(taxCalc, nil)

	grant := testGrant(2025, 50000, 50, 4)
	salary := decimal.NewFromInt(70000)
	salaries := ProjectSalaries(salary, decimal.Zero, 1)
	pensionOnBase := salary.Mul(decimal.NewFromFloat(0.0338))

	pass1 := calc.ComputeVesting([]domain.RSUGrant{grant}, 2025, 1,
		salaries, decimal.Zero, decimal.NewFromInt(50),
		decimal.NewFromFloat(0.0338), false, nil, nil)
	require.True(t, pass1[0].GrossValue.GreaterThan(decimal.Zero))

	without := []domain.TaxResult{taxCalc.Compute(2025, salary, decimal.NewFromFloat(0.0338), false, &pensionOnBase)}
	with := []domain.TaxResult{taxCalc.Compute(2025, salary.Add(pass1[0].GrossValue), decimal.NewFromFloat(0.0338), false, &pensionOnBase)}

	pass2 := calc.ComputeVesting([]domain.RSUGrant{grant}, 2025, 1,
		salaries, decimal.Zero, decimal.NewFromInt(50),
		decimal.NewFromFloat(0.0338), false, with, without)

	expectedTax := with[0].TotalTax.Sub(without[0].TotalTax)
	assert.True(t, pass2[0].TaxPaid.Equal(expectedTax),
		"expected exact tax %s, got %s", expectedTax.StringFixed(2), pass2[0].TaxPaid.StringFixed(2))
	assert.True(t, pass2[0].TaxPaid.GreaterThanOrEqual(decimal.Zero),
		"RSU tax must never be negative")
	assert.True(t, pass2[0].NetValue.Equal(pass2[0].GrossValue.Sub(pass2[0].TaxPaid)))
	assert.True(t, pass2[0].EffectiveMarginalRate.GreaterThan(decimal.Zero))
}

// TestRSUFallbackVsExact verifies both modes land in the same
// neighborhood for income that stays inside one bracket.
func TestRSUFallbackVsExact(t *testing.T) {
	taxCalc := NewDutchTaxCalculator2025()
	calc := NewRSUCalculator(taxCalc, nil)

	grant := testGrant(2025, 10000, 100, 4)
	salary := decimal.NewFromInt(50000)
	salaries := ProjectSalaries(salary, decimal.Zero, 1)
	pensionOnBase := salary.Mul(decimal.NewFromFloat(0.0338))

	fallback := calc.ComputeVesting([]domain.RSUGrant{grant}, 2025, 1,
		salaries, decimal.Zero, decimal.NewFromInt(100),
		decimal.NewFromFloat(0.0338), false, nil, nil)

	without := []domain.TaxResult{taxCalc.Compute(2025, salary, decimal.NewFromFloat(0.0338), false, &pensionOnBase)}
	with := []domain.TaxResult{taxCalc.Compute(2025, salary.Add(fallback[0].GrossValue), decimal.NewFromFloat(0.0338), false, &pensionOnBase)}
	exact := calc.ComputeVesting([]domain.RSUGrant{grant}, 2025, 1,
		salaries, decimal.Zero, decimal.NewFromInt(100),
		decimal.NewFromFloat(0.0338), false, with, without)

	// Salary plus RSU stays inside the second bracket. The fallback
	// marginal rate misses the credit phase-outs, so exact mode charges
	// roughly 12 points more on the EUR 2,500 of RSU income.
	diff := fallback[0].TaxPaid.Sub(exact[0].TaxPaid).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromInt(400)),
		"fallback %s and exact %s diverge by %s", fallback[0].TaxPaid.StringFixed(2),
		exact[0].TaxPaid.StringFixed(2), diff.StringFixed(2))
}

// TestRSUCliffGrant verifies a zero per-year fraction vests nothing.
func TestRSUCliffGrant(t *testing.T) {
	grant := domain.RSUGrant{
		GrantYear:              2025,
		GrantValue:             decimal.NewFromInt(120000),
		SharePriceAtGrant:      decimal.NewFromInt(60),
		VestingYears:           4,
		VestingFractionPerYear: decimal.Zero,
	}
	grant.DeriveShares()

	for year := 2025; year <= 2028; year++ {
		assert.True(t, grant.SharesVestingInYear(year).IsZero())
	}
}

// TestRSUZeroGrantPrice verifies DeriveShares degrades to zero shares
// instead of dividing by zero.
func TestRSUZeroGrantPrice(t *testing.T) {
	grant := domain.RSUGrant{
		GrantYear:         2025,
		GrantValue:        decimal.NewFromInt(50000),
		SharePriceAtGrant: decimal.Zero,
		VestingYears:      4,
	}
	grant.DeriveShares()
	assert.True(t, grant.Shares.IsZero())
}
