package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nlplan/finance-planner/internal/domain"
)

// RSUCalculator computes the per-year vesting schedule and the tax on
// vested RSU income.
//
// The calculator runs in one of two tax modes. In exact mode the caller
// supplies two pre-computed tax series for each year, with and without
// RSU income, and the RSU tax is their difference. This captures
// bracket-crossing effects exactly. When the series are absent the
// calculator falls back to taxing the combined income directly and
// applying the reported marginal rate to the RSU gross value, which is
// an approximation. The engine therefore runs vesting twice per
// projection: pass 1 in fallback mode to obtain provisional gross
// values for the tax runs, pass 2 in exact mode with their results.
type RSUCalculator struct {
	TaxCalc *DutchTaxCalculator
	Logger  Logger
}

// NewRSUCalculator creates an RSU calculator backed by the given tax
// calculator.
func NewRSUCalculator(taxCalc *DutchTaxCalculator, logger Logger) *RSUCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &RSUCalculator{TaxCalc: taxCalc, Logger: logger}
}

// ComputeVesting builds the vesting schedule for every projection year.
//
// salaries is the base-salary series from the salary projector, indexed
// by year offset. The share price for year startYear+i is
// currentPrice * (1+priceGrowthRate)^i — appreciation is anchored to
// the plan's start year, not the grant year. taxWithRSU and
// taxWithoutRSU enable exact mode when both cover all years; pass nil
// for pass 1.
func (rc *RSUCalculator) ComputeVesting(
	grants []domain.RSUGrant,
	startYear, years int,
	salaries []decimal.Decimal,
	priceGrowthRate, currentPrice decimal.Decimal,
	employeePensionRate decimal.Decimal,
	has30PercentRuling bool,
	taxWithRSU, taxWithoutRSU []domain.TaxResult,
) []domain.RSUVestingYear {
	if years <= 0 {
		return nil
	}

	exact := len(taxWithRSU) == years && len(taxWithoutRSU) == years
	growthFactor := decimal.NewFromInt(1).Add(priceGrowthRate)

	schedule := make([]domain.RSUVestingYear, years)
	for i := 0; i < years; i++ {
		year := startYear + i
		vestingPrice := currentPrice.Mul(growthFactor.Pow(decimal.NewFromInt(int64(i))))

		shares := decimal.Zero
		grantPriceWeight := decimal.Zero
		for _, g := range grants {
			vesting := g.SharesVestingInYear(year)
			if vesting.IsZero() {
				continue
			}
			shares = shares.Add(vesting)
			grantPriceWeight = grantPriceWeight.Add(vesting.Mul(g.SharePriceAtGrant))
		}

		avgGrantPrice := decimal.Zero
		if shares.GreaterThan(decimal.Zero) {
			avgGrantPrice = grantPriceWeight.Div(shares)
		}

		grossValue := shares.Mul(vestingPrice)
		appreciation := vestingPrice.Sub(avgGrantPrice).Mul(shares)
		appreciationRate := decimal.Zero
		if avgGrantPrice.GreaterThan(decimal.Zero) {
			appreciationRate = vestingPrice.Div(avgGrantPrice).Sub(decimal.NewFromInt(1))
		}

		taxPaid, marginalRate := rc.taxOnVesting(i, year, grossValue, salaries, employeePensionRate, has30PercentRuling, exact, taxWithRSU, taxWithoutRSU)

		schedule[i] = domain.RSUVestingYear{
			Year:                  year,
			SharesVested:          shares,
			WeightedAvgGrantPrice: avgGrantPrice,
			VestingPrice:          vestingPrice,
			GrossValue:            grossValue,
			AppreciationAmount:    appreciation,
			AppreciationRate:      appreciationRate,
			EffectiveMarginalRate: marginalRate,
			TaxPaid:               taxPaid,
			NetValue:              grossValue.Sub(taxPaid),
		}
	}
	return schedule
}

// taxOnVesting resolves the RSU tax for one year in the active mode.
func (rc *RSUCalculator) taxOnVesting(
	i, year int,
	grossValue decimal.Decimal,
	salaries []decimal.Decimal,
	employeePensionRate decimal.Decimal,
	has30PercentRuling bool,
	exact bool,
	taxWithRSU, taxWithoutRSU []domain.TaxResult,
) (taxPaid, marginalRate decimal.Decimal) {
	if grossValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}

	if exact {
		taxPaid = taxWithRSU[i].TotalTax.Sub(taxWithoutRSU[i].TotalTax)
		marginalRate = taxPaid.Div(grossValue)
		return taxPaid, marginalRate
	}

	// Fallback: tax the combined income directly and charge the RSU
	// value at the reported marginal rate.
	salary := decimal.Zero
	if i < len(salaries) {
		salary = salaries[i]
	}
	pensionOnBase := salary.Mul(employeePensionRate)
	combined := rc.TaxCalc.Compute(year, salary.Add(grossValue), employeePensionRate, has30PercentRuling, &pensionOnBase)
	marginalRate = combined.MarginalRate
	taxPaid = grossValue.Mul(marginalRate)
	rc.Logger.Debugf("rsu %d: fallback tax mode, marginal rate %s on gross %s", year, marginalRate.StringFixed(4), grossValue.StringFixed(2))
	return taxPaid, marginalRate
}
