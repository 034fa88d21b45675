package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nlplan/finance-planner/internal/domain"
)

// GenerateProjections runs the full yearly pipeline for a settings
// snapshot. The ordering is a correctness contract:
//
//  1. salary and expense series,
//  2. RSU vesting pass 1 (fallback tax mode) for provisional gross values,
//  3. two tax runs per year — cash package with and without RSU income,
//     both with the pension-on-base-salary override,
//  4. RSU vesting pass 2 (exact mode) differencing the two tax series,
//  5. per-year aggregation into financial statements,
//  6. investment and pension balance rolls chained across years.
//
// The two-pass structure is intentional and fixed; it is not an
// iterative solver. Progressive brackets mean RSU income taxed on top of
// salary carries a different marginal burden than salary alone, and the
// run-twice-and-difference approach isolates that burden exactly.
func (e *Engine) GenerateProjections(s *domain.Settings) *domain.FinancialProjections {
	startYear := s.Planning.StartYear
	years := s.Planning.ProjectionYears

	salaries := ProjectSalaries(s.Income.BaseSalary, s.Income.SalaryGrowthRate, years)
	expenses := ProjectExpenses(s.TotalMonthlyExpenses(), s.Planning.ExpenseInflationRate, years)

	// Re-derive the share count on a private copy so a stale shares
	// field in the snapshot can never leak into the schedule.
	grants := make([]domain.RSUGrant, len(s.Grants))
	copy(grants, s.Grants)
	for i := range grants {
		grants[i].DeriveShares()
	}

	rsuPass1 := e.RSUCalc.ComputeVesting(grants, startYear, years,
		salaries, s.Investment.SharePriceGrowthRate, s.Investment.CurrentSharePrice,
		s.Income.EmployeePensionRate, s.Income.Has30PercentRuling, nil, nil)

	taxWithRSU := make([]domain.TaxResult, years)
	taxWithoutRSU := make([]domain.TaxResult, years)
	for i := 0; i < years; i++ {
		year := startYear + i
		base := salaries[i]
		bonus := base.Mul(s.Income.BonusRate)
		holiday := base.Mul(s.Income.HolidayAllowanceRate)
		cashGross := base.Add(bonus).Add(holiday)
		pensionOnBase := base.Mul(s.Income.EmployeePensionRate)

		taxWithoutRSU[i] = e.TaxCalc.Compute(year, cashGross,
			s.Income.EmployeePensionRate, s.Income.Has30PercentRuling, &pensionOnBase)
		taxWithRSU[i] = e.TaxCalc.Compute(year, cashGross.Add(rsuPass1[i].GrossValue),
			s.Income.EmployeePensionRate, s.Income.Has30PercentRuling, &pensionOnBase)
	}

	rsu := e.RSUCalc.ComputeVesting(grants, startYear, years,
		salaries, s.Investment.SharePriceGrowthRate, s.Investment.CurrentSharePrice,
		s.Income.EmployeePensionRate, s.Income.Has30PercentRuling, taxWithRSU, taxWithoutRSU)

	financials := make([]domain.YearlyFinancial, years)
	investContribs := make([]InvestmentContributions, years)
	pensionContribs := make([]PensionContributions, years)

	healthcareAnnual := s.Income.HealthcareBenefitMonthly.Mul(decimal.NewFromInt(12))

	for i := 0; i < years; i++ {
		year := startYear + i
		base := salaries[i]
		bonus := base.Mul(s.Income.BonusRate)
		holiday := base.Mul(s.Income.HolidayAllowanceRate)
		cashGross := base.Add(bonus).Add(holiday)

		totalGross := cashGross.Add(rsu[i].GrossValue)

		// Net cash income comes from the salary-only tax result, which
		// gives the accurate salary/RSU split. If that series were
		// absent the combined result would be split proportionally.
		netCash := splitNetCashIncome(&taxWithoutRSU[i], taxWithRSU[i], cashGross, totalGross)

		netBase, netBonus, netHoliday := splitNetComponents(netCash, base, bonus, holiday, cashGross)

		netSalary := netCash.Add(healthcareAnnual)
		netRSU := rsu[i].NetValue
		totalNet := netSalary.Add(netRSU)

		employeePension := taxWithoutRSU[i].PensionContribution
		employerPension := base.Mul(s.Income.EmployerPensionRate)

		// Employer pension never passes through net income but does
		// grow net worth, so it counts as forced savings.
		netSavings := totalNet.Sub(expenses[i]).Add(employerPension)
		savingsBase := totalNet.Add(employerPension)
		savingsRate := decimal.Zero
		if savingsBase.GreaterThan(decimal.Zero) {
			savingsRate = netSavings.Div(savingsBase)
		}

		effectiveTaxRate := taxWithRSU[i].EffectiveRate

		financials[i] = domain.YearlyFinancial{
			Year:                        year,
			GrossSalary:                 cashGross,
			GrossRSUValue:               rsu[i].GrossValue,
			TotalGrossIncome:            totalGross,
			NetSalary:                   netSalary,
			NetRSUValue:                 netRSU,
			TotalNetIncome:              totalNet,
			EmployeePensionContribution: employeePension,
			EmployerPensionContribution: employerPension,
			TotalExpenses:               expenses[i],
			NetSavings:                  netSavings,
			SavingsRate:                 savingsRate,
			EffectiveTaxRate:            effectiveTaxRate,
		}

		// Liquid contributions: the monthly remainder of the net base
		// salary (plus the tax-free healthcare benefit) after expenses,
		// floored at zero; the invested fractions of net bonus and net
		// holiday allowance; and the full net RSU value.
		savingsRemainder := netBase.Add(healthcareAnnual).Sub(expenses[i])
		if savingsRemainder.LessThan(decimal.Zero) {
			savingsRemainder = decimal.Zero
		}
		investContribs[i] = InvestmentContributions{
			Savings: savingsRemainder,
			Bonus:   netBonus.Mul(s.Investment.BonusInvestedRate),
			Holiday: netHoliday.Mul(s.Investment.HolidayInvestedRate),
			RSU:     netRSU,
		}
		pensionContribs[i] = PensionContributions{
			Employee: employeePension,
			Employer: employerPension,
		}

		e.Logger.Debugf("year %d: gross %s net %s savings %s (rate %s)",
			year, totalGross.StringFixed(2), totalNet.StringFixed(2),
			netSavings.StringFixed(2), savingsRate.StringFixed(4))
	}

	investments := ProjectInvestments(startYear, s.Investment.StartingNetWorth,
		s.Investment.AnnualReturnRate, investContribs)
	pension := ProjectPension(startYear, s.Investment.StartingPensionBalance,
		s.Investment.PensionReturnRate, pensionContribs)

	return &domain.FinancialProjections{
		StartYear:         startYear,
		Years:             years,
		TaxResults:        taxWithoutRSU,
		RSUVestingByYear:  rsu,
		YearlyFinancials:  financials,
		YearlyInvestments: investments,
		YearlyPension:     pension,
	}
}

// splitNetCashIncome extracts the net cash (salary package) income.
// Preferred source is the salary-only tax result; the proportional
// split of the combined result is the degraded fallback.
func splitNetCashIncome(withoutRSU *domain.TaxResult, withRSU domain.TaxResult, cashGross, totalGross decimal.Decimal) decimal.Decimal {
	if withoutRSU != nil {
		return withoutRSU.NetIncome
	}
	if totalGross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return withRSU.NetIncome.Mul(cashGross.Div(totalGross))
}

// splitNetComponents divides net cash income across base salary, bonus
// and holiday allowance proportionally to their gross shares.
func splitNetComponents(netCash, base, bonus, holiday, cashGross decimal.Decimal) (netBase, netBonus, netHoliday decimal.Decimal) {
	if cashGross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	netBase = netCash.Mul(base.Div(cashGross))
	netBonus = netCash.Mul(bonus.Div(cashGross))
	netHoliday = netCash.Mul(holiday.Div(cashGross))
	return netBase, netBonus, netHoliday
}
