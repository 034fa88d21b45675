package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nlplan/finance-planner/internal/domain"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Box 1 brackets: the fixed 2025 table is applied to all projection
//    years. No inflation indexing of bracket thresholds.
//
// 2. Social contributions (volksverzekeringen): flat rate on taxable
//    income up to the contribution ceiling.
//
// 3. Pension contributions are deducted before bracket tax and are
//    computed on base salary only. Callers submitting a gross figure
//    that includes bonus, holiday allowance or RSU income must pass the
//    base-salary pension amount as an override.
//
// 4. The 30% ruling exempts a fixed fraction of income from taxation;
//    it does not reduce the pension contribution.

// DutchTaxCalculator computes Dutch box-1 income tax, social
// contributions and tax credits for a single year's income.
type DutchTaxCalculator struct {
	Rules *domain.TaxRules
}

// NewDutchTaxCalculator2025 creates a tax calculator with the built-in
// 2025 Dutch tax rules.
func NewDutchTaxCalculator2025() *DutchTaxCalculator {
	return &DutchTaxCalculator{Rules: domain.NewTaxRulesNL2025()}
}

// NewDutchTaxCalculatorWithRules creates a tax calculator with a custom
// rule set. A nil rule set falls back to the 2025 defaults.
func NewDutchTaxCalculatorWithRules(rules *domain.TaxRules) *DutchTaxCalculator {
	if rules == nil {
		rules = domain.NewTaxRulesNL2025()
	}
	return &DutchTaxCalculator{Rules: rules}
}

// Compute runs the full tax calculation for one year.
//
// grossIncome is the taxable cash package for the year. When it includes
// non-pensionable components (bonus, holiday allowance, RSU income) the
// caller must pass pensionOverride with the contribution computed on
// base salary alone; otherwise the contribution defaults to
// grossIncome * employeePensionRate.
func (tc *DutchTaxCalculator) Compute(year int, grossIncome, employeePensionRate decimal.Decimal, has30PercentRuling bool, pensionOverride *decimal.Decimal) domain.TaxResult {
	pension := grossIncome.Mul(employeePensionRate)
	if pensionOverride != nil {
		pension = *pensionOverride
	}

	taxable := grossIncome.Sub(pension)
	if has30PercentRuling {
		taxable = taxable.Mul(decimal.NewFromInt(1).Sub(tc.Rules.RulingExemptRate))
	}

	incomeTax := tc.bracketTax(taxable)
	social := tc.socialContributions(taxable)
	generalCredit := tc.generalCredit(taxable)
	labourCredit := tc.labourCredit(grossIncome)

	beforeCredits := incomeTax.Add(social)

	// Credits may not push total deductions below the mandatory pension
	// contribution.
	afterCredits := beforeCredits.Sub(generalCredit).Sub(labourCredit)
	if afterCredits.LessThan(pension) {
		afterCredits = pension
	}

	totalTax := afterCredits.Add(pension)
	netIncome := grossIncome.Sub(totalTax)

	effectiveRate := decimal.Zero
	if grossIncome.GreaterThan(decimal.Zero) {
		effectiveRate = totalTax.Div(grossIncome)
	}

	return domain.TaxResult{
		Year:                year,
		GrossIncome:         grossIncome,
		TaxableIncome:       taxable,
		IncomeTax:           incomeTax,
		SocialContributions: social,
		PensionContribution: pension,
		GeneralCredit:       generalCredit,
		LabourCredit:        labourCredit,
		TaxBeforeCredits:    beforeCredits,
		TaxAfterCredits:     afterCredits,
		TotalTax:            totalTax,
		NetIncome:           netIncome,
		EffectiveRate:       effectiveRate,
		MarginalRate:        tc.MarginalRate(taxable),
	}
}

// bracketTax applies the progressive bracket table to taxable income.
// The final bracket has no upper bound.
func (tc *DutchTaxCalculator) bracketTax(taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range tc.Rules.Brackets {
		if taxable.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxable
		if b.Max != nil && upper.GreaterThan(*b.Max) {
			upper = *b.Max
		}
		portion := upper.Sub(b.Min)
		if portion.GreaterThan(decimal.Zero) {
			tax = tax.Add(portion.Mul(b.Rate))
		}
	}
	return tax
}

// socialContributions applies each contribution rule up to its ceiling.
func (tc *DutchTaxCalculator) socialContributions(taxable decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	if taxable.LessThanOrEqual(decimal.Zero) {
		return total
	}
	for _, sc := range tc.Rules.SocialContributions {
		base := decimal.Min(taxable, sc.Ceiling)
		total = total.Add(base.Mul(sc.Rate))
	}
	return total
}

// generalCredit computes the algemene heffingskorting: the full amount
// below the phase-out start, then linearly reduced, never negative.
func (tc *DutchTaxCalculator) generalCredit(taxable decimal.Decimal) decimal.Decimal {
	cfg := tc.Rules.GeneralCredit
	if taxable.LessThanOrEqual(cfg.PhaseOutStart) {
		return cfg.Max
	}
	if taxable.GreaterThanOrEqual(cfg.PhaseOutEnd) {
		return decimal.Zero
	}
	credit := cfg.Max.Sub(taxable.Sub(cfg.PhaseOutStart).Mul(cfg.PhaseOutRate))
	if credit.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return credit
}

// labourCredit computes the arbeidskorting, a four-segment
// piecewise-linear function of gross income (not taxable income).
func (tc *DutchTaxCalculator) labourCredit(gross decimal.Decimal) decimal.Decimal {
	cfg := tc.Rules.LabourCredit
	if gross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var credit decimal.Decimal
	switch {
	case gross.LessThanOrEqual(cfg.Threshold1):
		credit = gross.Mul(cfg.Rate1)
	case gross.LessThanOrEqual(cfg.Threshold2):
		credit = cfg.Base2.Add(gross.Sub(cfg.Threshold1).Mul(cfg.Rate2))
	case gross.LessThanOrEqual(cfg.Threshold3):
		credit = cfg.Base3.Add(gross.Sub(cfg.Threshold2).Mul(cfg.Rate3))
	default:
		credit = cfg.Max.Sub(gross.Sub(cfg.Threshold3).Mul(cfg.PhaseOutRate))
	}

	if credit.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if credit.GreaterThan(cfg.Max) {
		return cfg.Max
	}
	return credit
}

// MarginalRate returns the tax rate on the next unit of taxable income:
// the rate of the bracket containing the income plus every social
// contribution whose ceiling has not yet been reached. Used downstream
// to estimate tax on incremental RSU income in fallback mode.
func (tc *DutchTaxCalculator) MarginalRate(taxable decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, b := range tc.Rules.Brackets {
		if taxable.GreaterThanOrEqual(b.Min) && (b.Max == nil || taxable.LessThan(*b.Max)) {
			rate = b.Rate
			break
		}
	}
	for _, sc := range tc.Rules.SocialContributions {
		if taxable.LessThan(sc.Ceiling) {
			rate = rate.Add(sc.Rate)
		}
	}
	return rate
}
