package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one progressive income-tax bracket. Max is nil for the
// final, unbounded bracket.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// SocialContribution is a flat-rate national insurance contribution
// applied to taxable income up to a ceiling.
type SocialContribution struct {
	Name    string          `yaml:"name" json:"name"`
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`
	Ceiling decimal.Decimal `yaml:"ceiling" json:"ceiling"`
}

// GeneralCreditConfig holds the algemene heffingskorting constants: the
// full credit applies below PhaseOutStart and is reduced linearly by
// PhaseOutRate of the income above it, reaching zero at PhaseOutEnd.
type GeneralCreditConfig struct {
	Max           decimal.Decimal `yaml:"max" json:"max"`
	PhaseOutStart decimal.Decimal `yaml:"phase_out_start" json:"phase_out_start"`
	PhaseOutRate  decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
	PhaseOutEnd   decimal.Decimal `yaml:"phase_out_end" json:"phase_out_end"`
}

// LabourCreditConfig holds the arbeidskorting piecewise-linear segments:
// three build-up segments followed by a linear phase-out to zero. All
// boundaries are gross-income thresholds.
type LabourCreditConfig struct {
	// Build-up segment 1: Rate1 of gross income up to Threshold1.
	Threshold1 decimal.Decimal `yaml:"threshold_1" json:"threshold_1"`
	Rate1      decimal.Decimal `yaml:"rate_1" json:"rate_1"`
	// Build-up segment 2: Base2 plus Rate2 of the excess over Threshold1,
	// up to Threshold2.
	Base2      decimal.Decimal `yaml:"base_2" json:"base_2"`
	Threshold2 decimal.Decimal `yaml:"threshold_2" json:"threshold_2"`
	Rate2      decimal.Decimal `yaml:"rate_2" json:"rate_2"`
	// Build-up segment 3: Base3 plus Rate3 of the excess over Threshold2,
	// up to Threshold3, where the credit reaches Max.
	Base3      decimal.Decimal `yaml:"base_3" json:"base_3"`
	Threshold3 decimal.Decimal `yaml:"threshold_3" json:"threshold_3"`
	Rate3      decimal.Decimal `yaml:"rate_3" json:"rate_3"`
	// Phase-out: Max reduced by PhaseOutRate of the excess over
	// Threshold3, floored at zero.
	Max          decimal.Decimal `yaml:"max" json:"max"`
	PhaseOutRate decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
}

// TaxRules is the versioned static reference data for one tax year. The
// bracket list must cover the full income line from zero with no gaps.
type TaxRules struct {
	Version             string               `yaml:"version" json:"version"`
	Brackets            []TaxBracket         `yaml:"brackets" json:"brackets"`
	SocialContributions []SocialContribution `yaml:"social_contributions" json:"social_contributions"`
	GeneralCredit       GeneralCreditConfig  `yaml:"general_credit" json:"general_credit"`
	LabourCredit        LabourCreditConfig   `yaml:"labour_credit" json:"labour_credit"`

	// RulingExemptRate is the income fraction exempted under the 30%
	// expatriate ruling.
	RulingExemptRate decimal.Decimal `yaml:"ruling_exempt_rate" json:"ruling_exempt_rate"`
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// NewTaxRulesNL2025 returns the fixed Dutch 2025 tax table used by
// default: three income brackets (9.42% / 37.07% / 49.5%), the 27.65%
// national insurance contribution below EUR 35,472, the EUR 2,888
// general credit and the EUR 4,260 labour credit.
func NewTaxRulesNL2025() *TaxRules {
	return &TaxRules{
		Version: "NL2025",
		Brackets: []TaxBracket{
			{Min: decimal.Zero, Max: decPtr(35472), Rate: dec(0.0942)},
			{Min: dec(35472), Max: decPtr(69398), Rate: dec(0.3707)},
			{Min: dec(69398), Max: nil, Rate: dec(0.495)},
		},
		SocialContributions: []SocialContribution{
			{Name: "volksverzekeringen", Rate: dec(0.2765), Ceiling: dec(35472)},
		},
		GeneralCredit: GeneralCreditConfig{
			Max:           dec(2888),
			PhaseOutStart: dec(21317),
			PhaseOutRate:  dec(0.06007),
			PhaseOutEnd:   dec(69398),
		},
		LabourCredit: LabourCreditConfig{
			Threshold1:   dec(10351),
			Rate1:        dec(0.04541),
			Base2:        dec(470),
			Threshold2:   dec(22357),
			Rate2:        dec(0.28461),
			Base3:        dec(3887),
			Threshold3:   dec(36650),
			Rate3:        dec(0.02610),
			Max:          dec(4260),
			PhaseOutRate: dec(0.0586),
		},
		RulingExemptRate: dec(0.30),
	}
}
