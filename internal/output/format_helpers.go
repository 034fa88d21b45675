package output

import (
	"github.com/shopspring/decimal"

	money "github.com/nlplan/finance-planner/pkg/decimal"
)

// FormatCurrency formats a decimal as EUR currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a rate fraction as a percentage with 2 decimals.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
