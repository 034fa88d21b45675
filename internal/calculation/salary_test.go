package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSalaries(t *testing.T) {
	salaries := ProjectSalaries(decimal.NewFromInt(60000), decimal.NewFromFloat(0.03), 4)
	require.Len(t, salaries, 4)

	expected := []float64{60000, 61800, 63654, 65563.62}
	for i, e := range expected {
		diff := salaries[i].Sub(decimal.NewFromFloat(e)).Abs()
		assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)),
			"year %d: expected %.2f, got %s", i, e, salaries[i].StringFixed(2))
	}
}

func TestProjectSalariesZeroGrowth(t *testing.T) {
	salaries := ProjectSalaries(decimal.NewFromInt(50000), decimal.Zero, 3)
	for i, s := range salaries {
		assert.True(t, s.Equal(decimal.NewFromInt(50000)), "year %d changed without growth", i)
	}
}

func TestProjectSalariesEmpty(t *testing.T) {
	assert.Nil(t, ProjectSalaries(decimal.NewFromInt(50000), decimal.Zero, 0))
	assert.Nil(t, ProjectSalaries(decimal.NewFromInt(50000), decimal.Zero, -1))
}

func TestProjectExpenses(t *testing.T) {
	// EUR 2,000/month at 2% inflation.
	expenses := ProjectExpenses(decimal.NewFromInt(2000), decimal.NewFromFloat(0.02), 3)
	require.Len(t, expenses, 3)

	expected := []float64{24000, 24480, 24969.60}
	for i, e := range expected {
		diff := expenses[i].Sub(decimal.NewFromFloat(e)).Abs()
		assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)),
			"year %d: expected %.2f, got %s", i, e, expenses[i].StringFixed(2))
	}
}
