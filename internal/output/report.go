package output

import (
	"time"

	"github.com/nlplan/finance-planner/internal/domain"
)

// Report bundles one projection run with the settings that produced it
// and its dashboard metrics, so an exported document is self-contained.
type Report struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	Settings    *domain.Settings             `json:"settings"`
	Projections *domain.FinancialProjections `json:"projections"`
	Metrics     domain.DashboardMetrics      `json:"metrics"`
}

// NewReport assembles a report from a finished projection run.
func NewReport(settings *domain.Settings, projections *domain.FinancialProjections, metrics domain.DashboardMetrics) *Report {
	return &Report{
		GeneratedAt: time.Now().UTC(),
		Settings:    settings,
		Projections: projections,
		Metrics:     metrics,
	}
}
