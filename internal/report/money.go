package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/domain"
)

// formatMoney renders "$1,234.50"; zero values render empty unless showZero
// is set, so report cells read as "not applicable" rather than $0.00.
func formatMoney(d decimal.Decimal, showZero bool) string {
	if d.IsZero() && !showZero {
		return ""
	}
	if d.IsNegative() {
		return "-$" + groupThousands(d.Neg().StringFixed(2))
	}
	return "$" + groupThousands(d.StringFixed(2))
}

func groupThousands(s string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// formatPercent renders a 0-1 fraction as "50%", or "Custom" when the job
// carries a fixed tech-amount override.
func formatPercent(job domain.Job) string {
	if job.TechAmount != nil {
		return "Custom"
	}
	return job.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// dateRange returns the earliest and latest job dates among the results.
func dateRange(results []domain.JobResult) (domain.Date, domain.Date) {
	var from, to domain.Date
	for _, r := range results {
		d := r.Job.Date
		if d.IsZero() {
			continue
		}
		if from.IsZero() || d.Before(from.Time) {
			from = d
		}
		if to.IsZero() || d.After(to.Time) {
			to = d
		}
	}
	return from, to
}
