package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alphalocks/reports-be/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		showZero bool
		want     string
	}{
		{"plain", "510", false, "$510.00"},
		{"cents", "120.5", false, "$120.50"},
		{"thousands", "1234.5", false, "$1,234.50"},
		{"millions", "1234567.89", false, "$1,234,567.89"},
		{"negative", "-525", false, "-$525.00"},
		{"zero hidden", "0", false, ""},
		{"zero shown", "0", true, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(dec(tt.in), tt.showZero))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	job := domain.Job{Rate: dec("0.5")}
	assert.Equal(t, "50%", formatPercent(job))

	job.Rate = dec("0.45")
	assert.Equal(t, "45%", formatPercent(job))

	ta := dec("120")
	job.TechAmount = &ta
	assert.Equal(t, "Custom", formatPercent(job))
}

func TestDateRange(t *testing.T) {
	results := []domain.JobResult{
		{Job: domain.Job{Date: domain.NewDate(2026, 1, 5)}},
		{Job: domain.Job{}},
		{Job: domain.Job{Date: domain.NewDate(2026, 1, 2)}},
		{Job: domain.Job{Date: domain.NewDate(2026, 1, 20)}},
	}

	from, to := dateRange(results)
	assert.Equal(t, "2026-01-02", from.String())
	assert.Equal(t, "2026-01-20", to.String())

	from, to = dateRange(nil)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}
