package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphalocks/reports-be/internal/domain"
)

func TestParse_Labeled(t *testing.T) {
	p := New()

	text := "date:1/5/26\nPh: 9175003599\nAddr: 36 N Goodwin Ave, Elmsford, NY, 10523\nDesc: Home Lockout\n\nTotal cash:510$"
	job, err := p.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, "36 N Goodwin Ave, Elmsford, NY, 10523", job.Address)
	assert.Equal(t, "9175003599", job.Phone)
	assert.Equal(t, "Home Lockout", job.Description)
	require.NotNil(t, job.Date)
	assert.Equal(t, "2026-01-05", job.Date.String())
	assert.True(t, job.Total.Equal(decimal.NewFromInt(510)), "got %s", job.Total)
	assert.Equal(t, domain.PaymentCash, job.Payment)
	assert.True(t, job.Parts.IsZero())
	assert.Empty(t, job.Warnings)
}

func TestParse_Standard(t *testing.T) {
	p := New()

	text := "1/2/26\n123 Main St, Queens, NY, 11385\nBroken key extraction\n3477980721\n$446\nAlpha job\nKevin"
	job, err := p.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, "123 Main St, Queens, NY, 11385", job.Address)
	assert.Equal(t, "3477980721", job.Phone)
	assert.Equal(t, "Broken key extraction", job.Description)
	require.NotNil(t, job.Date)
	assert.Equal(t, "2026-01-02", job.Date.String())
	assert.True(t, job.Total.Equal(decimal.NewFromInt(446)), "got %s", job.Total)
	assert.Equal(t, domain.PaymentCash, job.Payment)
	assert.Equal(t, "Kevin", job.TechnicianName)
}

func TestParse_TrailingChannelTotal(t *testing.T) {
	p := New()

	// The channel token may follow the amount; the job must not settle as cash.
	job, err := p.Parse("Customer lockout job total 150 check")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCheck, job.Payment)
	assert.True(t, job.Total.Equal(decimal.NewFromInt(150)), "got %s", job.Total)

	job, err = p.Parse("Total: 150 in check")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCheck, job.Payment)
	assert.True(t, job.Total.Equal(decimal.NewFromInt(150)), "got %s", job.Total)
}

func TestParse_StandardSplitPayment(t *testing.T) {
	p := New()

	text := "123 Main St, Queens, NY, 11385\n200 cash\n150 with the credit card\n50 check"
	job, err := p.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentSplit, job.Payment)
	assert.True(t, job.Total.Equal(decimal.NewFromInt(400)), "got %s", job.Total)
	assert.True(t, job.CashAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, job.CCAmount.Equal(decimal.NewFromInt(150)))
	assert.True(t, job.CheckAmount.Equal(decimal.NewFromInt(50)))
}

func TestParse_StandardPriceWithParts(t *testing.T) {
	p := New()

	text := "123 Main St, Queens, NY, 11385\n$325 parts $10"
	job, err := p.Parse(text)
	require.NoError(t, err)

	assert.True(t, job.Total.Equal(decimal.NewFromInt(325)), "got %s", job.Total)
	assert.True(t, job.Parts.Equal(decimal.NewFromInt(10)), "got %s", job.Parts)
	assert.Equal(t, domain.PaymentCash, job.Payment)
}

func TestParse_Simple(t *testing.T) {
	p := New()

	job, err := p.Parse("Customer lockout job total 150 cash")
	require.NoError(t, err)

	assert.True(t, job.Total.Equal(decimal.NewFromInt(150)), "got %s", job.Total)
	assert.Equal(t, domain.PaymentCash, job.Payment)
	assert.Empty(t, job.Address)
}

func TestParse_FeeAndTechOverride(t *testing.T) {
	p := New()

	job, err := p.Parse("Total cash: 500\nParts 50\nFEE 15\nTech 120")
	require.NoError(t, err)

	assert.True(t, job.Parts.Equal(decimal.NewFromInt(50)))
	assert.True(t, job.Fee.Equal(decimal.NewFromInt(15)))
	require.NotNil(t, job.TechAmount)
	assert.True(t, job.TechAmount.Equal(decimal.NewFromInt(120)))
}

func TestParse_PartsExceedTotalWarns(t *testing.T) {
	p := New()

	job, err := p.Parse("Total cash: 100\nParts 150")
	require.NoError(t, err)

	assert.True(t, job.Parts.Equal(decimal.NewFromInt(150)))
	require.Len(t, job.Warnings, 1)
	assert.Contains(t, job.Warnings[0], "exceed total")
}

func TestParse_UnknownFormat(t *testing.T) {
	p := New()

	_, err := p.Parse("see you tomorrow at the shop")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormatUnrecognized)
}

func TestParse_MissingTotal(t *testing.T) {
	p := New()

	_, err := p.Parse("Addr: 36 N Goodwin Ave, Elmsford, NY, 10523\nDesc: Lockout")
	require.Error(t, err)

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "total", parseErr.Field)
}

func TestParse_Idempotent(t *testing.T) {
	p := New()

	text := "date:1/5/26\nAddr: 36 N Goodwin Ave, Elmsford, NY, 10523\nTotal cash:510$"
	first, err := p.Parse(text)
	require.NoError(t, err)
	second, err := p.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTrailingName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare name", "job line\nKevin", "Kevin"},
		{"two words", "job line\nKevin M", "Kevin M"},
		{"digits disqualify", "job line\nKevin 2", ""},
		{"keyword disqualifies", "job line\nTotal cash", ""},
		{"too many words", "job line\nsee you next week friend", ""},
		{"single line has no name", "Kevin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trailingName(tt.text))
		})
	}
}
