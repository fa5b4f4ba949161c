package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphalocks/reports-be/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cashJob(total, parts, rate string) domain.Job {
	return domain.Job{
		Address: "36 N Goodwin Ave, Elmsford, NY, 10523",
		Total:   dec(total),
		Parts:   dec(parts),
		Rate:    dec(rate),
		Payment: domain.PaymentCash,
	}
}

func TestCalculate(t *testing.T) {
	calc := New()

	tests := []struct {
		name       string
		job        domain.Job
		techProfit string
		balance    string
	}{
		{
			name:       "cash with parts",
			job:        cashJob("1000", "50", "0.5"),
			techProfit: "475",
			balance:    "475",
		},
		{
			name: "credit card with parts",
			job: domain.Job{
				Total: dec("1000"), Parts: dec("50"), Rate: dec("0.5"),
				Payment: domain.PaymentCC,
			},
			techProfit: "525",
			balance:    "-525",
		},
		{
			name: "check behaves like credit card",
			job: domain.Job{
				Total: dec("850"), Rate: dec("0.5"),
				Payment: domain.PaymentCheck,
			},
			techProfit: "425",
			balance:    "-425",
		},
		{
			name: "transfer is company bound",
			job: domain.Job{
				Total: dec("200"), Rate: dec("0.4"),
				Payment: domain.PaymentTransfer,
			},
			techProfit: "80",
			balance:    "-80",
		},
		{
			name:       "parts equal total is the boundary",
			job:        cashJob("300", "300", "0.5"),
			techProfit: "0",
			balance:    "0",
		},
		{
			name:       "cash rounding stays conservative",
			job:        cashJob("100.01", "0", "0.5"),
			techProfit: "50.01",
			balance:    "50",
		},
		{
			name: "fixed tech amount on cash",
			job: func() domain.Job {
				j := cashJob("500", "50", "0.5")
				ta := dec("120")
				j.TechAmount = &ta
				return j
			}(),
			techProfit: "120",
			balance:    "330",
		},
		{
			name: "fixed tech amount on credit card",
			job: func() domain.Job {
				j := domain.Job{Total: dec("500"), Parts: dec("50"), Rate: dec("0.5"), Payment: domain.PaymentCC}
				ta := dec("120")
				j.TechAmount = &ta
				return j
			}(),
			techProfit: "170",
			balance:    "-170",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Calculate(tt.job)
			require.NoError(t, err)

			assert.True(t, result.TechProfit.Equal(dec(tt.techProfit)),
				"tech profit: want %s got %s", tt.techProfit, result.TechProfit)
			assert.True(t, result.Balance.Equal(dec(tt.balance)),
				"balance: want %s got %s", tt.balance, result.Balance)
		})
	}
}

func TestCalculate_CashConservation(t *testing.T) {
	calc := New()

	// profit + balance must equal total - parts exactly for cash jobs,
	// whatever the rounding did to the individual figures.
	cases := []struct{ total, parts, rate string }{
		{"1000", "50", "0.5"},
		{"100.01", "0", "0.5"},
		{"446", "0", "0.45"},
		{"333.33", "33.33", "0.35"},
		{"510", "0", "0.5"},
	}

	for _, c := range cases {
		result, err := calc.Calculate(cashJob(c.total, c.parts, c.rate))
		require.NoError(t, err)

		net := dec(c.total).Sub(dec(c.parts))
		sum := result.TechProfit.Add(result.Balance)
		assert.True(t, sum.Equal(net),
			"total=%s parts=%s rate=%s: profit %s + balance %s != net %s",
			c.total, c.parts, c.rate, result.TechProfit, result.Balance, net)
	}
}

func TestCalculate_Split(t *testing.T) {
	calc := New()

	job := domain.Job{
		Total: dec("400"), Rate: dec("0.5"),
		Payment:     domain.PaymentSplit,
		CashAmount:  dec("200"),
		CCAmount:    dec("150"),
		CheckAmount: dec("50"),
	}

	result, err := calc.Calculate(job)
	require.NoError(t, err)

	// Tech keeps half of the 400 net; holds 200 cash of which 100 is owed
	// back, while the company owes half of the 200 card/check portion.
	assert.True(t, result.TechProfit.Equal(dec("200")), "got %s", result.TechProfit)
	assert.True(t, result.Balance.Equal(dec("0")), "got %s", result.Balance)
}

func TestCalculate_SplitPartsComeOutOfCash(t *testing.T) {
	calc := New()

	job := domain.Job{
		Total: dec("400"), Parts: dec("40"), Rate: dec("0.5"),
		Payment:    domain.PaymentSplit,
		CashAmount: dec("100"),
		CCAmount:   dec("300"),
	}

	result, err := calc.Calculate(job)
	require.NoError(t, err)

	// Net 360 at 50% plus parts reimbursement.
	assert.True(t, result.TechProfit.Equal(dec("220")), "got %s", result.TechProfit)
	// Cash after parts is 60, tech owes 30; company owes 150 on the card.
	assert.True(t, result.Balance.Equal(dec("-120")), "got %s", result.Balance)
}

func TestCalculate_Errors(t *testing.T) {
	calc := New()

	t.Run("missing total", func(t *testing.T) {
		_, err := calc.Calculate(domain.Job{Payment: domain.PaymentCash, Rate: dec("0.5")})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingTotal)
	})

	t.Run("parts exceed total", func(t *testing.T) {
		_, err := calc.Calculate(cashJob("100", "150", "0.5"))
		require.Error(t, err)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("negative total", func(t *testing.T) {
		_, err := calc.Calculate(cashJob("-10", "0", "0.5"))
		require.Error(t, err)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		job := cashJob("100", "0", "0.5")
		job.Payment = domain.PaymentMethod("bitcoin")
		_, err := calc.Calculate(job)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownPaymentMethod)
	})
}

func TestCalculate_RateOutsideRangeWarns(t *testing.T) {
	calc := New()

	result, err := calc.Calculate(cashJob("100", "0", "1.2"))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "outside [0, 1]")
}

func TestCalculateBatch(t *testing.T) {
	calc := New()

	t.Run("all valid", func(t *testing.T) {
		results, err := calc.CalculateBatch([]domain.Job{
			cashJob("100", "0", "0.5"),
			cashJob("200", "20", "0.5"),
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("fails on first invalid job", func(t *testing.T) {
		_, err := calc.CalculateBatch([]domain.Job{
			cashJob("100", "0", "0.5"),
			cashJob("100", "150", "0.5"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "job 1")
	})
}

func TestSummarize(t *testing.T) {
	calc := New()

	jobs := []domain.Job{cashJob("1000", "50", "0.5"), cashJob("500", "0", "0.5")}
	for i := range jobs {
		jobs[i].NormalizeAmounts()
	}
	results, err := calc.CalculateBatch(jobs)
	require.NoError(t, err)

	s := Summarize(results)
	assert.Equal(t, 2, s.JobCount)
	assert.True(t, s.TotalSales.Equal(dec("1500")), "got %s", s.TotalSales)
	assert.True(t, s.TotalParts.Equal(dec("50")), "got %s", s.TotalParts)
	assert.True(t, s.TotalCash.Equal(dec("1500")), "got %s", s.TotalCash)
	assert.True(t, s.TotalTechProfit.Equal(dec("725")), "got %s", s.TotalTechProfit)
	assert.True(t, s.TotalBalance.Equal(dec("725")), "got %s", s.TotalBalance)
}
