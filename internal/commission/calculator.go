package commission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/domain"
)

// Calculator derives the technician/company split for jobs.
//
// When the customer pays cash, the technician keeps the parts cost plus their
// commission share of (total - parts) and remits the rest. When the payment is
// company-bound (credit card, check, transfer), the company owes the
// technician the commission share plus the parts cost.
//
// All arithmetic is exact decimal; results are rounded half-up to two
// fractional digits at the final step only, never in between.
type Calculator struct{}

func New() *Calculator {
	return &Calculator{}
}

var one = decimal.NewFromInt(1)

// Calculate computes the commission split for a single job.
//
// Failure modes: a missing (zero) total, parts exceeding total or negative
// amounts, and an unrecognized payment method. Parts equal to total is the
// boundary, not a violation. A commission rate outside [0, 1] is accepted but
// flagged on the result, since some contractual terms exceed it.
func (c *Calculator) Calculate(job domain.Job) (domain.JobResult, error) {
	if job.Total.IsZero() {
		return domain.JobResult{}, fmt.Errorf("job %q: %w", job.Address, domain.ErrMissingTotal)
	}
	if job.Total.IsNegative() || job.Parts.IsNegative() {
		return domain.JobResult{}, &domain.ValidationError{
			Reason: fmt.Sprintf("negative amount: total=%s parts=%s", job.Total, job.Parts),
		}
	}
	if job.Parts.GreaterThan(job.Total) {
		return domain.JobResult{}, &domain.ValidationError{
			Reason: fmt.Sprintf("parts (%s) exceed total (%s)", job.Parts, job.Total),
		}
	}

	switch job.Payment {
	case domain.PaymentCash, domain.PaymentCC, domain.PaymentCheck, domain.PaymentTransfer, domain.PaymentSplit:
	default:
		return domain.JobResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownPaymentMethod, job.Payment)
	}

	result := domain.JobResult{
		Job:       job,
		NetAmount: job.Total.Sub(job.Parts),
	}
	if job.Rate.IsNegative() || job.Rate.GreaterThan(one) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("commission rate %s outside [0, 1]", job.Rate))
	}

	switch {
	case job.Payment == domain.PaymentSplit:
		c.calculateSplit(&result)
	case job.TechAmount != nil:
		c.calculateFixed(&result)
	case job.Payment.IsCompanyBound():
		// Company received the payment and reimburses parts on top of the
		// commission; the negative balance signals the direction.
		result.TechProfit = result.NetAmount.Mul(job.Rate).Add(job.Parts).Round(2)
		result.Balance = result.TechProfit.Neg()
	default:
		// Cash: the technician already holds the money. Rounding the profit
		// first keeps profit + balance exactly equal to total - parts.
		result.TechProfit = result.NetAmount.Mul(job.Rate).Round(2)
		result.Balance = result.NetAmount.Sub(result.TechProfit)
	}
	return result, nil
}

// calculateFixed applies a fixed tech-amount override instead of the rate.
func (c *Calculator) calculateFixed(result *domain.JobResult) {
	job := result.Job
	techAmount := (*job.TechAmount).Round(2)
	if job.Payment.IsCompanyBound() {
		result.TechProfit = techAmount.Add(job.Parts)
		result.Balance = result.TechProfit.Neg()
		return
	}
	result.TechProfit = techAmount
	result.Balance = result.NetAmount.Sub(techAmount)
}

// calculateSplit settles a mixed cash + company-bound payment. Parts come out
// of the cash first; the technician keeps their share of the remaining cash
// while the company owes the share of the card/check portion. The two flows
// net into a single balance.
func (c *Calculator) calculateSplit(result *domain.JobResult) {
	job := result.Job
	companyAmount := job.CCAmount.Add(job.CheckAmount)

	if job.TechAmount != nil {
		owed := (*job.TechAmount).Add(job.Parts)
		keepsFromCash := decimal.Min(job.CashAmount, owed)
		owesFromCash := job.CashAmount.Sub(keepsFromCash)
		companyOwes := decimal.Max(decimal.Zero, owed.Sub(job.CashAmount))
		result.TechProfit = owed.Round(2)
		result.Balance = owesFromCash.Sub(companyOwes).Round(2)
		return
	}

	result.TechProfit = result.NetAmount.Mul(job.Rate).Add(job.Parts).Round(2)

	cashAfterParts := job.CashAmount.Sub(job.Parts)
	owesFromCash := decimal.Zero
	if cashAfterParts.IsPositive() {
		owesFromCash = cashAfterParts.Sub(cashAfterParts.Mul(job.Rate))
	}
	companyOwes := companyAmount.Mul(job.Rate)
	result.Balance = owesFromCash.Sub(companyOwes).Round(2)
}

// CalculateBatch computes results for a slice of jobs, failing on the first
// invalid job.
func (c *Calculator) CalculateBatch(jobs []domain.Job) ([]domain.JobResult, error) {
	results := make([]domain.JobResult, 0, len(jobs))
	for i, job := range jobs {
		result, err := c.Calculate(job)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Summary holds the report footer totals for a set of job results.
type Summary struct {
	JobCount        int
	TotalSales      decimal.Decimal
	TotalParts      decimal.Decimal
	TotalCash       decimal.Decimal
	TotalCC         decimal.Decimal
	TotalCheck      decimal.Decimal
	TotalFee        decimal.Decimal
	TotalTechProfit decimal.Decimal
	TotalBalance    decimal.Decimal
}

// Summarize totals a list of results.
func Summarize(results []domain.JobResult) Summary {
	s := Summary{JobCount: len(results)}
	for _, r := range results {
		s.TotalSales = s.TotalSales.Add(r.Job.Total)
		s.TotalParts = s.TotalParts.Add(r.Job.Parts)
		s.TotalCash = s.TotalCash.Add(r.Job.CashAmount)
		s.TotalCC = s.TotalCC.Add(r.Job.CCAmount)
		s.TotalCheck = s.TotalCheck.Add(r.Job.CheckAmount)
		s.TotalFee = s.TotalFee.Add(r.Job.Fee)
		s.TotalTechProfit = s.TotalTechProfit.Add(r.TechProfit)
		s.TotalBalance = s.TotalBalance.Add(r.Balance)
	}
	return s
}
