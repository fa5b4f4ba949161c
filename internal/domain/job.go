package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is used when neither the technician nor the input
// carries an explicit rate.
var DefaultCommissionRate = decimal.RequireFromString("0.5")

// ParsedJob is the transient record produced by the message parser. Optional
// fields stay at their zero value when the message does not carry them; the
// parser only fails when Total cannot be located. Warnings carry flagged
// inputs (such as parts exceeding total) without correcting them.
type ParsedJob struct {
	Address     string
	Phone       string // normalized digits only
	Description string
	Date        *Date
	Total       decimal.Decimal
	Parts       decimal.Decimal
	Fee         decimal.Decimal
	Payment     PaymentMethod

	// Split-payment breakdown, populated when the message lists separate
	// cash / card / check amounts.
	CashAmount  decimal.Decimal
	CCAmount    decimal.Decimal
	CheckAmount decimal.Decimal

	// TechAmount is a fixed tech-profit override ("Tech 120" in a message).
	TechAmount *decimal.Decimal

	// TechnicianName is the trailing technician hint, when present.
	TechnicianName string

	Warnings []string
}

// Job is the validated, calculation-ready form of a parsed or imported job.
type Job struct {
	Address     string          `json:"address"`
	Phone       string          `json:"phone,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        Date            `json:"job_date"`
	Total       decimal.Decimal `json:"total"`
	Parts       decimal.Decimal `json:"parts"`
	Payment     PaymentMethod   `json:"payment_method"`
	Rate        decimal.Decimal `json:"commission_rate"`
	Fee         decimal.Decimal `json:"fee"`

	CashAmount  decimal.Decimal `json:"cash_amount"`
	CCAmount    decimal.Decimal `json:"cc_amount"`
	CheckAmount decimal.Decimal `json:"check_amount"`

	TechAmount *decimal.Decimal `json:"tech_amount,omitempty"`
}

// JobFromParsed promotes a user-confirmed ParsedJob into a calculation-ready
// Job. A zero rate falls back to DefaultCommissionRate.
func JobFromParsed(p ParsedJob, rate decimal.Decimal) Job {
	if rate.IsZero() {
		rate = DefaultCommissionRate
	}
	job := Job{
		Address:     p.Address,
		Phone:       p.Phone,
		Description: p.Description,
		Total:       p.Total,
		Parts:       p.Parts,
		Fee:         p.Fee,
		Payment:     p.Payment,
		Rate:        rate,
		CashAmount:  p.CashAmount,
		CCAmount:    p.CCAmount,
		CheckAmount: p.CheckAmount,
		TechAmount:  p.TechAmount,
	}
	if p.Date != nil {
		job.Date = *p.Date
	}
	job.NormalizeAmounts()
	return job
}

// NormalizeAmounts fills the per-channel amount for single-method jobs so
// reports always have a populated payment breakdown.
func (j *Job) NormalizeAmounts() {
	switch j.Payment {
	case PaymentCash:
		if j.CashAmount.IsZero() {
			j.CashAmount = j.Total
		}
	case PaymentCC:
		if j.CCAmount.IsZero() {
			j.CCAmount = j.Total
		}
	case PaymentCheck, PaymentTransfer:
		if j.CheckAmount.IsZero() {
			j.CheckAmount = j.Total
		}
	}
}

// JobResult is a Job plus its computed commission split. It is derived on
// demand and never persisted independently of its source job.
type JobResult struct {
	Job        Job             `json:"job"`
	NetAmount  decimal.Decimal `json:"net_amount"`
	TechProfit decimal.Decimal `json:"tech_profit"`
	Balance    decimal.Decimal `json:"balance"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// TechOwesCompany reports whether the balance flows from the technician to
// the company (positive balance).
func (r JobResult) TechOwesCompany() bool {
	return r.Balance.IsPositive()
}

// StoredJob is the durable record in the job store: the job, its computed
// result and bookkeeping metadata.
type StoredJob struct {
	ID             string `json:"id"`
	TechnicianID   string `json:"technician_id"`
	TechnicianName string `json:"technician_name"`

	Job

	TechProfit decimal.Decimal `json:"tech_profit"`
	Balance    decimal.Decimal `json:"balance"`

	IsPaid   bool   `json:"is_paid"`
	PaidDate string `json:"paid_date,omitempty"` // ISO-8601 datetime
	Notes    string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Technician is referenced by stored jobs by id. Deleting a technician keeps
// historical jobs intact with a dangling reference.
type Technician struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"commission_rate"`
	CreatedAt time.Time       `json:"created_at"`
}
