package domain

import (
	"fmt"
	"strings"
)

// PaymentMethod identifies how the customer paid for a job.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCC       PaymentMethod = "cc"
	PaymentCheck    PaymentMethod = "check"
	PaymentTransfer PaymentMethod = "transfer"
	// PaymentSplit marks a mixed payment (cash plus a company-bound channel).
	PaymentSplit PaymentMethod = "split"
)

// companyBound lists the methods where funds land with the company first,
// as opposed to cash collected directly by the technician.
var companyBound = map[PaymentMethod]bool{
	PaymentCC:       true,
	PaymentCheck:    true,
	PaymentTransfer: true,
}

// ParsePaymentMethod converts a raw string into a PaymentMethod.
// Unrecognized values fail with ErrUnknownPaymentMethod; there is no
// silent default.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCC, "credit", "credit card":
		return PaymentCC, nil
	case PaymentCheck:
		return PaymentCheck, nil
	case PaymentTransfer:
		return PaymentTransfer, nil
	case PaymentSplit:
		return PaymentSplit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
	}
}

// IsCompanyBound reports whether the payment goes to the company rather
// than being collected by the technician.
func (m PaymentMethod) IsCompanyBound() bool {
	return companyBound[m]
}

// Label returns the human-readable name used on reports.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCC:
		return "Credit Card"
	case PaymentCheck:
		return "Check"
	case PaymentTransfer:
		return "Bank Transfer"
	case PaymentSplit:
		return "Split (Cash + Card)"
	default:
		return string(m)
	}
}
