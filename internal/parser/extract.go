package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/domain"
)

// Field extractors are pure functions from raw text (or a single line) to an
// optional value. Absence is an explicit (zero, false) outcome; extractors
// never fail.

var (
	phonePattern = regexp.MustCompile(`\+?1?\s*\(?\d{3}\)?[\s\-]*\d{3}[\s\-]*\d{4}`)
	digitRun     = regexp.MustCompile(`\d+`)

	phoneLabelPattern = regexp.MustCompile(`(?im)^\s*ph(?:one)?\s*:\s*(.+)$`)
	addrLabelPattern  = regexp.MustCompile(`(?im)^\s*addr(?:ess)?\s*:\s*(.+)$`)
	descLabelPattern  = regexp.MustCompile(`(?im)^\s*desc(?:ription)?\s*:\s*(.+)$`)
	dateLabelPattern  = regexp.MustCompile(`(?im)^\s*date\s*:\s*(.+)$`)

	amountToken = `\$?\s*(\d[\d,]*(?:\.\d{2})?)\s*\$?`

	// "Total cash 510", "Total cash:510$", "Total: $510", "Total check 850".
	// The channel token may also trail the amount: "total 150 check",
	// "Total: 150 in check".
	totalPattern = regexp.MustCompile(`(?i)total\s*(cash|check|cc|credit(?:\s*card)?|card|transfer)?\s*:?\s*` + amountToken + `(?:[ \t]*(?:in[ \t]+|with[ \t]+(?:the[ \t]+)?)?(cash|credit\s*card|credit|card|cc|check|transfer)\b)?`)

	// "200 cash", "150 with the credit card", "$300 in check".
	priceWithChannelPattern = regexp.MustCompile(`(?i)` + amountToken + `\s*(?:in\s+|with\s+(?:the\s+)?)?(cash|credit\s*card|credit|card|cc|check|transfer)\b`)

	// "$325 parts $10" - price and parts on the same line.
	priceWithPartsPattern = regexp.MustCompile(`(?i)\$(\d[\d,]*(?:\.\d{2})?)\s*parts?\s*\$?(\d[\d,]*(?:\.\d{2})?)`)

	partsPattern = regexp.MustCompile(`(?i)\bparts?\s*:?\s*\$?\s*(\d[\d,]*(?:\.\d{2})?)`)
	feePattern   = regexp.MustCompile(`(?i)\bfee\s*:?\s*\$?\s*(\d[\d,]*(?:\.\d{2})?)`)
	techPattern  = regexp.MustCompile(`(?i)\btech\s*:?\s*\$?\s*(\d[\d,]*(?:\.\d{2})?)`)

	alphaJobPattern = regexp.MustCompile(`(?i)alpha\s*job`)

	dateLayouts = []string{"1/2/06", "1/2/2006", "2006-01-02", "20060102"}
)

// ExtractPhone finds a phone number in text, preferring a "Ph:"-labeled line,
// and normalizes it to a digits-only string of 7-11 digits.
func ExtractPhone(text string) (string, bool) {
	if m := phoneLabelPattern.FindStringSubmatch(text); m != nil {
		if pm := phonePattern.FindString(m[1]); pm != "" {
			if digits, ok := normalizePhone(pm); ok {
				return digits, true
			}
		}
		if digits, ok := normalizePhone(m[1]); ok {
			return digits, true
		}
	}
	if m := phonePattern.FindString(text); m != "" {
		return normalizePhone(m)
	}
	return "", false
}

func normalizePhone(s string) (string, bool) {
	digits := strings.Join(digitRun.FindAllString(s, -1), "")
	if len(digits) < 7 || len(digits) > 11 {
		return "", false
	}
	return digits, true
}

// ExtractLabeledAddress returns the remainder of an "Addr:" line verbatim.
func ExtractLabeledAddress(text string) (string, bool) {
	if m := addrLabelPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// ExtractAddressLine scans line by line for the first address-shaped line:
// a street-number prefix followed by comma-separated components, that is not
// itself a currency or phone line.
func ExtractAddressLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if isAddressLine(line) {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

// ExtractDate parses a date token in M/D/YY, M/D/YYYY, YYYY-MM-DD or
// compact YYYYMMDD form. An unparseable string is simply "not found".
func ExtractDate(s string) (domain.Date, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), true
		}
	}
	return domain.Date{}, false
}

// ExtractLabeledDate reads the "date:" line and parses its value.
func ExtractLabeledDate(text string) (domain.Date, bool) {
	if m := dateLabelPattern.FindStringSubmatch(text); m != nil {
		return ExtractDate(m[1])
	}
	return domain.Date{}, false
}

// ExtractDescription returns the remainder of a "Desc:" line.
func ExtractDescription(text string) (string, bool) {
	if m := descLabelPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// parseAmount converts a currency token into an exact decimal, stripping the
// dollar sign and thousands separators.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ExtractTotal finds a "Total <channel> <amount>" statement and returns the
// amount together with the payment method named by the label. The channel
// token may precede or trail the amount; when both appear the leading label
// wins. An absent channel defaults to cash.
func ExtractTotal(text string) (decimal.Decimal, domain.PaymentMethod, bool) {
	m := totalPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, "", false
	}
	amount, ok := parseAmount(m[2])
	if !ok {
		return decimal.Zero, "", false
	}
	channel := m[1]
	if channel == "" {
		channel = m[3]
	}
	return amount, channelMethod(channel), true
}

// ExtractStandalonePrice finds a currency token alone on a line ("$446" or
// "446$").
func ExtractStandalonePrice(text string) (decimal.Decimal, bool) {
	for _, line := range strings.Split(text, "\n") {
		if !standalonePricePattern.MatchString(line) {
			continue
		}
		if amount, ok := parseAmount(line); ok {
			return amount, true
		}
	}
	return decimal.Zero, false
}

// ExtractParts finds the parts cost, preferring the "$325 parts $10" combined
// form over a bare "Parts" label. Missing parts are zero, not an error.
func ExtractParts(text string) (decimal.Decimal, bool) {
	if m := priceWithPartsPattern.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[2]); ok {
			return amount, true
		}
	}
	if m := partsPattern.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1]); ok {
			return amount, true
		}
	}
	return decimal.Zero, false
}

// ExtractFee finds a processing-fee amount ("FEE 15").
func ExtractFee(text string) (decimal.Decimal, bool) {
	if m := feePattern.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	return decimal.Zero, false
}

// ExtractTechAmount finds a fixed tech-profit override ("Tech 120").
func ExtractTechAmount(text string) (decimal.Decimal, bool) {
	if m := techPattern.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	return decimal.Zero, false
}

// channelAmount is one "<amount> <channel>" statement found in a message.
type channelAmount struct {
	Method domain.PaymentMethod
	Amount decimal.Decimal
}

// extractChannelAmounts collects every "<amount> in <channel>" style
// statement. Two or more distinct channels indicate a split payment.
func extractChannelAmounts(text string) []channelAmount {
	var out []channelAmount
	for _, line := range strings.Split(text, "\n") {
		m := priceWithChannelPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		out = append(out, channelAmount{Method: channelMethod(m[2]), Amount: amount})
	}
	return out
}

// channelMethod maps a label token onto the payment method it names.
// Company-bound tokens (cc, check, transfer, "credit card") select that
// channel; anything else defaults to cash.
func channelMethod(token string) domain.PaymentMethod {
	switch strings.ToLower(strings.Join(strings.Fields(token), " ")) {
	case "cc", "credit", "card", "credit card":
		return domain.PaymentCC
	case "check":
		return domain.PaymentCheck
	case "transfer":
		return domain.PaymentTransfer
	default:
		return domain.PaymentCash
	}
}
