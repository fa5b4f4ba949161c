package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/domain"
)

// Parser turns raw job-closure messages into ParsedJob records. It holds no
// state; parsing the same text twice yields identical results.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse extracts a single ParsedJob from raw text. It detects the message
// format once and dispatches to the per-format extraction sequence. Optional
// fields may be missing from the result; only an unrecognized format or a
// missing total is an error.
func (p *Parser) Parse(text string) (domain.ParsedJob, error) {
	text = strings.TrimSpace(text)
	switch Detect(text) {
	case FormatLabeled:
		return p.parseLabeled(text)
	case FormatStandard:
		return p.parseLines(text)
	case FormatSimple:
		return p.parseLines(text)
	default:
		return domain.ParsedJob{}, domain.ErrFormatUnrecognized
	}
}

// parseLabeled reads field labels anywhere in the text.
func (p *Parser) parseLabeled(text string) (domain.ParsedJob, error) {
	job := domain.ParsedJob{Payment: domain.PaymentCash}

	if addr, ok := ExtractLabeledAddress(text); ok {
		job.Address = addr
	}
	if phone, ok := ExtractPhone(text); ok {
		job.Phone = phone
	}
	if desc, ok := ExtractDescription(text); ok {
		job.Description = desc
	}
	if d, ok := ExtractLabeledDate(text); ok {
		job.Date = &d
	}

	total, method, ok := ExtractTotal(text)
	if !ok {
		return domain.ParsedJob{}, &domain.ParseError{Field: "total", Text: text}
	}
	job.Total = total
	job.Payment = method

	if parts, ok := ExtractParts(text); ok {
		job.Parts = parts
	}
	if fee, ok := ExtractFee(text); ok {
		job.Fee = fee
	}
	if tech, ok := ExtractTechAmount(text); ok {
		job.TechAmount = &tech
	}
	job.TechnicianName = trailingName(text)

	p.flagInvariants(&job)
	return job, nil
}

// parseLines handles the standard and simple layouts, scanning line by line.
func (p *Parser) parseLines(text string) (domain.ParsedJob, error) {
	job := domain.ParsedJob{Payment: domain.PaymentCash}

	if addr, ok := ExtractAddressLine(text); ok {
		job.Address = addr
	}
	if phone, ok := ExtractPhone(text); ok {
		job.Phone = phone
	}
	for _, line := range strings.Split(text, "\n") {
		if d, ok := ExtractDate(line); ok {
			job.Date = &d
			break
		}
	}

	if !p.extractPrice(text, &job) {
		return domain.ParsedJob{}, &domain.ParseError{Field: "total", Text: text}
	}

	if parts, ok := ExtractParts(text); ok {
		job.Parts = parts
	}
	if fee, ok := ExtractFee(text); ok {
		job.Fee = fee
	}
	if tech, ok := ExtractTechAmount(text); ok {
		job.TechAmount = &tech
	}
	job.Description = p.extractDescriptionLines(text, job.Address)
	job.TechnicianName = trailingName(text)

	p.flagInvariants(&job)
	return job, nil
}

// extractPrice locates the job total, trying in order: an explicit
// "Total ..." statement, per-channel amount statements (a split payment when
// more than one channel appears), a price-with-parts line, and finally a
// standalone currency line. Returns false when no price was found.
func (p *Parser) extractPrice(text string, job *domain.ParsedJob) bool {
	if total, method, ok := ExtractTotal(text); ok {
		job.Total = total
		job.Payment = method
		return true
	}

	if amounts := extractChannelAmounts(text); len(amounts) > 0 {
		total := decimal.Zero
		channels := map[domain.PaymentMethod]bool{}
		for _, a := range amounts {
			total = total.Add(a.Amount)
			channels[a.Method] = true
			switch a.Method {
			case domain.PaymentCash:
				job.CashAmount = job.CashAmount.Add(a.Amount)
			case domain.PaymentCC:
				job.CCAmount = job.CCAmount.Add(a.Amount)
			case domain.PaymentCheck, domain.PaymentTransfer:
				job.CheckAmount = job.CheckAmount.Add(a.Amount)
			}
		}
		job.Total = total
		if len(channels) > 1 {
			job.Payment = domain.PaymentSplit
		} else {
			job.Payment = amounts[0].Method
		}
		return true
	}

	if m := priceWithPartsPattern.FindStringSubmatch(text); m != nil {
		if total, ok := parseAmount(m[1]); ok {
			job.Total = total
			job.Payment = domain.PaymentCash
			return true
		}
	}

	if total, ok := ExtractStandalonePrice(text); ok {
		job.Total = total
		job.Payment = domain.PaymentCash
		return true
	}
	return false
}

// extractDescriptionLines collects up to three lines between the address line
// and the first phone, price, parts or job-marker line.
func (p *Parser) extractDescriptionLines(text, address string) string {
	var collected []string
	started := address == ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !started {
			if address != "" && strings.Contains(line, address) {
				started = true
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		if phonePattern.MatchString(line) ||
			alphaJobPattern.MatchString(line) ||
			totalPattern.MatchString(line) ||
			standalonePricePattern.MatchString(line) ||
			priceWithChannelPattern.MatchString(line) ||
			partsPattern.MatchString(line) {
			break
		}
		collected = append(collected, trimmed)
		if len(collected) == 3 {
			break
		}
	}
	return strings.Join(collected, " | ")
}

// flagInvariants records violated invariants on the parsed job without
// correcting them; the caller decides whether to prompt for a fix.
func (p *Parser) flagInvariants(job *domain.ParsedJob) {
	if job.Parts.GreaterThan(job.Total) {
		job.Warnings = append(job.Warnings,
			fmt.Sprintf("parts (%s) exceed total (%s)", job.Parts, job.Total))
	}
	if job.Parts.IsNegative() || job.Total.IsNegative() {
		job.Warnings = append(job.Warnings, "negative amount in message")
	}
}

// nameStopWords are tokens that disqualify a trailing line from being read
// as a technician name.
var nameStopWords = []string{"total", "parts", "part", "cash", "check", "cc", "credit", "card", "transfer", "fee", "tech", "alpha", "job"}

// trailingName reads the last non-empty line as a technician hint when it is
// a short bare-word line free of job keywords and digits.
func trailingName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return ""
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" || strings.ContainsAny(last, "0123456789$:") {
		return ""
	}
	words := strings.Fields(last)
	if len(words) > 3 {
		return ""
	}
	for _, w := range words {
		for _, stop := range nameStopWords {
			if strings.EqualFold(w, stop) {
				return ""
			}
		}
	}
	return last
}
