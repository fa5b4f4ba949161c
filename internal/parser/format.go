package parser

import (
	"regexp"
	"strings"
)

// Format identifies one of the known raw-message layouts.
type Format string

const (
	// FormatLabeled messages carry explicit field labels such as
	// "Addr:", "Ph:", "Desc:", "date:" or "Total cash:".
	FormatLabeled Format = "labeled"
	// FormatStandard messages lead with an address line and carry the price
	// as a standalone currency token on its own line.
	FormatStandard Format = "standard"
	// FormatSimple messages only state "Total <channel> <amount>".
	FormatSimple Format = "simple"
	// FormatUnknown means no known layout matched. Callers must surface an
	// explicit failure instead of guessing.
	FormatUnknown Format = "unknown"
)

var (
	labelMarkerPattern = regexp.MustCompile(`(?im)^\s*(?:date|ph(?:one)?|addr(?:ess)?|desc(?:ription)?)\s*:`)
	labeledTotalMarker = regexp.MustCompile(`(?i)total\s*(?:cash|check|cc|credit(?:\s*card)?|card|transfer)?\s*:`)

	// A currency amount alone on a line: "$446" or "446$".
	standalonePricePattern = regexp.MustCompile(`^\s*(?:\$\s*\d[\d,]*(?:\.\d{2})?|\d[\d,]*(?:\.\d{2})?\s*\$)\s*$`)

	// Street-number prefix; comma count is checked separately.
	addressLinePattern = regexp.MustCompile(`^\s*\d+[A-Za-z]?\s+\S`)

	bareTotalPattern = regexp.MustCompile(`(?i)\btotal\b[^\d$\n]*\$?\s*\d`)
)

// Detect classifies raw text into one of the known formats. Ties resolve in
// the order labeled > standard > simple; label markers are unambiguous and
// take priority.
func Detect(text string) Format {
	if labelMarkerPattern.MatchString(text) || labeledTotalMarker.MatchString(text) {
		return FormatLabeled
	}
	if hasStandaloneTotalAfterAddress(text) {
		return FormatStandard
	}
	if bareTotalPattern.MatchString(text) {
		return FormatSimple
	}
	return FormatUnknown
}

// hasStandaloneTotalAfterAddress reports whether the text contains a price
// line (a bare currency token, an amount tagged with a payment channel, or a
// price-with-parts line) preceded by an address-shaped line (street number
// plus comma-separated components).
func hasStandaloneTotalAfterAddress(text string) bool {
	seenAddress := false
	for _, line := range strings.Split(text, "\n") {
		if isAddressLine(line) {
			seenAddress = true
			continue
		}
		if !seenAddress {
			continue
		}
		if standalonePricePattern.MatchString(line) ||
			priceWithChannelPattern.MatchString(line) ||
			priceWithPartsPattern.MatchString(line) {
			return true
		}
	}
	return false
}

// isAddressLine matches a street-number prefix followed by at least two
// comma-separated components, excluding currency and phone lines.
func isAddressLine(line string) bool {
	if !addressLinePattern.MatchString(line) {
		return false
	}
	if strings.Count(line, ",") < 2 {
		return false
	}
	if standalonePricePattern.MatchString(line) {
		return false
	}
	if phonePattern.MatchString(line) {
		return false
	}
	return true
}
