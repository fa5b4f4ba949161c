package parser

import (
	"strings"

	"github.com/alphalocks/reports-be/internal/domain"
)

// BlockResult pairs one message block with its parse outcome. Err carries the
// explicit failure (unrecognized format, missing total) for that block only;
// other blocks in the same paste still parse.
type BlockResult struct {
	Block string
	Job   domain.ParsedJob
	Err   error
}

// SplitBlocks cuts a paste containing several job-closure messages into
// per-job blocks. Jobs end with an "alpha job" marker; pricing lines that
// follow the marker still belong to the job that just closed.
func SplitBlocks(text string) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var current []string

	flush := func() {
		block := strings.TrimSpace(strings.Join(current, "\n"))
		if block != "" {
			blocks = append(blocks, block)
		}
		current = current[:0]
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		current = append(current, line)
		if !alphaJobPattern.MatchString(line) {
			continue
		}
		// Consume trailing pricing lines belonging to this job.
		for i+1 < len(lines) && isPricingLine(lines[i+1]) {
			i++
			current = append(current, lines[i])
		}
		flush()
	}
	flush()

	if len(blocks) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return blocks
}

// isPricingLine reports whether a line carries only price information (or is
// blank), so it can be attached to the preceding job block.
func isPricingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	return totalPattern.MatchString(line) ||
		standalonePricePattern.MatchString(line) ||
		priceWithChannelPattern.MatchString(line) ||
		priceWithPartsPattern.MatchString(line) ||
		partsPattern.MatchString(line) ||
		feePattern.MatchString(line) ||
		techPattern.MatchString(line)
}

// ParseAll splits a raw paste into blocks and parses each one. The result
// keeps block order; failed blocks report their own error.
func (p *Parser) ParseAll(text string) []BlockResult {
	blocks := SplitBlocks(text)
	results := make([]BlockResult, len(blocks))
	for i, block := range blocks {
		job, err := p.Parse(block)
		results[i] = BlockResult{Block: block, Job: job, Err: err}
	}
	return results
}
