package dto

import (
	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/domain"
)

// ParseMessagesRequest carries raw closure-message text. The text may hold
// several job blocks; each is parsed independently.
type ParseMessagesRequest struct {
	Text           string          `json:"text" binding:"required"`
	TechnicianName string          `json:"technician_name"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// BlockPreview is one parsed block: either a calculated preview or the
// parse error for that block.
type BlockPreview struct {
	Block  string            `json:"block"`
	Result *domain.JobResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// ParseMessagesResponse lists previews in message order
type ParseMessagesResponse struct {
	Results []BlockPreview `json:"results"`
	Parsed  int            `json:"parsed"`
	Failed  int            `json:"failed"`
}
