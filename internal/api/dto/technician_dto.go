package dto

import "github.com/shopspring/decimal"

// TechnicianRequest creates or replaces a technician
type TechnicianRequest struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"commission_rate"`
}
