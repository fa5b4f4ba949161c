package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/api/dto"
	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/parser"
	"github.com/alphalocks/reports-be/internal/storage"
)

// MessageHandler turns raw closure messages into calculated job previews
type MessageHandler struct {
	logger      *slog.Logger
	pool        *parser.Pool
	calculator  *commission.Calculator
	technicians *storage.TechnicianStore
	defaultRate decimal.Decimal
}

// NewMessageHandler creates a new MessageHandler instance
func NewMessageHandler(deps *Dependencies) *MessageHandler {
	return &MessageHandler{
		logger:      deps.Logger,
		pool:        deps.Pool,
		calculator:  deps.Calculator,
		technicians: deps.Technicians,
		defaultRate: decimal.NewFromFloat(deps.Config.Company.DefaultCommissionRate),
	}
}

// ParseMessages handles POST /api/v1/messages/parse
// Splits the text into job blocks, parses each and previews its commission
// split. Nothing is persisted; confirmation happens through POST /jobs.
func (h *MessageHandler) ParseMessages(c *gin.Context) {
	var req dto.ParseMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is empty"})
		return
	}

	rate := h.resolveRate(req)

	blocks := parser.SplitBlocks(req.Text)
	resp := dto.ParseMessagesResponse{Results: make([]dto.BlockPreview, 0, len(blocks))}
	for _, block := range h.pool.ParseBlocks(c.Request.Context(), blocks) {
		preview := dto.BlockPreview{Block: block.Block}
		if block.Err != nil {
			preview.Error = block.Err.Error()
			resp.Failed++
			resp.Results = append(resp.Results, preview)
			continue
		}

		blockRate := rate
		if name := block.Job.TechnicianName; name != "" && req.CommissionRate.IsZero() {
			if tech, err := h.technicians.GetByName(name); err == nil {
				blockRate = tech.Rate
			}
		}

		job := domain.JobFromParsed(block.Job, blockRate)
		result, err := h.calculator.Calculate(job)
		if err != nil {
			preview.Error = err.Error()
			resp.Failed++
			resp.Results = append(resp.Results, preview)
			continue
		}
		preview.Result = &result
		resp.Parsed++
		resp.Results = append(resp.Results, preview)
	}

	h.logger.Info("messages parsed",
		slog.Int("blocks", len(blocks)),
		slog.Int("parsed", resp.Parsed),
		slog.Int("failed", resp.Failed),
	)
	c.JSON(http.StatusOK, resp)
}

// resolveRate picks the preview rate: an explicit request rate wins, then the
// named technician's stored rate, then the configured default.
func (h *MessageHandler) resolveRate(req dto.ParseMessagesRequest) decimal.Decimal {
	if !req.CommissionRate.IsZero() {
		return req.CommissionRate
	}
	if req.TechnicianName != "" {
		if tech, err := h.technicians.GetByName(req.TechnicianName); err == nil {
			return tech.Rate
		}
	}
	return h.defaultRate
}
