package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/report"
	"github.com/alphalocks/reports-be/internal/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler renders stored jobs into commission reports
type ReportHandler struct {
	logger      *slog.Logger
	jobs        *storage.JobStore
	technicians *storage.TechnicianStore
	calculator  *commission.Calculator
	html        *report.HTMLRenderer
	excel       *report.ExcelRenderer
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(deps *Dependencies) *ReportHandler {
	return &ReportHandler{
		logger:      deps.Logger,
		jobs:        deps.Jobs,
		technicians: deps.Technicians,
		calculator:  deps.Calculator,
		html:        deps.HTMLReport,
		excel:       deps.ExcelReport,
	}
}

// HTMLReport handles GET /api/v1/reports/html
// Accepts the same filters as GET /jobs
func (h *ReportHandler) HTMLReport(c *gin.Context) {
	name, results, ok := h.collectResults(c)
	if !ok {
		return
	}

	page, err := h.html.Render(name, results)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// ExcelReport handles GET /api/v1/reports/xlsx
// Accepts the same filters as GET /jobs and streams a workbook attachment
func (h *ReportHandler) ExcelReport(c *gin.Context) {
	name, results, ok := h.collectResults(c)
	if !ok {
		return
	}

	workbook, err := h.excel.Render(name, results)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("commission-report-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, workbook)
}

// collectResults loads filtered jobs and recomputes their commission splits.
// On failure it writes the error response and returns ok=false.
func (h *ReportHandler) collectResults(c *gin.Context) (string, []domain.JobResult, bool) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}

	name := "All Technicians"
	if filter.TechnicianID != "" {
		tech, err := h.technicians.Get(filter.TechnicianID)
		if err != nil {
			respondError(c, h.logger, err)
			return "", nil, false
		}
		name = tech.Name
	}

	jobs, err := h.jobs.ListFiltered(filter)
	if err != nil {
		respondError(c, h.logger, err)
		return "", nil, false
	}

	results := make([]domain.JobResult, 0, len(jobs))
	for _, stored := range jobs {
		result, err := h.calculator.Calculate(stored.Job)
		if err != nil {
			// Stored jobs were validated on save; a failure here means the
			// document was edited by hand. Surface it instead of skipping.
			respondError(c, h.logger, fmt.Errorf("job %s: %w", stored.ID, err))
			return "", nil, false
		}
		results = append(results, result)
	}

	h.logger.Info("report rendered",
		slog.String("technician", name),
		slog.Int("jobs", len(results)),
	)
	return name, results, true
}
