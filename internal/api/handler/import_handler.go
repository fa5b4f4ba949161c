package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alphalocks/reports-be/internal/api/dto"
	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/importer"
)

// ImportHandler maps uploaded spreadsheets onto calculated job candidates
type ImportHandler struct {
	logger     *slog.Logger
	importer   *importer.Importer
	calculator *commission.Calculator
}

// NewImportHandler creates a new ImportHandler instance
func NewImportHandler(deps *Dependencies) *ImportHandler {
	return &ImportHandler{
		logger:     deps.Logger,
		importer:   deps.Importer,
		calculator: deps.Calculator,
	}
}

// ImportSpreadsheet handles POST /api/v1/imports
// Accepts a multipart "file" field holding an .xlsx or .csv spreadsheet and
// returns calculated candidates. Candidates are confirmed through POST /jobs.
func (h *ImportHandler) ImportSpreadsheet(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer func() { _ = file.Close() }()

	var jobs []domain.Job
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		jobs, err = h.importer.FromXLSX(file)
	case ".csv":
		jobs, err = h.importer.FromCSV(file)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected .xlsx or .csv"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.calculator.CalculateBatch(jobs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("spreadsheet imported",
		slog.String("filename", fileHeader.Filename),
		slog.Int("jobs", len(results)),
	)
	c.JSON(http.StatusOK, dto.ImportResponse{Results: results, Count: len(results)})
}
