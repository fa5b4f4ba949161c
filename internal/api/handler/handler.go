package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/config"
	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/importer"
	"github.com/alphalocks/reports-be/internal/parser"
	"github.com/alphalocks/reports-be/internal/report"
	"github.com/alphalocks/reports-be/internal/storage"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger      *slog.Logger
	Config      *config.Config
	Jobs        *storage.JobStore
	Technicians *storage.TechnicianStore
	Pool        *parser.Pool
	Calculator  *commission.Calculator
	Importer    *importer.Importer
	HTMLReport  *report.HTMLRenderer
	ExcelReport *report.ExcelRenderer
}

// respondError maps domain errors onto HTTP statuses. Parse and validation
// failures are client errors; anything unrecognized is a 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		parseErr      *domain.ParseError
		validationErr *domain.ValidationError
	)
	switch {
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrTechnicianNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &parseErr),
		errors.Is(err, domain.ErrFormatUnrecognized),
		errors.Is(err, domain.ErrMissingTotal),
		errors.Is(err, domain.ErrUnknownPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
