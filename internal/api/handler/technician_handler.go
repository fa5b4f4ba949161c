package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alphalocks/reports-be/internal/api/dto"
	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/storage"
)

// TechnicianHandler handles technician-related HTTP requests
type TechnicianHandler struct {
	logger      *slog.Logger
	technicians *storage.TechnicianStore
}

// NewTechnicianHandler creates a new TechnicianHandler instance
func NewTechnicianHandler(deps *Dependencies) *TechnicianHandler {
	return &TechnicianHandler{
		logger:      deps.Logger,
		technicians: deps.Technicians,
	}
}

// ListTechnicians handles GET /api/v1/technicians
func (h *TechnicianHandler) ListTechnicians(c *gin.Context) {
	techs, err := h.technicians.List()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"technicians": techs, "count": len(techs)})
}

// CreateTechnician handles POST /api/v1/technicians
func (h *TechnicianHandler) CreateTechnician(c *gin.Context) {
	var req dto.TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tech, err := h.technicians.Save(domain.Technician{Name: req.Name, Rate: req.Rate})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("technician created",
		slog.String("technician_id", tech.ID),
		slog.String("name", tech.Name),
	)
	c.JSON(http.StatusCreated, tech)
}

// UpdateTechnician handles PUT /api/v1/technicians/:tech_id
func (h *TechnicianHandler) UpdateTechnician(c *gin.Context) {
	existing, err := h.technicians.Get(c.Param("tech_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	existing.Name = req.Name
	if !req.Rate.IsZero() {
		existing.Rate = req.Rate
	}
	tech, err := h.technicians.Save(existing)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

// DeleteTechnician handles DELETE /api/v1/technicians/:tech_id
// Historical jobs keep their technician reference
func (h *TechnicianHandler) DeleteTechnician(c *gin.Context) {
	techID := c.Param("tech_id")
	if err := h.technicians.Delete(techID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("technician deleted", slog.String("technician_id", techID))
	c.Status(http.StatusNoContent)
}
