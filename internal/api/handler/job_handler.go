package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alphalocks/reports-be/internal/api/dto"
	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/storage"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger      *slog.Logger
	jobs        *storage.JobStore
	technicians *storage.TechnicianStore
	calculator  *commission.Calculator
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:      deps.Logger,
		jobs:        deps.Jobs,
		technicians: deps.Technicians,
		calculator:  deps.Calculator,
	}
}

// CreateJob handles POST /api/v1/jobs
// Confirms a job: validates it, computes its commission split and persists it
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stored, err := h.buildStoredJob(req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	saved, err := h.jobs.Save(stored)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("job created",
		slog.String("job_id", saved.ID),
		slog.String("technician", saved.TechnicianName),
	)
	c.JSON(http.StatusCreated, saved)
}

// UpdateJob handles PUT /api/v1/jobs/:job_id
// Replaces the job fields wholesale and recomputes the commission split.
// Paid state is kept; it only changes through the paid endpoints.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	existing, err := h.jobs.Get(c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stored, err := h.buildStoredJob(req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	stored.ID = existing.ID
	stored.CreatedAt = existing.CreatedAt
	stored.IsPaid = existing.IsPaid
	stored.PaidDate = existing.PaidDate

	saved, err := h.jobs.Save(stored)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// buildStoredJob validates the request, recomputes the commission figures and
// resolves the technician reference.
func (h *JobHandler) buildStoredJob(req dto.SaveJobRequest) (domain.StoredJob, error) {
	method, err := domain.ParsePaymentMethod(string(req.Payment))
	if err != nil {
		return domain.StoredJob{}, err
	}

	job := req.Job
	job.Payment = method
	if job.Rate.IsZero() {
		job.Rate = domain.DefaultCommissionRate
	}
	job.NormalizeAmounts()

	result, err := h.calculator.Calculate(job)
	if err != nil {
		return domain.StoredJob{}, err
	}

	stored := domain.StoredJob{
		TechnicianID:   req.TechnicianID,
		TechnicianName: req.TechnicianName,
		Job:            job,
		TechProfit:     result.TechProfit,
		Balance:        result.Balance,
		Notes:          req.Notes,
	}

	switch {
	case req.TechnicianID != "":
		tech, err := h.technicians.Get(req.TechnicianID)
		if err != nil {
			return domain.StoredJob{}, err
		}
		stored.TechnicianName = tech.Name
	case req.TechnicianName != "":
		tech, err := h.technicians.GetOrCreate(req.TechnicianName, job.Rate)
		if err != nil {
			return domain.StoredJob{}, err
		}
		stored.TechnicianID = tech.ID
		stored.TechnicianName = tech.Name
	}
	return stored, nil
}

// ListJobs handles GET /api/v1/jobs
// Lists stored jobs, optionally filtered by technician, date range and
// payment state
func (h *JobHandler) ListJobs(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobs, err := h.jobs.ListFiltered(filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListJobsResponse{Jobs: jobs, Count: len(jobs)})
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/:job_id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if err := h.jobs.Delete(jobID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("job deleted", slog.String("job_id", jobID))
	c.Status(http.StatusNoContent)
}

// MarkPaid handles POST /api/v1/jobs/:job_id/paid
func (h *JobHandler) MarkPaid(c *gin.Context) {
	h.setPaid(c, true)
}

// MarkUnpaid handles POST /api/v1/jobs/:job_id/unpaid
func (h *JobHandler) MarkUnpaid(c *gin.Context) {
	h.setPaid(c, false)
}

func (h *JobHandler) setPaid(c *gin.Context, paid bool) {
	job, err := h.jobs.SetPaid(c.Param("job_id"), paid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// filterFromQuery reads technician_id, from, to and unpaid query parameters
func filterFromQuery(c *gin.Context) (storage.Filter, error) {
	filter := storage.Filter{TechnicianID: c.Query("technician_id")}

	if raw := c.Query("from"); raw != "" {
		d, err := domain.ParseISODate(raw)
		if err != nil {
			return storage.Filter{}, err
		}
		filter.From = d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := domain.ParseISODate(raw)
		if err != nil {
			return storage.Filter{}, err
		}
		filter.To = d
	}
	if raw := c.Query("unpaid"); raw != "" {
		unpaid, err := strconv.ParseBool(raw)
		if err != nil {
			return storage.Filter{}, err
		}
		filter.UnpaidOnly = unpaid
	}
	return filter, nil
}
