package dto

import (
	"github.com/alphalocks/reports-be/internal/domain"
)

// SaveJobRequest confirms a job into the store. The embedded job fields are
// taken as-is; commission figures are always recomputed server-side.
type SaveJobRequest struct {
	domain.Job

	TechnicianID   string `json:"technician_id"`
	TechnicianName string `json:"technician_name"`
	Notes          string `json:"notes"`
}

// ListJobsResponse wraps a filtered job listing
type ListJobsResponse struct {
	Jobs  []domain.StoredJob `json:"jobs"`
	Count int                `json:"count"`
}

// ImportResponse lists calculated job candidates from a spreadsheet. Nothing
// is persisted until each candidate is confirmed through POST /jobs.
type ImportResponse struct {
	Results []domain.JobResult `json:"results"`
	Count   int                `json:"count"`
}
