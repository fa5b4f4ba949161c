package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alphalocks/reports-be/internal/domain"
)

// JobStore persists jobs as a flat JSON document mapping job id to job
// fields. Every write replaces the whole file; no finer-grained atomicity is
// assumed. A mutex serializes in-process access - multi-process coordination
// is out of scope.
type JobStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewJobStore opens (or will lazily create) the jobs file at path.
func NewJobStore(path string, logger *slog.Logger) *JobStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobStore{path: path, logger: logger}
}

func (s *JobStore) load() (map[string]domain.StoredJob, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]domain.StoredJob{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}
	if len(data) == 0 {
		return map[string]domain.StoredJob{}, nil
	}
	if err := validateJobsDocument(data); err != nil {
		return nil, err
	}
	var jobs map[string]domain.StoredJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs file: %w", err)
	}
	return jobs, nil
}

func (s *JobStore) write(jobs map[string]domain.StoredJob) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode jobs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write jobs file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace jobs file: %w", err)
	}
	return nil
}

// List returns every stored job, newest job date first, ties broken by
// creation time.
func (s *JobStore) List() ([]domain.StoredJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoredJob, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns the stored job with the given id.
func (s *JobStore) Get(id string) (domain.StoredJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs, err := s.load()
	if err != nil {
		return domain.StoredJob{}, err
	}
	job, ok := jobs[id]
	if !ok {
		return domain.StoredJob{}, domain.ErrJobNotFound
	}
	return job, nil
}

// Save persists a job. The first save assigns an id and CreatedAt; later
// saves replace the record in full and bump UpdatedAt.
func (s *JobStore) Save(job domain.StoredJob) (domain.StoredJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs, err := s.load()
	if err != nil {
		return domain.StoredJob{}, err
	}
	now := time.Now().UTC()
	if job.ID == "" {
		job.ID = uuid.New().String()
		job.CreatedAt = now
	} else if existing, ok := jobs[job.ID]; ok {
		job.CreatedAt = existing.CreatedAt
	} else if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	jobs[job.ID] = job
	if err := s.write(jobs); err != nil {
		return domain.StoredJob{}, err
	}
	s.logger.Debug("job saved", slog.String("job_id", job.ID))
	return job, nil
}

// Delete removes a job by id.
func (s *JobStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(jobs, id)
	return s.write(jobs)
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	TechnicianID string
	From         domain.Date
	To           domain.Date
	UnpaidOnly   bool
}

// ListFiltered returns jobs matching the filter, in List order.
func (s *JobStore) ListFiltered(f Filter) ([]domain.StoredJob, error) {
	jobs, err := s.List()
	if err != nil {
		return nil, err
	}
	out := jobs[:0]
	for _, job := range jobs {
		if f.TechnicianID != "" && job.TechnicianID != f.TechnicianID {
			continue
		}
		if !f.From.IsZero() && job.Date.Before(f.From.Time) {
			continue
		}
		if !f.To.IsZero() && job.Date.After(f.To.Time) {
			continue
		}
		if f.UnpaidOnly && job.IsPaid {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

// SetPaid marks a job paid or unpaid, stamping or clearing the paid date.
func (s *JobStore) SetPaid(id string, paid bool) (domain.StoredJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs, err := s.load()
	if err != nil {
		return domain.StoredJob{}, err
	}
	job, ok := jobs[id]
	if !ok {
		return domain.StoredJob{}, domain.ErrJobNotFound
	}
	job.IsPaid = paid
	if paid {
		job.PaidDate = time.Now().UTC().Format(time.RFC3339)
	} else {
		job.PaidDate = ""
	}
	job.UpdatedAt = time.Now().UTC()
	jobs[id] = job
	if err := s.write(jobs); err != nil {
		return domain.StoredJob{}, err
	}
	return job, nil
}
