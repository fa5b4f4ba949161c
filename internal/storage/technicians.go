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
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/domain"
)

// TechnicianStore persists technicians in a sibling flat JSON document,
// keyed by technician id.
type TechnicianStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

func NewTechnicianStore(path string, logger *slog.Logger) *TechnicianStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TechnicianStore{path: path, logger: logger}
}

func (s *TechnicianStore) load() (map[string]domain.Technician, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]domain.Technician{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read technicians file: %w", err)
	}
	if len(data) == 0 {
		return map[string]domain.Technician{}, nil
	}
	var techs map[string]domain.Technician
	if err := json.Unmarshal(data, &techs); err != nil {
		return nil, fmt.Errorf("decode technicians file: %w", err)
	}
	return techs, nil
}

func (s *TechnicianStore) write(techs map[string]domain.Technician) error {
	data, err := json.MarshalIndent(techs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode technicians: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write technicians file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace technicians file: %w", err)
	}
	return nil
}

// List returns all technicians sorted by name.
func (s *TechnicianStore) List() ([]domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	techs, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Technician, 0, len(techs))
	for _, t := range techs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns a technician by id.
func (s *TechnicianStore) Get(id string) (domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	techs, err := s.load()
	if err != nil {
		return domain.Technician{}, err
	}
	t, ok := techs[id]
	if !ok {
		return domain.Technician{}, domain.ErrTechnicianNotFound
	}
	return t, nil
}

// GetByName finds a technician by case-insensitive name match.
func (s *TechnicianStore) GetByName(name string) (domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByName(name)
}

func (s *TechnicianStore) findByName(name string) (domain.Technician, error) {
	techs, err := s.load()
	if err != nil {
		return domain.Technician{}, err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, t := range techs {
		if strings.ToLower(strings.TrimSpace(t.Name)) == want {
			return t, nil
		}
	}
	return domain.Technician{}, domain.ErrTechnicianNotFound
}

// Save persists a technician, assigning an id and creation time on first
// save.
func (s *TechnicianStore) Save(t domain.Technician) (domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	techs, err := s.load()
	if err != nil {
		return domain.Technician{}, err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
		t.CreatedAt = time.Now().UTC()
	}
	if t.Rate.IsZero() {
		t.Rate = domain.DefaultCommissionRate
	}
	t.Name = strings.TrimSpace(t.Name)
	techs[t.ID] = t
	if err := s.write(techs); err != nil {
		return domain.Technician{}, err
	}
	s.logger.Debug("technician saved", slog.String("technician_id", t.ID))
	return t, nil
}

// GetOrCreate returns the technician with the given name, creating one with
// the supplied rate when none exists.
func (s *TechnicianStore) GetOrCreate(name string, rate decimal.Decimal) (domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.findByName(name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrTechnicianNotFound) {
		return domain.Technician{}, err
	}
	techs, err := s.load()
	if err != nil {
		return domain.Technician{}, err
	}
	if rate.IsZero() {
		rate = domain.DefaultCommissionRate
	}
	t := domain.Technician{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Rate:      rate,
		CreatedAt: time.Now().UTC(),
	}
	techs[t.ID] = t
	if err := s.write(techs); err != nil {
		return domain.Technician{}, err
	}
	return t, nil
}

// Delete removes a technician. Historical jobs keep their technician_id; the
// dangling reference preserves report accuracy.
func (s *TechnicianStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	techs, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := techs[id]; !ok {
		return domain.ErrTechnicianNotFound
	}
	delete(techs, id)
	return s.write(techs)
}
