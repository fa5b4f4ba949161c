package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphalocks/reports-be/internal/domain"
)

func newTestJobStore(t *testing.T) *JobStore {
	t.Helper()
	return NewJobStore(filepath.Join(t.TempDir(), "jobs.json"), nil)
}

func sampleJob(address string, date domain.Date) domain.StoredJob {
	return domain.StoredJob{
		TechnicianName: "Kevin",
		Job: domain.Job{
			Address: address,
			Date:    date,
			Total:   decimal.NewFromInt(510),
			Parts:   decimal.NewFromInt(25),
			Payment: domain.PaymentCash,
			Rate:    decimal.RequireFromString("0.5"),
		},
		TechProfit: decimal.RequireFromString("242.50"),
		Balance:    decimal.RequireFromString("242.50"),
	}
}

func TestJobStore_SaveAndGet(t *testing.T) {
	store := newTestJobStore(t)

	saved, err := store.Save(sampleJob("36 N Goodwin Ave, Elmsford, NY, 10523", domain.NewDate(2026, 1, 5)))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(saved.ID)
	require.NoError(t, err)

	// The reloaded record recovers every field exactly.
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.Address, got.Address)
	assert.Equal(t, saved.TechnicianName, got.TechnicianName)
	assert.Equal(t, saved.Payment, got.Payment)
	assert.Equal(t, "2026-01-05", got.Date.String())
	assert.True(t, got.Total.Equal(saved.Total))
	assert.True(t, got.Parts.Equal(saved.Parts))
	assert.True(t, got.TechProfit.Equal(saved.TechProfit))
	assert.True(t, got.Balance.Equal(saved.Balance))
	assert.True(t, got.CreatedAt.Equal(saved.CreatedAt))
}

func TestJobStore_GetMissing(t *testing.T) {
	store := newTestJobStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobStore_UpdatePreservesCreatedAt(t *testing.T) {
	store := newTestJobStore(t)

	saved, err := store.Save(sampleJob("36 N Goodwin Ave, Elmsford, NY, 10523", domain.NewDate(2026, 1, 5)))
	require.NoError(t, err)

	saved.Notes = "returned for a second visit"
	updated, err := store.Save(saved)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(saved.CreatedAt))
	assert.Equal(t, "returned for a second visit", updated.Notes)
}

func TestJobStore_Delete(t *testing.T) {
	store := newTestJobStore(t)

	saved, err := store.Save(sampleJob("36 N Goodwin Ave, Elmsford, NY, 10523", domain.NewDate(2026, 1, 5)))
	require.NoError(t, err)

	require.NoError(t, store.Delete(saved.ID))

	_, err = store.Get(saved.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	assert.ErrorIs(t, store.Delete(saved.ID), domain.ErrJobNotFound)
}

func TestJobStore_ListOrdering(t *testing.T) {
	store := newTestJobStore(t)

	_, err := store.Save(sampleJob("older", domain.NewDate(2026, 1, 2)))
	require.NoError(t, err)
	_, err = store.Save(sampleJob("newer", domain.NewDate(2026, 1, 5)))
	require.NoError(t, err)

	jobs, err := store.List()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "newer", jobs[0].Address)
	assert.Equal(t, "older", jobs[1].Address)
}

func TestJobStore_ListFiltered(t *testing.T) {
	store := newTestJobStore(t)

	a := sampleJob("job a", domain.NewDate(2026, 1, 2))
	a.TechnicianID = "tech-1"
	savedA, err := store.Save(a)
	require.NoError(t, err)

	b := sampleJob("job b", domain.NewDate(2026, 2, 10))
	b.TechnicianID = "tech-2"
	_, err = store.Save(b)
	require.NoError(t, err)

	_, err = store.SetPaid(savedA.ID, true)
	require.NoError(t, err)

	t.Run("by technician", func(t *testing.T) {
		jobs, err := store.ListFiltered(Filter{TechnicianID: "tech-1"})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "job a", jobs[0].Address)
	})

	t.Run("by date range", func(t *testing.T) {
		jobs, err := store.ListFiltered(Filter{
			From: domain.NewDate(2026, 2, 1),
			To:   domain.NewDate(2026, 2, 28),
		})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "job b", jobs[0].Address)
	})

	t.Run("unpaid only", func(t *testing.T) {
		jobs, err := store.ListFiltered(Filter{UnpaidOnly: true})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "job b", jobs[0].Address)
	})

	t.Run("no constraints", func(t *testing.T) {
		jobs, err := store.ListFiltered(Filter{})
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})
}

func TestJobStore_SetPaid(t *testing.T) {
	store := newTestJobStore(t)

	saved, err := store.Save(sampleJob("36 N Goodwin Ave, Elmsford, NY, 10523", domain.NewDate(2026, 1, 5)))
	require.NoError(t, err)
	assert.False(t, saved.IsPaid)

	paid, err := store.SetPaid(saved.ID, true)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.NotEmpty(t, paid.PaidDate)

	unpaid, err := store.SetPaid(saved.ID, false)
	require.NoError(t, err)
	assert.False(t, unpaid.IsPaid)
	assert.Empty(t, unpaid.PaidDate)

	_, err = store.SetPaid("nope", true)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobStore_MissingFileIsEmpty(t *testing.T) {
	store := newTestJobStore(t)

	jobs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobStore_RejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json")

	t.Run("schema violation", func(t *testing.T) {
		// Numeric total instead of a decimal string.
		doc := `{"j1": {"id": "j1", "address": "a", "total": 100, "payment_method": "cash", "created_at": "2026-01-05T00:00:00Z"}}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		store := NewJobStore(path, nil)
		_, err := store.List()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema")
	})

	t.Run("unknown payment method", func(t *testing.T) {
		doc := `{"j1": {"id": "j1", "address": "a", "total": "100", "payment_method": "bitcoin", "created_at": "2026-01-05T00:00:00Z"}}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		store := NewJobStore(path, nil)
		_, err := store.List()
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

		store := NewJobStore(path, nil)
		_, err := store.List()
		require.Error(t, err)
	})
}
