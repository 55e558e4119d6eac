package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/domain"
	"github.com/songphoh/temp-trackerV3/internal/store/postgres"
	"github.com/songphoh/temp-trackerV3/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	td := testhelpers.SetupTestDatabase(t)
	defer td.Cleanup(t)

	employees := postgres.NewEmployeeRepository(td.DB)
	repo := postgres.NewEntryRepository(td.DB)
	ctx := context.Background()

	createEmployee := func(t *testing.T, code string) *domain.Employee {
		t.Helper()
		e := &domain.Employee{EmpCode: code, FullName: "Employee " + code, Active: true}
		require.NoError(t, employees.Create(ctx, e))
		return e
	}

	insertAt := func(t *testing.T, employeeID string, kind domain.EntryKind, at time.Time) *domain.TimeEntry {
		t.Helper()
		entry := &domain.TimeEntry{
			EmployeeID: employeeID,
			Kind:       kind,
			RecordedAt: at,
		}
		require.NoError(t, repo.Insert(ctx, entry))
		return entry
	}

	t.Run("insert assigns id and default timestamp", func(t *testing.T) {
		td.CleanTables(t)
		e := createEmployee(t, "E001")

		entry := &domain.TimeEntry{EmployeeID: e.ID, Kind: domain.KindClockIn, Note: "morning"}
		require.NoError(t, repo.Insert(ctx, entry))
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.RecordedAt.IsZero())
	})

	t.Run("last entry of day", func(t *testing.T) {
		td.CleanTables(t)
		e := createEmployee(t, "E001")

		now := time.Now()
		insertAt(t, e.ID, domain.KindClockIn, now.Add(-2*time.Hour))
		latest := insertAt(t, e.ID, domain.KindClockOut, now.Add(-time.Hour))
		insertAt(t, e.ID, domain.KindClockIn, now.Add(-26*time.Hour))

		last, err := repo.LastEntryOfDay(ctx, e.ID, now)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, latest.ID, last.ID)
		assert.Equal(t, domain.KindClockOut, last.Kind)
	})

	t.Run("last entry of day with no entries", func(t *testing.T) {
		td.CleanTables(t)
		e := createEmployee(t, "E001")

		last, err := repo.LastEntryOfDay(ctx, e.ID, time.Now())
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("insert inside a rolled-back transaction leaves no trace", func(t *testing.T) {
		td.CleanTables(t)
		e := createEmployee(t, "E001")

		tx, err := td.DB.Pool.Begin(ctx)
		require.NoError(t, err)

		entry := &domain.TimeEntry{EmployeeID: e.ID, Kind: domain.KindClockIn}
		require.NoError(t, repo.WithTx(tx).Insert(ctx, entry))
		require.NoError(t, tx.Rollback(ctx))

		last, err := repo.LastEntryOfDay(ctx, e.ID, time.Now())
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("summary counts latest state per employee", func(t *testing.T) {
		td.CleanTables(t)
		a := createEmployee(t, "E001")
		b := createEmployee(t, "E002")
		c := createEmployee(t, "E003")

		now := time.Now()
		// a: in then out. b: still in. c: nothing today.
		insertAt(t, a.ID, domain.KindClockIn, now.Add(-3*time.Hour))
		insertAt(t, a.ID, domain.KindClockOut, now.Add(-time.Hour))
		insertAt(t, b.ID, domain.KindClockIn, now.Add(-2*time.Hour))
		insertAt(t, c.ID, domain.KindClockIn, now.Add(-30*time.Hour))

		summary, err := repo.SummaryForDay(ctx, now, 20)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.ClockedIn)
		assert.Len(t, summary.Entries, 3, "yesterday's entries stay out of today's feed")
	})

	t.Run("summary honors recent limit", func(t *testing.T) {
		td.CleanTables(t)
		e := createEmployee(t, "E001")

		now := time.Now()
		for i := 0; i < 5; i++ {
			insertAt(t, e.ID, domain.KindClockIn, now.Add(-time.Duration(i+1)*time.Minute))
		}

		summary, err := repo.SummaryForDay(ctx, now, 3)
		require.NoError(t, err)
		assert.Len(t, summary.Entries, 3)
		// Newest first.
		assert.True(t, summary.Entries[0].RecordedAt.After(summary.Entries[1].RecordedAt))
	})
}
