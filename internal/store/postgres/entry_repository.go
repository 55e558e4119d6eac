package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/songphoh/temp-trackerV3/internal/domain"
)

type EntryRepository struct {
	exec Executor
}

func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{exec: db.Pool}
}

// WithTx returns a repository bound to the given transaction.
func (r *EntryRepository) WithTx(tx pgx.Tx) *EntryRepository {
	return &EntryRepository{exec: tx}
}

func (r *EntryRepository) Insert(ctx context.Context, entry *domain.TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	query := `
		INSERT INTO time_entries (id, employee_id, kind, note, latitude, longitude, client_time, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.exec.Exec(ctx, query,
		entry.ID, entry.EmployeeID, entry.Kind, entry.Note,
		entry.Latitude, entry.Longitude, entry.ClientTime, entry.RecordedAt)
	if err != nil {
		return fmt.Errorf("insert time entry: %w", err)
	}

	return nil
}

// LastEntryOfDay returns the most recent entry for the employee on the given
// local day, or nil if the employee has not clocked anything that day.
func (r *EntryRepository) LastEntryOfDay(ctx context.Context, employeeID string, day time.Time) (*domain.TimeEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	query := `
		SELECT id, employee_id, kind, note, latitude, longitude, client_time, recorded_at
		FROM time_entries
		WHERE employee_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var e domain.TimeEntry
	err := r.exec.QueryRow(ctx, query, employeeID, start, end).Scan(
		&e.ID, &e.EmployeeID, &e.Kind, &e.Note,
		&e.Latitude, &e.Longitude, &e.ClientTime, &e.RecordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last entry: %w", err)
	}

	return &e, nil
}

// SummaryForDay aggregates headcount and the most recent entries for the
// dashboard.
func (r *EntryRepository) SummaryForDay(ctx context.Context, day time.Time, recentLimit int) (*domain.DashboardSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	// An employee counts as clocked in when their latest entry of the day is
	// a clock-in.
	countQuery := `
		SELECT COUNT(*) FROM (
			SELECT DISTINCT ON (employee_id) kind
			FROM time_entries
			WHERE recorded_at >= $1 AND recorded_at < $2
			ORDER BY employee_id, recorded_at DESC
		) latest
		WHERE latest.kind = 'clock_in'
	`

	summary := &domain.DashboardSummary{Entries: []domain.TimeEntry{}}

	if err := r.exec.QueryRow(ctx, countQuery, start, end).Scan(&summary.ClockedIn); err != nil {
		return nil, fmt.Errorf("count clocked in: %w", err)
	}

	recentQuery := `
		SELECT id, employee_id, kind, note, latitude, longitude, client_time, recorded_at
		FROM time_entries
		WHERE recorded_at >= $1 AND recorded_at < $2
		ORDER BY recorded_at DESC
		LIMIT $3
	`

	rows, err := r.exec.Query(ctx, recentQuery, start, end, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("query recent entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.TimeEntry
		err := rows.Scan(&e.ID, &e.EmployeeID, &e.Kind, &e.Note,
			&e.Latitude, &e.Longitude, &e.ClientTime, &e.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		summary.Entries = append(summary.Entries, e)
	}

	return summary, rows.Err()
}
