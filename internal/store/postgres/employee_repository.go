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

type EmployeeRepository struct {
	exec Executor
}

func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{exec: db.Pool}
}

// WithTx returns a repository bound to the given transaction.
func (r *EmployeeRepository) WithTx(tx pgx.Tx) *EmployeeRepository {
	return &EmployeeRepository{exec: tx}
}

const employeeColumns = `id, emp_code, full_name, nickname, department, avatar_url, active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID,
		&e.EmpCode,
		&e.FullName,
		&e.Nickname,
		&e.Department,
		&e.AvatarURL,
		&e.Active,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.exec.QueryRow(ctx, query, id))
}

// Search returns active employees whose name, nickname, or code matches the
// given term. An empty term returns the full active roster.
func (r *EmployeeRepository) Search(ctx context.Context, term string) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE active = TRUE
		  AND ($1 = '' OR full_name ILIKE '%' || $1 || '%'
		       OR nickname ILIKE '%' || $1 || '%'
		       OR emp_code ILIKE '%' || $1 || '%')
		ORDER BY full_name ASC
	`

	rows, err := r.exec.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}

	return employees, rows.Err()
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO employees (id, emp_code, full_name, nickname, department, avatar_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.exec.Exec(ctx, query,
		e.ID, e.EmpCode, e.FullName, e.Nickname, e.Department, e.AvatarURL, e.Active, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrDuplicateEmpCode
		}
		return fmt.Errorf("insert employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	e.UpdatedAt = time.Now()

	query := `
		UPDATE employees
		SET emp_code = $2, full_name = $3, nickname = $4, department = $5,
		    avatar_url = $6, active = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.exec.Exec(ctx, query,
		e.ID, e.EmpCode, e.FullName, e.Nickname, e.Department, e.AvatarURL, e.Active, e.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrDuplicateEmpCode
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

// Delete deactivates the employee. Rows are kept so historical time entries
// stay resolvable.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE employees SET active = FALSE, updated_at = NOW() WHERE id = $1`

	tag, err := r.exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

func (r *EmployeeRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.exec.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}
