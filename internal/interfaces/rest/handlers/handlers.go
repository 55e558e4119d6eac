package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"github.com/songphoh/temp-trackerV3/internal/config"
	"github.com/songphoh/temp-trackerV3/internal/domain"
)

// EmployeeStore is the roster persistence port.
type EmployeeStore interface {
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	Search(ctx context.Context, term string) ([]domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}

// EntryStore is the time-entry persistence port.
type EntryStore interface {
	Insert(ctx context.Context, entry *domain.TimeEntry) error
	LastEntryOfDay(ctx context.Context, employeeID string, day time.Time) (*domain.TimeEntry, error)
	SummaryForDay(ctx context.Context, day time.Time, recentLimit int) (*domain.DashboardSummary, error)
}

// Notifier announces clock events. Best effort: failures are logged by the
// implementation and never fail the request.
type Notifier interface {
	ClockEvent(ctx context.Context, employee *domain.Employee, entry *domain.TimeEntry)
}

type Handlers struct {
	employees  EmployeeStore
	entries    EntryStore
	notifier   Notifier
	app        config.AppConfig
	adminToken string
	validate   *validator.Validate
	logger     *slog.Logger
}

func NewHandlers(
	employees EmployeeStore,
	entries EntryStore,
	notifier Notifier,
	app config.AppConfig,
	adminToken string,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		employees:  employees,
		entries:    entries,
		notifier:   notifier,
		app:        app,
		adminToken: adminToken,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Routes registers all API endpoints on the given mux.
func (h *Handlers) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/employees", h.ListEmployees)
	mux.HandleFunc("POST /api/clock-in", h.ClockIn)
	mux.HandleFunc("POST /api/clock-out", h.ClockOut)
	mux.HandleFunc("GET /api/dashboard/summary", h.DashboardSummary)
	mux.HandleFunc("GET /api/config", h.AppConfig)

	mux.HandleFunc("POST /api/admin/employees", h.requireAdmin(h.CreateEmployee))
	mux.HandleFunc("PUT /api/admin/employees/{id}", h.requireAdmin(h.UpdateEmployee))
	mux.HandleFunc("DELETE /api/admin/employees/{id}", h.requireAdmin(h.DeleteEmployee))
}
