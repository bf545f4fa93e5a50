package contract

import (
	"context"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

// WorkLogFilter narrows listing queries. Nil or empty fields are ignored.
// Status "pending" expands to the three pending statuses.
type WorkLogFilter struct {
	EmployeeId     string
	EmployeeIdLike string
	Department     string
	StartDate      *time.Time
	EndDate        *time.Time
	Model          string
	WorkType       string
	UnitName       string
	Status         string
	SortBy         string
	SortOrder      string
}

// WorkLogPage is one page of listing results. Pagination is computed over
// originals only; Logs additionally contains the edit shadows belonging to
// the page so before/after pairs render together.
type WorkLogPage struct {
	Logs        []*entity.WorkLog
	TotalItems  int64
	TotalPages  int
	CurrentPage int
	PerPage     int
	HasPrev     bool
	HasNext     bool
}

type WorkLogRepository interface {
	Create(ctx context.Context, log *entity.WorkLog) error
	CreateBatch(ctx context.Context, logs []*entity.WorkLog) error
	Update(ctx context.Context, log *entity.WorkLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.WorkLog, error)

	FindByEmployeeAndDate(ctx context.Context, employeeId string, date time.Time) ([]*entity.WorkLog, error)
	DeleteDraftsByEmployeeAndDate(ctx context.Context, employeeId string, date time.Time) error

	FindShadowsOf(ctx context.Context, originalId uuid.UUID) ([]*entity.WorkLog, error)
	DeleteShadowsOf(ctx context.Context, originalId uuid.UUID) error

	List(ctx context.Context, filter WorkLogFilter, page, perPage int) (*WorkLogPage, error)
	Count(ctx context.Context, filter WorkLogFilter) (int64, error)

	DistinctModels(ctx context.Context, employeeId string) ([]string, error)
	DistinctWorkTypes(ctx context.Context, employeeId string) ([]string, error)

	PendingCounts(ctx context.Context, unitName *string) (entity.PendingCounts, error)
	RejectedCounts(ctx context.Context, employeeId string) (entity.RejectedCounts, error)
}
