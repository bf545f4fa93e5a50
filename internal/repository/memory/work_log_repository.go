package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"

	"github.com/google/uuid"
)

// WorkLogRepository is a map-backed implementation used by service tests.
type WorkLogRepository struct {
	mu   sync.Mutex
	logs map[uuid.UUID]*entity.WorkLog

	// Departments maps employee id to department so list filters that join
	// the user table in the database can be exercised in memory.
	Departments map[string]string
}

func NewWorkLogRepository() *WorkLogRepository {
	return &WorkLogRepository{
		logs:        map[uuid.UUID]*entity.WorkLog{},
		Departments: map[string]string{},
	}
}

func cloneWorkLog(w *entity.WorkLog) *entity.WorkLog {
	c := *w
	if w.Quantity != nil {
		q := *w.Quantity
		c.Quantity = &q
	}
	if w.EditReason != nil {
		r := *w.EditReason
		c.EditReason = &r
	}
	if w.OriginalId != nil {
		id := *w.OriginalId
		c.OriginalId = &id
	}
	return &c
}

func (r *WorkLogRepository) Create(ctx context.Context, log *entity.WorkLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	log.UpdatedAt = time.Now()
	r.logs[log.Id] = cloneWorkLog(log)
	return nil
}

func (r *WorkLogRepository) CreateBatch(ctx context.Context, logs []*entity.WorkLog) error {
	for _, log := range logs {
		if err := r.Create(ctx, log); err != nil {
			return err
		}
	}
	return nil
}

func (r *WorkLogRepository) Update(ctx context.Context, log *entity.WorkLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.UpdatedAt = time.Now()
	r.logs[log.Id] = cloneWorkLog(log)
	return nil
}

func (r *WorkLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.logs, id)
	return nil
}

func (r *WorkLogRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.WorkLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log, ok := r.logs[id]; ok {
		return cloneWorkLog(log), nil
	}
	return nil, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (r *WorkLogRepository) FindByEmployeeAndDate(ctx context.Context, employeeId string, date time.Time) ([]*entity.WorkLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WorkLog
	for _, log := range r.logs {
		if log.EmployeeId == employeeId && sameDay(log.Date, date) {
			out = append(out, cloneWorkLog(log))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RowNumber < out[j].RowNumber })
	return out, nil
}

func (r *WorkLogRepository) DeleteDraftsByEmployeeAndDate(ctx context.Context, employeeId string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, log := range r.logs {
		if log.EmployeeId == employeeId && sameDay(log.Date, date) && log.Status == entity.StatusDraft {
			delete(r.logs, id)
		}
	}
	return nil
}

func (r *WorkLogRepository) FindShadowsOf(ctx context.Context, originalId uuid.UUID) ([]*entity.WorkLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WorkLog
	for _, log := range r.logs {
		if log.OriginalId != nil && *log.OriginalId == originalId && log.Status == entity.StatusPendingEdit {
			out = append(out, cloneWorkLog(log))
		}
	}
	return out, nil
}

func (r *WorkLogRepository) DeleteShadowsOf(ctx context.Context, originalId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, log := range r.logs {
		if log.OriginalId != nil && *log.OriginalId == originalId && log.Status == entity.StatusPendingEdit {
			delete(r.logs, id)
		}
	}
	return nil
}

func (r *WorkLogRepository) matches(log *entity.WorkLog, filter contract.WorkLogFilter) bool {
	if filter.EmployeeId != "" && log.EmployeeId != filter.EmployeeId {
		return false
	}
	if filter.EmployeeIdLike != "" && !strings.Contains(log.EmployeeId, filter.EmployeeIdLike) {
		return false
	}
	if filter.Department != "" && r.Departments[log.EmployeeId] != filter.Department {
		return false
	}
	if filter.StartDate != nil && log.Date.Before(*filter.StartDate) && !sameDay(log.Date, *filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && log.Date.After(*filter.EndDate) && !sameDay(log.Date, *filter.EndDate) {
		return false
	}
	if filter.Model != "" && log.Model != filter.Model {
		return false
	}
	if filter.WorkType != "" && log.WorkType != filter.WorkType {
		return false
	}
	if filter.UnitName != "" && log.UnitName != filter.UnitName {
		return false
	}
	switch filter.Status {
	case "":
	case "pending":
		if !log.Status.IsPending() {
			return false
		}
	default:
		if log.Status.String() != filter.Status {
			return false
		}
	}
	return true
}

func isOriginal(log *entity.WorkLog) bool {
	return log.Status != entity.StatusPendingEdit || log.OriginalId == nil
}

func (r *WorkLogRepository) List(ctx context.Context, filter contract.WorkLogFilter, page, perPage int) (*contract.WorkLogPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var originals []*entity.WorkLog
	for _, log := range r.logs {
		if isOriginal(log) && r.matches(log, filter) {
			originals = append(originals, log)
		}
	}
	asc := filter.SortOrder == "asc"
	sort.SliceStable(originals, func(i, j int) bool {
		if asc {
			return originals[i].Date.Before(originals[j].Date)
		}
		return originals[i].Date.After(originals[j].Date)
	})

	total := int64(len(originals))
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	start := (page - 1) * perPage
	if start > len(originals) {
		start = len(originals)
	}
	end := start + perPage
	if end > len(originals) {
		end = len(originals)
	}
	pageRows := originals[start:end]

	pageIds := map[uuid.UUID]bool{}
	var logs []*entity.WorkLog
	for _, log := range pageRows {
		pageIds[log.Id] = true
		logs = append(logs, cloneWorkLog(log))
	}
	for _, log := range r.logs {
		if log.OriginalId != nil && pageIds[*log.OriginalId] && log.Status == entity.StatusPendingEdit {
			logs = append(logs, cloneWorkLog(log))
		}
	}

	return &contract.WorkLogPage{
		Logs:        logs,
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PerPage:     perPage,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}, nil
}

func (r *WorkLogRepository) Count(ctx context.Context, filter contract.WorkLogFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, log := range r.logs {
		if isOriginal(log) && r.matches(log, filter) {
			count++
		}
	}
	return count, nil
}

func (r *WorkLogRepository) distinct(employeeId string, pick func(*entity.WorkLog) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, log := range r.logs {
		if log.EmployeeId != employeeId {
			continue
		}
		value := pick(log)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

func (r *WorkLogRepository) DistinctModels(ctx context.Context, employeeId string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.distinct(employeeId, func(w *entity.WorkLog) string { return w.Model }), nil
}

func (r *WorkLogRepository) DistinctWorkTypes(ctx context.Context, employeeId string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.distinct(employeeId, func(w *entity.WorkLog) string { return w.WorkType }), nil
}

func (r *WorkLogRepository) PendingCounts(ctx context.Context, unitName *string) (entity.PendingCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var counts entity.PendingCounts
	for _, log := range r.logs {
		if unitName != nil && log.UnitName != *unitName {
			continue
		}
		switch log.Status {
		case entity.StatusPendingAdd:
			counts.PendingAdd++
		case entity.StatusPendingDelete:
			counts.PendingDelete++
		case entity.StatusPendingEdit:
			if log.OriginalId == nil {
				counts.PendingEdit++
			}
		}
	}
	counts.Total = counts.PendingAdd + counts.PendingEdit + counts.PendingDelete
	return counts, nil
}

func (r *WorkLogRepository) RejectedCounts(ctx context.Context, employeeId string) (entity.RejectedCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var counts entity.RejectedCounts
	for _, log := range r.logs {
		if log.EmployeeId != employeeId {
			continue
		}
		switch log.Status {
		case entity.StatusRejectedAdd:
			counts.RejectedAdd++
		case entity.StatusRejectedEdit:
			counts.RejectedEdit++
		case entity.StatusRejectedDelete:
			counts.RejectedDelete++
		}
	}
	counts.Total = counts.RejectedAdd + counts.RejectedEdit + counts.RejectedDelete
	return counts, nil
}
