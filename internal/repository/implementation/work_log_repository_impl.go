package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/mapper"
	"github.com/Fusion-Mind-co/worklog-system/internal/model"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var sortableColumns = map[string]string{
	"date":        "date",
	"employee_id": "employee_id",
	"unit_name":   "unit_name",
	"work_type":   "work_type",
	"status":      "status",
	"minutes":     "minutes",
	"created_at":  "created_at",
}

type WorkLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkLogMapper
}

func NewWorkLogRepository(db *gorm.DB) contract.WorkLogRepository {
	return &WorkLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkLogMapper(),
	}
}

func (r *WorkLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func filterSpecifications(filter contract.WorkLogFilter) []specification.Specification {
	specs := []specification.Specification{}
	if filter.EmployeeId != "" {
		specs = append(specs, specification.ByEmployee{EmployeeId: filter.EmployeeId})
	}
	if filter.EmployeeIdLike != "" {
		specs = append(specs, specification.ByEmployeeLike{Pattern: filter.EmployeeIdLike})
	}
	if filter.Department != "" {
		specs = append(specs, specification.ByDepartment{Department: filter.Department})
	}
	if filter.StartDate != nil {
		specs = append(specs, specification.FromDate{Start: *filter.StartDate})
	}
	if filter.EndDate != nil {
		specs = append(specs, specification.UntilDate{End: *filter.EndDate})
	}
	if filter.Model != "" {
		specs = append(specs, specification.Filter("model", filter.Model))
	}
	if filter.WorkType != "" {
		specs = append(specs, specification.Filter("work_type", filter.WorkType))
	}
	if filter.UnitName != "" {
		specs = append(specs, specification.ByUnitName{UnitName: filter.UnitName})
	}
	switch filter.Status {
	case "":
	case "pending":
		specs = append(specs, specification.ByStatuses{Statuses: []string{
			entity.StatusPendingAdd.String(),
			entity.StatusPendingEdit.String(),
			entity.StatusPendingDelete.String(),
		}})
	default:
		specs = append(specs, specification.ByStatus{Status: filter.Status})
	}
	return specs
}

func orderSpecification(filter contract.WorkLogFilter) specification.Specification {
	column, ok := sortableColumns[filter.SortBy]
	if !ok {
		column = "date"
	}
	return specification.OrderBy{Field: column, Desc: filter.SortOrder != "asc"}
}

func (r *WorkLogRepositoryImpl) Create(ctx context.Context, log *entity.WorkLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkLogRepositoryImpl) CreateBatch(ctx context.Context, logs []*entity.WorkLog) error {
	if len(logs) == 0 {
		return nil
	}
	models := r.mapper.ToModels(logs)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*logs[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *WorkLogRepositoryImpl) Update(ctx context.Context, log *entity.WorkLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkLogRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WorkLog{}, id).Error
}

func (r *WorkLogRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.WorkLog, error) {
	var m model.WorkLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WorkLogRepositoryImpl) FindByEmployeeAndDate(ctx context.Context, employeeId string, date time.Time) ([]*entity.WorkLog, error) {
	var models []*model.WorkLog
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByEmployee{EmployeeId: employeeId},
		specification.ByDate{Date: date},
		specification.OrderBy{Field: "row_number"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WorkLogRepositoryImpl) DeleteDraftsByEmployeeAndDate(ctx context.Context, employeeId string, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND status = ?", employeeId, date.Format("2006-01-02"), entity.StatusDraft.String()).
		Delete(&model.WorkLog{}).Error
}

func (r *WorkLogRepositoryImpl) FindShadowsOf(ctx context.Context, originalId uuid.UUID) ([]*entity.WorkLog, error) {
	var models []*model.WorkLog
	query := specification.ShadowsOf{OriginalID: originalId}.Apply(r.db.WithContext(ctx))
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WorkLogRepositoryImpl) DeleteShadowsOf(ctx context.Context, originalId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("original_id = ? AND status = ?", originalId, entity.StatusPendingEdit.String()).
		Delete(&model.WorkLog{}).Error
}

// List paginates over originals only, then widens the page to include the
// edit shadows of the rows it contains so a pending edit renders next to the
// row it replaces.
func (r *WorkLogRepositoryImpl) List(ctx context.Context, filter contract.WorkLogFilter, page, perPage int) (*contract.WorkLogPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	specs := append(filterSpecifications(filter), specification.OriginalsOnly{})

	var total int64
	countQuery := r.applySpecifications(r.db.WithContext(ctx).Model(&model.WorkLog{}), specs...)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var pageIds []uuid.UUID
	idQuery := r.applySpecifications(r.db.WithContext(ctx).Model(&model.WorkLog{}), specs...)
	idQuery = orderSpecification(filter).Apply(idQuery)
	idQuery = specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage}.Apply(idQuery)
	if err := idQuery.Pluck("work_logs.id", &pageIds).Error; err != nil {
		return nil, err
	}

	var models []*model.WorkLog
	if len(pageIds) > 0 {
		rowQuery := specification.PageWithShadows{PageIDs: pageIds}.Apply(r.db.WithContext(ctx))
		rowQuery = orderSpecification(filter).Apply(rowQuery)
		if err := rowQuery.Find(&models).Error; err != nil {
			return nil, err
		}
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return &contract.WorkLogPage{
		Logs:        r.mapper.ToEntities(models),
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PerPage:     perPage,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}, nil
}

func (r *WorkLogRepositoryImpl) Count(ctx context.Context, filter contract.WorkLogFilter) (int64, error) {
	var count int64
	specs := append(filterSpecifications(filter), specification.OriginalsOnly{})
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.WorkLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WorkLogRepositoryImpl) DistinctModels(ctx context.Context, employeeId string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&model.WorkLog{}).
		Where("employee_id = ? AND model <> ''", employeeId).
		Distinct().Order("model").
		Pluck("model", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *WorkLogRepositoryImpl) DistinctWorkTypes(ctx context.Context, employeeId string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&model.WorkLog{}).
		Where("employee_id = ? AND work_type <> ''", employeeId).
		Distinct().Order("work_type").
		Pluck("work_type", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

type statusCount struct {
	Status string
	Count  int64
}

// PendingCounts tallies pending rows per status. Edit shadows are excluded so
// a pending edit counts once, on the original row.
func (r *WorkLogRepositoryImpl) PendingCounts(ctx context.Context, unitName *string) (entity.PendingCounts, error) {
	var counts entity.PendingCounts
	query := r.db.WithContext(ctx).Model(&model.WorkLog{}).
		Select("status, COUNT(*) AS count").
		Where("status IN ?", []string{
			entity.StatusPendingAdd.String(),
			entity.StatusPendingEdit.String(),
			entity.StatusPendingDelete.String(),
		}).
		Where("status <> ? OR original_id IS NULL", entity.StatusPendingEdit.String()).
		Group("status")
	if unitName != nil {
		query = query.Where("unit_name = ?", *unitName)
	}
	var rows []statusCount
	if err := query.Scan(&rows).Error; err != nil {
		return counts, err
	}
	for _, row := range rows {
		switch entity.WorkStatus(row.Status) {
		case entity.StatusPendingAdd:
			counts.PendingAdd = row.Count
		case entity.StatusPendingEdit:
			counts.PendingEdit = row.Count
		case entity.StatusPendingDelete:
			counts.PendingDelete = row.Count
		}
		counts.Total += row.Count
	}
	return counts, nil
}

func (r *WorkLogRepositoryImpl) RejectedCounts(ctx context.Context, employeeId string) (entity.RejectedCounts, error) {
	var counts entity.RejectedCounts
	query := r.db.WithContext(ctx).Model(&model.WorkLog{}).
		Select("status, COUNT(*) AS count").
		Where("employee_id = ?", employeeId).
		Where("status IN ?", []string{
			entity.StatusRejectedAdd.String(),
			entity.StatusRejectedEdit.String(),
			entity.StatusRejectedDelete.String(),
		}).
		Group("status")
	var rows []statusCount
	if err := query.Scan(&rows).Error; err != nil {
		return counts, err
	}
	for _, row := range rows {
		switch entity.WorkStatus(row.Status) {
		case entity.StatusRejectedAdd:
			counts.RejectedAdd = row.Count
		case entity.StatusRejectedEdit:
			counts.RejectedEdit = row.Count
		case entity.StatusRejectedDelete:
			counts.RejectedDelete = row.Count
		}
		counts.Total += row.Count
	}
	return counts, nil
}
