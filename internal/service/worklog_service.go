package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const unitOptionsCacheKey = "unit_options"

type IWorklogService interface {
	SaveDaily(ctx context.Context, userId uuid.UUID, req *dto.SaveWorklogRequest) (*dto.SaveWorklogResponse, error)
	GetDaily(ctx context.Context, userId uuid.UUID, dateStr string) (*dto.DailyWorklogResponse, error)
	UnitOptions(ctx context.Context) ([]*entity.UnitOption, error)
	InvalidateUnitOptions()
}

type worklogService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	optionsCache     *cache.Cache
}

func NewWorklogService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	optionsTTL time.Duration,
) IWorklogService {
	return &worklogService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		optionsCache:     cache.New(optionsTTL, 2*optionsTTL),
	}
}

func parseWorkDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidation("date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// SaveDaily replaces the draft rows of one day with the submitted batch. Rows
// of any other status are left untouched.
func (s *worklogService) SaveDaily(ctx context.Context, userId uuid.UUID, req *dto.SaveWorklogRequest) (*dto.SaveWorklogResponse, error) {
	if err := ValidateWorkRows(req.WorkRows); err != nil {
		return nil, err
	}
	workDate, err := parseWorkDate(req.WorkDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user")
	}

	logs := make([]*entity.WorkLog, 0, len(req.WorkRows))
	for _, row := range req.WorkRows {
		quantity, _ := ParseQuantity(row.Quantity)
		minutes, _ := ParseMinutes(row.Minutes)
		logs = append(logs, &entity.WorkLog{
			Id:           uuid.New(),
			EmployeeId:   user.EmployeeId,
			RowNumber:    row.Id,
			Date:         workDate,
			Model:        row.Model,
			SerialNumber: row.SerialNumber,
			WorkOrder:    row.WorkOrder,
			PartNumber:   row.PartNumber,
			OrderNumber:  row.OrderNumber,
			Quantity:     quantity,
			UnitName:     row.UnitName,
			WorkType:     row.WorkType,
			Minutes:      minutes,
			Remarks:      row.Remarks,
			Status:       entity.StatusDraft,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.WorkLogRepository().DeleteDraftsByEmployeeAndDate(ctx, user.EmployeeId, workDate); err != nil {
		return nil, apperrors.WrapPersistence(err, "delete draft rows")
	}
	if err := uow.WorkLogRepository().CreateBatch(ctx, logs); err != nil {
		return nil, apperrors.WrapPersistence(err, "insert draft rows")
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	now := time.Now()
	s.audit(ctx, "worklog.daily_saved", user.EmployeeId, map[string]interface{}{
		"date": req.WorkDate,
		"rows": len(logs),
	})

	return &dto.SaveWorklogResponse{
		Message:   "work entries saved",
		Date:      req.WorkDate,
		UpdatedAt: now.Format(time.RFC3339),
	}, nil
}

func (s *worklogService) GetDaily(ctx context.Context, userId uuid.UUID, dateStr string) (*dto.DailyWorklogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user")
	}

	targetDate := time.Now().UTC()
	if dateStr != "" {
		targetDate, err = parseWorkDate(dateStr)
		if err != nil {
			return nil, err
		}
	}

	logs, err := uow.WorkLogRepository().FindByEmployeeAndDate(ctx, user.EmployeeId, targetDate)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.DailyWorkRow, 0, len(logs))
	var latest *time.Time
	for i, log := range logs {
		quantity := ""
		if log.Quantity != nil {
			quantity = strconv.Itoa(*log.Quantity)
		}
		rows = append(rows, dto.DailyWorkRow{
			Id:           i + 1,
			Model:        log.Model,
			SerialNumber: log.SerialNumber,
			WorkOrder:    log.WorkOrder,
			PartNumber:   log.PartNumber,
			OrderNumber:  log.OrderNumber,
			Quantity:     quantity,
			UnitName:     log.UnitName,
			WorkType:     log.WorkType,
			Minutes:      strconv.Itoa(log.Minutes),
			Remarks:      log.Remarks,
			Status:       log.Status.String(),
		})
		if latest == nil || log.UpdatedAt.After(*latest) {
			updated := log.UpdatedAt
			latest = &updated
		}
	}

	var updatedAt *string
	if latest != nil {
		formatted := latest.Format(time.RFC3339)
		updatedAt = &formatted
	}

	return &dto.DailyWorklogResponse{
		WorkDate:  targetDate.Format("2006-01-02"),
		WorkRows:  rows,
		UpdatedAt: updatedAt,
	}, nil
}

// UnitOptions serves the unit to work-type dictionary from cache; the
// dictionary changes rarely and is read on every entry-form load.
func (s *worklogService) UnitOptions(ctx context.Context) ([]*entity.UnitOption, error) {
	if cached, found := s.optionsCache.Get(unitOptionsCacheKey); found {
		return cached.([]*entity.UnitOption), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	options, err := uow.UnitRepository().FindOptions(ctx)
	if err != nil {
		return nil, err
	}

	s.optionsCache.Set(unitOptionsCacheKey, options, cache.DefaultExpiration)
	return options, nil
}

// InvalidateUnitOptions drops the cached dictionary after an admin changes
// units or work types, so the next form load sees the new table.
func (s *worklogService) InvalidateUnitOptions() {
	s.optionsCache.Delete(unitOptionsCacheKey)
}

func (s *worklogService) audit(ctx context.Context, eventType, actor string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	// Best effort, the daily save already committed.
	_ = s.publisherService.Publish(ctx, eventType, actor, data)
}
