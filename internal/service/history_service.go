package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IHistoryService interface {
	GetHistory(ctx context.Context, userId uuid.UUID, query dto.HistoryQuery) (*dto.HistoryResponse, error)
	FilterOptions(ctx context.Context, userId uuid.UUID) (*dto.FilterOptionsResponse, error)
	Add(ctx context.Context, userId uuid.UUID, req *dto.AddWorklogRequest) (*dto.HistoryRow, error)
	Edit(ctx context.Context, userId uuid.UUID, req *dto.EditWorklogRequest) error
	Delete(ctx context.Context, userId uuid.UUID, req *dto.DeleteWorklogRequest) error
	Cancel(ctx context.Context, userId uuid.UUID, req *dto.CancelWorklogRequest) error
	CancelRejectedAdd(ctx context.Context, userId uuid.UUID, req *dto.CancelRejectedRequest) error
	CancelRejectedDelete(ctx context.Context, userId uuid.UUID, req *dto.CancelRejectedRequest) error
	Resubmit(ctx context.Context, userId uuid.UUID, req *dto.ResubmitWorklogRequest) error
}

type historyService struct {
	uowFactory          unitofwork.RepositoryFactory
	notificationService INotificationService
	publisherService    IPublisherService
}

func NewHistoryService(
	uowFactory unitofwork.RepositoryFactory,
	notificationService INotificationService,
	publisherService IPublisherService,
) IHistoryService {
	return &historyService{
		uowFactory:          uowFactory,
		notificationService: notificationService,
		publisherService:    publisherService,
	}
}

func historyRowFromEntity(log *entity.WorkLog) dto.HistoryRow {
	quantity := ""
	if log.Quantity != nil {
		quantity = strconv.Itoa(*log.Quantity)
	}
	editReason := ""
	if log.EditReason != nil {
		editReason = *log.EditReason
	}
	updated := log.UpdatedAt.Format(time.RFC3339)
	return dto.HistoryRow{
		Id:           log.Id,
		Date:         log.Date.Format("2006-01-02"),
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
		EditReason:   editReason,
		OriginalId:   log.OriginalId,
		UpdatedAt:    &updated,
	}
}

func (s *historyService) requireUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user")
	}
	return user, nil
}

// requireOwnedLog loads a row and checks it belongs to the caller.
func requireOwnedLog(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, id uuid.UUID) (*entity.WorkLog, error) {
	log, err := uow.WorkLogRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, apperrors.NewNotFound("work entry")
	}
	if log.EmployeeId != user.EmployeeId {
		return nil, apperrors.NewForbidden("not the owner of this work entry")
	}
	return log, nil
}

func (s *historyService) GetHistory(ctx context.Context, userId uuid.UUID, query dto.HistoryQuery) (*dto.HistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	filter := contract.WorkLogFilter{
		EmployeeId: user.EmployeeId,
		Model:      normalizeFilter(query.Model),
		WorkType:   normalizeFilter(query.WorkType),
		UnitName:   normalizeFilter(query.UnitName),
		Status:     normalizeFilter(query.Status),
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}
	if start, err := time.Parse("2006-01-02", query.StartDate); err == nil {
		filter.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", query.EndDate); err == nil {
		filter.EndDate = &end
	}

	page, err := uow.WorkLogRepository().List(ctx, filter, query.Page, query.PerPage)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.HistoryRow, 0, len(page.Logs))
	var latest *time.Time
	for _, log := range page.Logs {
		rows = append(rows, historyRowFromEntity(log))
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

	return &dto.HistoryResponse{
		WorkRows:  rows,
		UpdatedAt: updatedAt,
		Pagination: &dto.Pagination{
			TotalItems:  page.TotalItems,
			TotalPages:  page.TotalPages,
			CurrentPage: page.CurrentPage,
			PerPage:     page.PerPage,
			HasPrev:     page.HasPrev,
			HasNext:     page.HasNext,
		},
	}, nil
}

// normalizeFilter treats the UI's "all" sentinel as no filter.
func normalizeFilter(value string) string {
	if value == "all" {
		return ""
	}
	return value
}

func (s *historyService) FilterOptions(ctx context.Context, userId uuid.UUID) (*dto.FilterOptionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	models, err := uow.WorkLogRepository().DistinctModels(ctx, user.EmployeeId)
	if err != nil {
		return nil, err
	}
	workTypes, err := uow.WorkLogRepository().DistinctWorkTypes(ctx, user.EmployeeId)
	if err != nil {
		return nil, err
	}

	return &dto.FilterOptionsResponse{Models: models, WorkTypes: workTypes}, nil
}

func (s *historyService) Add(ctx context.Context, userId uuid.UUID, req *dto.AddWorklogRequest) (*dto.HistoryRow, error) {
	if err := ValidateReason(req.EditReason); err != nil {
		return nil, err
	}
	date, err := parseWorkDate(req.Date)
	if err != nil {
		return nil, err
	}
	minutes, err := ParseMinutes(req.Minutes)
	if err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	quantity, err := ParseQuantity(req.Quantity)
	if err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	reason := req.EditReason
	log := &entity.WorkLog{
		Id:           uuid.New(),
		EmployeeId:   user.EmployeeId,
		Date:         date,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		WorkOrder:    req.WorkOrder,
		PartNumber:   req.PartNumber,
		OrderNumber:  req.OrderNumber,
		Quantity:     quantity,
		UnitName:     req.UnitName,
		WorkType:     req.WorkType,
		Minutes:      minutes,
		Remarks:      req.Remarks,
		Status:       entity.StatusPendingAdd,
		EditReason:   &reason,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.WorkLogRepository().Create(ctx, log); err != nil {
		return nil, apperrors.WrapPersistence(err, "create add request")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notificationService.NotifyWorklogRequest(ctx, user, log.Id, log.UnitName, dto.RequestTypeAdd)
	s.audit(ctx, "worklog.add_requested", user.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})

	row := historyRowFromEntity(log)
	return &row, nil
}

// Edit files an edit request: any previous shadow of the row is discarded
// (last writer wins), a new shadow carries the proposed values, and the
// original is parked in pending_edit.
func (s *historyService) Edit(ctx context.Context, userId uuid.UUID, req *dto.EditWorklogRequest) error {
	if err := ValidateReason(req.EditReason); err != nil {
		return err
	}
	date, err := parseWorkDate(req.Date)
	if err != nil {
		return err
	}
	minutes, err := ParseMinutes(req.Minutes)
	if err != nil {
		return apperrors.NewValidation(err.Error())
	}
	quantity, err := ParseQuantity(req.Quantity)
	if err != nil {
		return apperrors.NewValidation(err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return err
	}
	original, err := requireOwnedLog(ctx, uow, user, req.Id)
	if err != nil {
		return err
	}

	reason := req.EditReason
	originalId := original.Id
	shadow := &entity.WorkLog{
		Id:           uuid.New(),
		EmployeeId:   user.EmployeeId,
		RowNumber:    original.RowNumber,
		Date:         date,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		WorkOrder:    req.WorkOrder,
		PartNumber:   req.PartNumber,
		OrderNumber:  req.OrderNumber,
		Quantity:     quantity,
		UnitName:     req.UnitName,
		WorkType:     req.WorkType,
		Minutes:      minutes,
		Remarks:      req.Remarks,
		Status:       entity.StatusPendingEdit,
		EditReason:   &reason,
		OriginalId:   &originalId,
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.WorkLogRepository().DeleteShadowsOf(ctx, original.Id); err != nil {
		return apperrors.WrapPersistence(err, "discard previous edit request")
	}
	if err := uow.WorkLogRepository().Create(ctx, shadow); err != nil {
		return apperrors.WrapPersistence(err, "create edit request")
	}
	original.Status = entity.StatusPendingEdit
	if err := uow.WorkLogRepository().Update(ctx, original); err != nil {
		return apperrors.WrapPersistence(err, "mark original pending_edit")
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.notificationService.NotifyWorklogRequest(ctx, user, original.Id, shadow.UnitName, dto.RequestTypeEdit)
	s.audit(ctx, "worklog.edit_requested", user.EmployeeId, map[string]interface{}{"worklog_id": original.Id.String()})
	return nil
}

func (s *historyService) Delete(ctx context.Context, userId uuid.UUID, req *dto.DeleteWorklogRequest) error {
	if err := ValidateReason(req.EditReason); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return err
	}
	log, err := requireOwnedLog(ctx, uow, user, req.Id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	reason := req.EditReason
	log.Status = entity.StatusPendingDelete
	log.EditReason = &reason
	if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
		return apperrors.WrapPersistence(err, "create delete request")
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.notificationService.NotifyWorklogRequest(ctx, user, log.Id, log.UnitName, dto.RequestTypeDelete)
	s.audit(ctx, "worklog.delete_requested", user.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})
	return nil
}

// Cancel withdraws a pending request. The behavior depends on the request
// kind named in the payload.
func (s *historyService) Cancel(ctx context.Context, userId uuid.UUID, req *dto.CancelWorklogRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	var unitName string
	switch entity.WorkStatus(req.Status) {
	case entity.StatusPendingEdit:
		// req.Id names the shadow; the original comes back to draft.
		shadow, err := requireOwnedLog(ctx, uow, user, req.Id)
		if err != nil {
			return err
		}
		// Fall back to the shadow's own back reference when the client
		// omits the original id.
		originalId := req.OriginalId
		if originalId == nil {
			originalId = shadow.OriginalId
		}
		if originalId == nil {
			return apperrors.NewValidation("originalId is required to cancel an edit request")
		}
		original, err := requireOwnedLog(ctx, uow, user, *originalId)
		if err != nil {
			return err
		}
		unitName = original.UnitName
		if err := uow.WorkLogRepository().Delete(ctx, shadow.Id); err != nil {
			return apperrors.WrapPersistence(err, "delete edit shadow")
		}
		original.Status = entity.StatusDraft
		original.EditReason = nil
		if err := uow.WorkLogRepository().Update(ctx, original); err != nil {
			return apperrors.WrapPersistence(err, "restore original to draft")
		}

	case entity.StatusPendingDelete, entity.StatusRejectedEdit:
		log, err := requireOwnedLog(ctx, uow, user, req.Id)
		if err != nil {
			return err
		}
		if log.Status != entity.WorkStatus(req.Status) {
			return apperrors.NewConflict(req.Status, log.Status.String())
		}
		unitName = log.UnitName
		log.Status = entity.StatusDraft
		log.EditReason = nil
		if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
			return apperrors.WrapPersistence(err, "restore row to draft")
		}

	case entity.StatusPendingAdd:
		log, err := requireOwnedLog(ctx, uow, user, req.Id)
		if err != nil {
			return err
		}
		if log.Status != entity.StatusPendingAdd {
			return apperrors.NewConflict(entity.StatusPendingAdd.String(), log.Status.String())
		}
		unitName = log.UnitName
		if err := uow.WorkLogRepository().Delete(ctx, log.Id); err != nil {
			return apperrors.WrapPersistence(err, "delete add request")
		}

	default:
		return apperrors.NewValidation("unknown request status")
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.notificationService.NotifyWorklogRequest(ctx, user, req.Id, unitName, dto.RequestTypeCancel)
	s.audit(ctx, "worklog.request_cancelled", user.EmployeeId, map[string]interface{}{
		"worklog_id": req.Id.String(),
		"status":     req.Status,
	})
	return nil
}

// CancelRejectedAdd dismisses a rejected add; the row never existed as far as
// approvals are concerned, so it is removed outright.
func (s *historyService) CancelRejectedAdd(ctx context.Context, userId uuid.UUID, req *dto.CancelRejectedRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return err
	}
	log, err := requireOwnedLog(ctx, uow, user, req.Id)
	if err != nil {
		return err
	}
	if log.Status != entity.StatusRejectedAdd {
		return apperrors.NewConflict(entity.StatusRejectedAdd.String(), log.Status.String())
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.WorkLogRepository().Delete(ctx, log.Id); err != nil {
		return apperrors.WrapPersistence(err, "delete rejected add")
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.notificationService.NotifyWorklogRequest(ctx, user, log.Id, log.UnitName, dto.RequestTypeRejectedCancel)
	s.audit(ctx, "worklog.rejected_add_dismissed", user.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})
	return nil
}

func (s *historyService) CancelRejectedDelete(ctx context.Context, userId uuid.UUID, req *dto.CancelRejectedRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return err
	}
	log, err := requireOwnedLog(ctx, uow, user, req.Id)
	if err != nil {
		return err
	}
	if log.Status != entity.StatusRejectedDelete {
		return apperrors.NewConflict(entity.StatusRejectedDelete.String(), log.Status.String())
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	log.Status = entity.StatusDraft
	log.EditReason = nil
	if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
		return apperrors.WrapPersistence(err, "restore rejected delete to draft")
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.notificationService.NotifyWorklogRequest(ctx, user, log.Id, log.UnitName, dto.RequestTypeRejectedCancel)
	s.audit(ctx, "worklog.rejected_delete_dismissed", user.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})
	return nil
}

// Resubmit retries a rejected request. A rejected add is overwritten in place
// and resubmitted; a rejected edit re-runs the edit path against the original.
func (s *historyService) Resubmit(ctx context.Context, userId uuid.UUID, req *dto.ResubmitWorklogRequest) error {
	if err := ValidateReason(req.EditReason); err != nil {
		return err
	}
	date, err := parseWorkDate(req.Date)
	if err != nil {
		return err
	}
	minutes, err := ParseMinutes(req.Minutes)
	if err != nil {
		return apperrors.NewValidation(err.Error())
	}
	quantity, err := ParseQuantity(req.Quantity)
	if err != nil {
		return apperrors.NewValidation(err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.requireUser(ctx, uow, userId)
	if err != nil {
		return err
	}
	log, err := requireOwnedLog(ctx, uow, user, req.Id)
	if err != nil {
		return err
	}

	status := log.Status
	if req.OriginalStatus != "" {
		status = entity.WorkStatus(req.OriginalStatus)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	reason := req.EditReason
	var requestType string
	switch status {
	case entity.StatusRejectedAdd:
		requestType = dto.RequestTypeAdd
		log.Date = date
		log.Model = req.Model
		log.SerialNumber = req.SerialNumber
		log.WorkOrder = req.WorkOrder
		log.PartNumber = req.PartNumber
		log.OrderNumber = req.OrderNumber
		if quantity != nil {
			log.Quantity = quantity
		}
		log.UnitName = req.UnitName
		log.WorkType = req.WorkType
		log.Minutes = minutes
		log.Remarks = req.Remarks
		log.Status = entity.StatusPendingAdd
		log.EditReason = &reason
		if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
			return apperrors.WrapPersistence(err, "resubmit add request")
		}

	case entity.StatusRejectedEdit:
		requestType = dto.RequestTypeEdit
		if err := uow.WorkLogRepository().DeleteShadowsOf(ctx, log.Id); err != nil {
			return apperrors.WrapPersistence(err, "discard previous edit request")
		}
		originalId := log.Id
		shadow := &entity.WorkLog{
			Id:           uuid.New(),
			EmployeeId:   user.EmployeeId,
			RowNumber:    log.RowNumber,
			Date:         date,
			Model:        req.Model,
			SerialNumber: req.SerialNumber,
			WorkOrder:    req.WorkOrder,
			PartNumber:   req.PartNumber,
			OrderNumber:  req.OrderNumber,
			Quantity:     quantity,
			UnitName:     req.UnitName,
			WorkType:     req.WorkType,
			Minutes:      minutes,
			Remarks:      req.Remarks,
			Status:       entity.StatusPendingEdit,
			EditReason:   &reason,
			OriginalId:   &originalId,
		}
		if err := uow.WorkLogRepository().Create(ctx, shadow); err != nil {
			return apperrors.WrapPersistence(err, "recreate edit request")
		}
		log.Status = entity.StatusPendingEdit
		if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
			return apperrors.WrapPersistence(err, "mark original pending_edit")
		}

	default:
		return apperrors.NewConflict("rejected_add or rejected_edit", status.String())
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.notificationService.NotifyWorklogRequest(ctx, user, log.Id, req.UnitName, requestType)
	s.audit(ctx, "worklog.resubmitted", user.EmployeeId, map[string]interface{}{
		"worklog_id": log.Id.String(),
		"type":       requestType,
	})
	return nil
}

func (s *historyService) audit(ctx context.Context, eventType, actor string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	_ = s.publisherService.Publish(ctx, eventType, actor, data)
}
