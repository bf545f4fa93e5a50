package service

import (
	"context"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// VerdictResponse is returned from every approve/reject operation. The
// pending counts are scoped to the deciding admin's default unit so the badge
// updates without another round trip.
type VerdictResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	PendingCount entity.PendingCounts `json:"pending_count"`
}

type IApprovalService interface {
	ListAdmin(ctx context.Context, adminId uuid.UUID, query dto.AdminWorklogQuery) (*dto.AdminWorklogResponse, error)
	CountAdmin(ctx context.Context, query dto.AdminWorklogQuery) (*dto.AdminWorklogCountResponse, error)
	PendingCount(ctx context.Context, adminId uuid.UUID) (*entity.PendingCounts, error)
	GetDefaultUnit(ctx context.Context, adminId uuid.UUID) (*dto.DefaultUnitResponse, error)
	SaveDefaultUnit(ctx context.Context, adminId uuid.UUID, req *dto.SaveDefaultUnitRequest) (*dto.DefaultUnitResponse, error)

	ApproveAdd(ctx context.Context, adminId uuid.UUID, req *dto.ApproveRequest) (*VerdictResponse, error)
	RejectAdd(ctx context.Context, adminId uuid.UUID, req *dto.RejectRequest) (*VerdictResponse, error)
	ApproveEdit(ctx context.Context, adminId uuid.UUID, req *dto.ApproveRequest) (*VerdictResponse, error)
	RejectEdit(ctx context.Context, adminId uuid.UUID, req *dto.RejectRequest) (*VerdictResponse, error)
	ApproveDelete(ctx context.Context, adminId uuid.UUID, req *dto.ApproveRequest) (*VerdictResponse, error)
	RejectDelete(ctx context.Context, adminId uuid.UUID, req *dto.RejectRequest) (*VerdictResponse, error)
}

type approvalService struct {
	uowFactory          unitofwork.RepositoryFactory
	notificationService INotificationService
	publisherService    IPublisherService
}

func NewApprovalService(
	uowFactory unitofwork.RepositoryFactory,
	notificationService INotificationService,
	publisherService IPublisherService,
) IApprovalService {
	return &approvalService{
		uowFactory:          uowFactory,
		notificationService: notificationService,
		publisherService:    publisherService,
	}
}

func adminFilterFromQuery(query dto.AdminWorklogQuery) contract.WorkLogFilter {
	filter := contract.WorkLogFilter{
		EmployeeIdLike: query.EmployeeId,
		Department:     normalizeFilter(query.Department),
		UnitName:       normalizeFilter(query.UnitName),
		Status:         normalizeFilter(query.Status),
		SortBy:         query.SortBy,
		SortOrder:      query.SortOrder,
	}
	if start, err := time.Parse("2006-01-02", query.StartDate); err == nil {
		filter.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", query.EndDate); err == nil {
		filter.EndDate = &end
	}
	return filter
}

func (s *approvalService) ListAdmin(ctx context.Context, adminId uuid.UUID, query dto.AdminWorklogQuery) (*dto.AdminWorklogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.UserRepository().FindById(ctx, adminId)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperrors.NewNotFound("user")
	}

	page, err := uow.WorkLogRepository().List(ctx, adminFilterFromQuery(query), query.Page, query.PerPage)
	if err != nil {
		return nil, err
	}

	// One user lookup per distinct submitter on the page.
	userCache := map[string]*entity.User{}
	rows := make([]dto.AdminWorkRow, 0, len(page.Logs))
	for _, log := range page.Logs {
		submitter, ok := userCache[log.EmployeeId]
		if !ok {
			submitter, err = uow.UserRepository().FindByEmployeeId(ctx, log.EmployeeId)
			if err != nil {
				return nil, err
			}
			userCache[log.EmployeeId] = submitter
		}
		row := dto.AdminWorkRow{
			HistoryRow: historyRowFromEntity(log),
			EmployeeId: log.EmployeeId,
		}
		if submitter != nil {
			row.EmployeeName = submitter.Name
			row.Department = submitter.DepartmentName
			row.Position = submitter.Position
		}
		rows = append(rows, row)
	}

	return &dto.AdminWorklogResponse{
		WorkRows:    rows,
		DefaultUnit: admin.DefaultUnit,
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

func (s *approvalService) CountAdmin(ctx context.Context, query dto.AdminWorklogQuery) (*dto.AdminWorklogCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.WorkLogRepository().Count(ctx, adminFilterFromQuery(query))
	if err != nil {
		return nil, err
	}
	return &dto.AdminWorklogCountResponse{Count: count}, nil
}

func (s *approvalService) PendingCount(ctx context.Context, adminId uuid.UUID) (*entity.PendingCounts, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.UserRepository().FindById(ctx, adminId)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperrors.NewNotFound("user")
	}

	counts, err := uow.WorkLogRepository().PendingCounts(ctx, admin.DefaultUnit)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (s *approvalService) GetDefaultUnit(ctx context.Context, adminId uuid.UUID) (*dto.DefaultUnitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.UserRepository().FindById(ctx, adminId)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperrors.NewNotFound("user")
	}
	return &dto.DefaultUnitResponse{DefaultUnit: admin.DefaultUnit}, nil
}

// SaveDefaultUnit stores the unit an admin watches by default. The catch-all
// filter is represented by a null default unit, so "all" cannot be saved as a
// literal value; a blank name clears the setting.
func (s *approvalService) SaveDefaultUnit(ctx context.Context, adminId uuid.UUID, req *dto.SaveDefaultUnitRequest) (*dto.DefaultUnitResponse, error) {
	if req.UnitName == "all" {
		return nil, apperrors.NewValidation("the catch-all unit cannot be saved")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.UserRepository().FindById(ctx, adminId)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperrors.NewNotFound("user")
	}

	if req.UnitName == "" {
		admin.DefaultUnit = nil
	} else {
		unit := req.UnitName
		admin.DefaultUnit = &unit
	}
	if err := uow.UserRepository().Update(ctx, admin); err != nil {
		return nil, apperrors.WrapPersistence(err, "save default unit")
	}

	return &dto.DefaultUnitResponse{DefaultUnit: admin.DefaultUnit}, nil
}

func (s *approvalService) requireAdmin(ctx context.Context, uow unitofwork.UnitOfWork, adminId uuid.UUID) (*entity.User, error) {
	admin, err := uow.UserRepository().FindById(ctx, adminId)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperrors.NewNotFound("user")
	}
	return admin, nil
}

func (s *approvalService) requireLogInStatus(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, expected entity.WorkStatus) (*entity.WorkLog, error) {
	log, err := uow.WorkLogRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, apperrors.NewNotFound("work entry")
	}
	if log.Status != expected {
		return nil, apperrors.NewConflict(expected.String(), log.Status.String())
	}
	return log, nil
}

func (s *approvalService) verdict(ctx context.Context, uow unitofwork.UnitOfWork, admin *entity.User, message string) (*VerdictResponse, error) {
	counts, err := uow.WorkLogRepository().PendingCounts(ctx, admin.DefaultUnit)
	if err != nil {
		return nil, err
	}
	return &VerdictResponse{Success: true, Message: message, PendingCount: counts}, nil
}

func (s *approvalService) notifySubmitter(ctx context.Context, uow unitofwork.UnitOfWork, log *entity.WorkLog, requestType string, approved bool, rejectReason string) {
	submitter, err := uow.UserRepository().FindByEmployeeId(ctx, log.EmployeeId)
	if err != nil || submitter == nil {
		return
	}
	if approved {
		s.notificationService.NotifyApproved(ctx, submitter, log.Id, log.UnitName, requestType)
	} else {
		s.notificationService.NotifyRejected(ctx, submitter, log.Id, log.UnitName, requestType, rejectReason)
	}
}

func (s *approvalService) ApproveAdd(ctx context.Context, adminId uuid.UUID, req *dto.ApproveRequest) (*VerdictResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := s.requireAdmin(ctx, uow, adminId)
	if err != nil {
		return nil, err
	}
	log, err := s.requireLogInStatus(ctx, uow, req.WorklogId, entity.StatusPendingAdd)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	log.Status = entity.StatusApproved
	log.EditReason = nil
	if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
		return nil, apperrors.WrapPersistence(err, "approve add request")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifySubmitter(ctx, uow, log, dto.RequestTypeAdd, true, "")
	s.audit(ctx, "worklog.add_approved", admin.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})
	return s.verdict(ctx, uow, admin, "add request approved")
}

func (s *approvalService) RejectAdd(ctx context.Context, adminId uuid.UUID, req *dto.RejectRequest) (*VerdictResponse, error) {
	if err := ValidateReason(req.RejectReason); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := s.requireAdmin(ctx, uow, adminId)
	if err != nil {
		return nil, err
	}
	log, err := s.requireLogInStatus(ctx, uow, req.WorklogId, entity.StatusPendingAdd)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	reason := req.RejectReason
	log.Status = entity.StatusRejectedAdd
	log.EditReason = &reason
	if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
		return nil, apperrors.WrapPersistence(err, "reject add request")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifySubmitter(ctx, uow, log, dto.RequestTypeAdd, false, req.RejectReason)
	s.audit(ctx, "worklog.add_rejected", admin.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})
	return s.verdict(ctx, uow, admin, "add request rejected")
}

// ApproveEdit copies the shadow's proposed values onto the original, marks it
// approved and discards the shadow. The id in the request names the shadow.
func (s *approvalService) ApproveEdit(ctx context.Context, adminId uuid.UUID, req *dto.ApproveRequest) (*VerdictResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := s.requireAdmin(ctx, uow, adminId)
	if err != nil {
		return nil, err
	}
	shadow, err := s.requireLogInStatus(ctx, uow, req.WorklogId, entity.StatusPendingEdit)
	if err != nil {
		return nil, err
	}
	if shadow.OriginalId == nil {
		return nil, apperrors.NewNotFound("original work entry")
	}
	original, err := uow.WorkLogRepository().FindById(ctx, *shadow.OriginalId)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperrors.NewNotFound("original work entry")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	original.Date = shadow.Date
	original.Model = shadow.Model
	original.SerialNumber = shadow.SerialNumber
	original.WorkOrder = shadow.WorkOrder
	original.PartNumber = shadow.PartNumber
	original.OrderNumber = shadow.OrderNumber
	original.Quantity = shadow.Quantity
	original.UnitName = shadow.UnitName
	original.WorkType = shadow.WorkType
	original.Minutes = shadow.Minutes
	original.Remarks = shadow.Remarks
	original.Status = entity.StatusApproved
	original.EditReason = nil
	if err := uow.WorkLogRepository().Update(ctx, original); err != nil {
		return nil, apperrors.WrapPersistence(err, "apply edit request")
	}
	if err := uow.WorkLogRepository().Delete(ctx, shadow.Id); err != nil {
		return nil, apperrors.WrapPersistence(err, "discard edit shadow")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifySubmitter(ctx, uow, original, dto.RequestTypeEdit, true, "")
	s.audit(ctx, "worklog.edit_approved", admin.EmployeeId, map[string]interface{}{"worklog_id": original.Id.String()})
	return s.verdict(ctx, uow, admin, "edit request approved")
}

func (s *approvalService) RejectEdit(ctx context.Context, adminId uuid.UUID, req *dto.RejectRequest) (*VerdictResponse, error) {
	if err := ValidateReason(req.RejectReason); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := s.requireAdmin(ctx, uow, adminId)
	if err != nil {
		return nil, err
	}
	shadow, err := s.requireLogInStatus(ctx, uow, req.WorklogId, entity.StatusPendingEdit)
	if err != nil {
		return nil, err
	}
	if shadow.OriginalId == nil {
		return nil, apperrors.NewNotFound("original work entry")
	}
	original, err := uow.WorkLogRepository().FindById(ctx, *shadow.OriginalId)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperrors.NewNotFound("original work entry")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	reason := req.RejectReason
	original.Status = entity.StatusRejectedEdit
	original.EditReason = &reason
	if err := uow.WorkLogRepository().Update(ctx, original); err != nil {
		return nil, apperrors.WrapPersistence(err, "reject edit request")
	}
	if err := uow.WorkLogRepository().Delete(ctx, shadow.Id); err != nil {
		return nil, apperrors.WrapPersistence(err, "discard edit shadow")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifySubmitter(ctx, uow, original, dto.RequestTypeEdit, false, req.RejectReason)
	s.audit(ctx, "worklog.edit_rejected", admin.EmployeeId, map[string]interface{}{"worklog_id": original.Id.String()})
	return s.verdict(ctx, uow, admin, "edit request rejected")
}

// ApproveDelete removes the row for good.
func (s *approvalService) ApproveDelete(ctx context.Context, adminId uuid.UUID, req *dto.ApproveRequest) (*VerdictResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := s.requireAdmin(ctx, uow, adminId)
	if err != nil {
		return nil, err
	}
	log, err := s.requireLogInStatus(ctx, uow, req.WorklogId, entity.StatusPendingDelete)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.WorkLogRepository().Delete(ctx, log.Id); err != nil {
		return nil, apperrors.WrapPersistence(err, "approve delete request")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifySubmitter(ctx, uow, log, dto.RequestTypeDelete, true, "")
	s.audit(ctx, "worklog.delete_approved", admin.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})
	return s.verdict(ctx, uow, admin, "delete request approved")
}

func (s *approvalService) RejectDelete(ctx context.Context, adminId uuid.UUID, req *dto.RejectRequest) (*VerdictResponse, error) {
	if err := ValidateReason(req.RejectReason); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := s.requireAdmin(ctx, uow, adminId)
	if err != nil {
		return nil, err
	}
	log, err := s.requireLogInStatus(ctx, uow, req.WorklogId, entity.StatusPendingDelete)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	reason := req.RejectReason
	log.Status = entity.StatusRejectedDelete
	log.EditReason = &reason
	if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
		return nil, apperrors.WrapPersistence(err, "reject delete request")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifySubmitter(ctx, uow, log, dto.RequestTypeDelete, false, req.RejectReason)
	s.audit(ctx, "worklog.delete_rejected", admin.EmployeeId, map[string]interface{}{"worklog_id": log.Id.String()})
	return s.verdict(ctx, uow, admin, "delete request rejected")
}

func (s *approvalService) audit(ctx context.Context, eventType, actor string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	_ = s.publisherService.Publish(ctx, eventType, actor, data)
}
