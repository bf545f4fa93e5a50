package service

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUnitService interface {
	ListUnits(ctx context.Context) ([]dto.UnitNameResponse, error)
	CreateUnit(ctx context.Context, req *dto.UnitNameRequest) (*dto.UnitNameResponse, error)
	UpdateUnit(ctx context.Context, id uuid.UUID, req *dto.UnitNameRequest) (*dto.UnitNameResponse, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	ListWorkTypes(ctx context.Context) ([]dto.WorkTypeResponse, error)
	CreateWorkType(ctx context.Context, req *dto.WorkTypeRequest) (*dto.WorkTypeResponse, error)
	UpdateWorkType(ctx context.Context, id uuid.UUID, req *dto.WorkTypeRequest) (*dto.WorkTypeResponse, error)
	DeleteWorkType(ctx context.Context, id uuid.UUID) error
}

// OptionsInvalidator drops cached unit/work-type dictionaries after an admin
// mutation. Satisfied by IWorklogService.
type OptionsInvalidator interface {
	InvalidateUnitOptions()
}

type unitService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	options          OptionsInvalidator
}

func NewUnitService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	options OptionsInvalidator,
) IUnitService {
	return &unitService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		options:          options,
	}
}

func (s *unitService) invalidateOptions() {
	if s.options != nil {
		s.options.InvalidateUnitOptions()
	}
}

func (s *unitService) unitResponse(ctx context.Context, uow unitofwork.UnitOfWork, unit *entity.UnitName) (*dto.UnitNameResponse, error) {
	links, err := uow.UnitRepository().FindLinksByUnit(ctx, unit.Id)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.WorkTypeId)
	}
	return &dto.UnitNameResponse{Id: unit.Id, Name: unit.Name, WorkTypeIds: ids}, nil
}

func (s *unitService) ListUnits(ctx context.Context) ([]dto.UnitNameResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	units, err := uow.UnitRepository().FindUnitNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitNameResponse, 0, len(units))
	for _, unit := range units {
		resp, err := s.unitResponse(ctx, uow, unit)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *unitService) relink(ctx context.Context, uow unitofwork.UnitOfWork, unitId uuid.UUID, workTypeIds []uuid.UUID) error {
	if err := uow.UnitRepository().DeleteLinksByUnit(ctx, unitId); err != nil {
		return err
	}
	for _, workTypeId := range workTypeIds {
		link := &entity.UnitWorkType{
			Id:         uuid.New(),
			UnitNameId: unitId,
			WorkTypeId: workTypeId,
		}
		if err := uow.UnitRepository().CreateLink(ctx, link); err != nil {
			return err
		}
	}
	return nil
}

func (s *unitService) CreateUnit(ctx context.Context, req *dto.UnitNameRequest) (*dto.UnitNameResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UnitRepository().FindUnitNameByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidation("unit name already exists")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	unit := &entity.UnitName{Id: uuid.New(), Name: req.Name}
	if err := uow.UnitRepository().CreateUnitName(ctx, unit); err != nil {
		return nil, apperrors.WrapPersistence(err, "create unit")
	}
	if err := s.relink(ctx, uow, unit.Id, req.WorkTypeIds); err != nil {
		return nil, apperrors.WrapPersistence(err, "link unit work types")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateOptions()
	s.audit(ctx, "admin.unit_created", unit.Name)
	return &dto.UnitNameResponse{Id: unit.Id, Name: unit.Name, WorkTypeIds: req.WorkTypeIds}, nil
}

func (s *unitService) UpdateUnit(ctx context.Context, id uuid.UUID, req *dto.UnitNameRequest) (*dto.UnitNameResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	units, err := uow.UnitRepository().FindUnitNames(ctx)
	if err != nil {
		return nil, err
	}
	var unit *entity.UnitName
	for _, u := range units {
		if u.Id == id {
			unit = u
			continue
		}
		if u.Name == req.Name {
			return nil, apperrors.NewValidation("unit name already exists")
		}
	}
	if unit == nil {
		return nil, apperrors.NewNotFound("unit")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	unit.Name = req.Name
	if err := uow.UnitRepository().UpdateUnitName(ctx, unit); err != nil {
		return nil, apperrors.WrapPersistence(err, "update unit")
	}
	if err := s.relink(ctx, uow, unit.Id, req.WorkTypeIds); err != nil {
		return nil, apperrors.WrapPersistence(err, "link unit work types")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateOptions()
	s.audit(ctx, "admin.unit_updated", unit.Name)
	return &dto.UnitNameResponse{Id: unit.Id, Name: unit.Name, WorkTypeIds: req.WorkTypeIds}, nil
}

func (s *unitService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UnitRepository().DeleteLinksByUnit(ctx, id); err != nil {
		return apperrors.WrapPersistence(err, "unlink unit work types")
	}
	if err := uow.UnitRepository().DeleteUnitName(ctx, id); err != nil {
		return apperrors.WrapPersistence(err, "delete unit")
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.invalidateOptions()
	s.audit(ctx, "admin.unit_deleted", id.String())
	return nil
}

func (s *unitService) ListWorkTypes(ctx context.Context) ([]dto.WorkTypeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workTypes, err := uow.UnitRepository().FindWorkTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkTypeResponse, 0, len(workTypes))
	for _, workType := range workTypes {
		out = append(out, dto.WorkTypeResponse{Id: workType.Id, Name: workType.Name})
	}
	return out, nil
}

func (s *unitService) CreateWorkType(ctx context.Context, req *dto.WorkTypeRequest) (*dto.WorkTypeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UnitRepository().FindWorkTypeByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidation("work type already exists")
	}

	workType := &entity.WorkType{Id: uuid.New(), Name: req.Name}
	if err := uow.UnitRepository().CreateWorkType(ctx, workType); err != nil {
		return nil, apperrors.WrapPersistence(err, "create work type")
	}

	s.invalidateOptions()
	s.audit(ctx, "admin.work_type_created", workType.Name)
	return &dto.WorkTypeResponse{Id: workType.Id, Name: workType.Name}, nil
}

func (s *unitService) UpdateWorkType(ctx context.Context, id uuid.UUID, req *dto.WorkTypeRequest) (*dto.WorkTypeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workTypes, err := uow.UnitRepository().FindWorkTypes(ctx)
	if err != nil {
		return nil, err
	}
	var workType *entity.WorkType
	for _, wt := range workTypes {
		if wt.Id == id {
			workType = wt
			continue
		}
		if wt.Name == req.Name {
			return nil, apperrors.NewValidation("work type already exists")
		}
	}
	if workType == nil {
		return nil, apperrors.NewNotFound("work type")
	}

	workType.Name = req.Name
	if err := uow.UnitRepository().UpdateWorkType(ctx, workType); err != nil {
		return nil, apperrors.WrapPersistence(err, "update work type")
	}

	s.invalidateOptions()
	s.audit(ctx, "admin.work_type_updated", workType.Name)
	return &dto.WorkTypeResponse{Id: workType.Id, Name: workType.Name}, nil
}

func (s *unitService) DeleteWorkType(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.UnitRepository().DeleteWorkType(ctx, id); err != nil {
		return apperrors.WrapPersistence(err, "delete work type")
	}

	s.invalidateOptions()
	s.audit(ctx, "admin.work_type_deleted", id.String())
	return nil
}

func (s *unitService) audit(ctx context.Context, eventType, subject string) {
	if s.publisherService == nil {
		return
	}
	_ = s.publisherService.Publish(ctx, eventType, "admin", map[string]interface{}{"subject": subject})
}
