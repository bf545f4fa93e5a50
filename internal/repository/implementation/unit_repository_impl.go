package implementation

import (
	"context"
	"errors"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/mapper"
	"github.com/Fusion-Mind-co/worklog-system/internal/model"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UnitMapper
}

func NewUnitRepository(db *gorm.DB) contract.UnitRepository {
	return &UnitRepositoryImpl{
		db:     db,
		mapper: mapper.NewUnitMapper(),
	}
}

func (r *UnitRepositoryImpl) CreateUnitName(ctx context.Context, unit *entity.UnitName) error {
	m := r.mapper.UnitNameToModel(unit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*unit = *r.mapper.UnitNameToEntity(m)
	return nil
}

func (r *UnitRepositoryImpl) UpdateUnitName(ctx context.Context, unit *entity.UnitName) error {
	m := r.mapper.UnitNameToModel(unit)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*unit = *r.mapper.UnitNameToEntity(m)
	return nil
}

func (r *UnitRepositoryImpl) DeleteUnitName(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UnitName{}, id).Error
}

func (r *UnitRepositoryImpl) FindUnitNames(ctx context.Context) ([]*entity.UnitName, error) {
	var models []*model.UnitName
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.UnitNamesToEntities(models), nil
}

func (r *UnitRepositoryImpl) FindUnitNameByName(ctx context.Context, name string) (*entity.UnitName, error) {
	var m model.UnitName
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UnitNameToEntity(&m), nil
}

func (r *UnitRepositoryImpl) CreateWorkType(ctx context.Context, workType *entity.WorkType) error {
	m := r.mapper.WorkTypeToModel(workType)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*workType = *r.mapper.WorkTypeToEntity(m)
	return nil
}

func (r *UnitRepositoryImpl) UpdateWorkType(ctx context.Context, workType *entity.WorkType) error {
	m := r.mapper.WorkTypeToModel(workType)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*workType = *r.mapper.WorkTypeToEntity(m)
	return nil
}

func (r *UnitRepositoryImpl) DeleteWorkType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WorkType{}, id).Error
}

func (r *UnitRepositoryImpl) FindWorkTypes(ctx context.Context) ([]*entity.WorkType, error) {
	var models []*model.WorkType
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.WorkTypesToEntities(models), nil
}

func (r *UnitRepositoryImpl) FindWorkTypeByName(ctx context.Context, name string) (*entity.WorkType, error) {
	var m model.WorkType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WorkTypeToEntity(&m), nil
}

func (r *UnitRepositoryImpl) CreateLink(ctx context.Context, link *entity.UnitWorkType) error {
	m := r.mapper.LinkToModel(link)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*link = *r.mapper.LinkToEntity(m)
	return nil
}

func (r *UnitRepositoryImpl) DeleteLinksByUnit(ctx context.Context, unitNameId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("unit_name_id = ?", unitNameId).
		Delete(&model.UnitWorkType{}).Error
}

func (r *UnitRepositoryImpl) FindLinksByUnit(ctx context.Context, unitNameId uuid.UUID) ([]*entity.UnitWorkType, error) {
	var models []*model.UnitWorkType
	err := r.db.WithContext(ctx).
		Where("unit_name_id = ?", unitNameId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.LinksToEntities(models), nil
}

// FindOptions joins units to their work types and folds the rows into one
// option per unit. Units without any linked work type still appear, with an
// empty list.
func (r *UnitRepositoryImpl) FindOptions(ctx context.Context) ([]*entity.UnitOption, error) {
	var rows []struct {
		UnitName string
		WorkType *string
	}
	err := r.db.WithContext(ctx).
		Table("unit_names").
		Select("unit_names.name AS unit_name, work_types.name AS work_type").
		Joins("LEFT JOIN unit_work_types ON unit_work_types.unit_name_id = unit_names.id").
		Joins("LEFT JOIN work_types ON work_types.id = unit_work_types.work_type_id").
		Order("unit_names.name, work_types.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	options := []*entity.UnitOption{}
	index := map[string]*entity.UnitOption{}
	for _, row := range rows {
		option, ok := index[row.UnitName]
		if !ok {
			option = &entity.UnitOption{UnitName: row.UnitName, WorkTypes: []string{}}
			index[row.UnitName] = option
			options = append(options, option)
		}
		if row.WorkType != nil {
			option.WorkTypes = append(option.WorkTypes, *row.WorkType)
		}
	}
	return options, nil
}
