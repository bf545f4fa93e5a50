package mapper

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/model"
)

type UnitMapper struct{}

func NewUnitMapper() *UnitMapper {
	return &UnitMapper{}
}

func (m *UnitMapper) UnitNameToEntity(u *model.UnitName) *entity.UnitName {
	if u == nil {
		return nil
	}
	return &entity.UnitName{Id: u.Id, Name: u.Name, CreatedAt: u.CreatedAt}
}

func (m *UnitMapper) UnitNameToModel(u *entity.UnitName) *model.UnitName {
	if u == nil {
		return nil
	}
	return &model.UnitName{Id: u.Id, Name: u.Name, CreatedAt: u.CreatedAt}
}

func (m *UnitMapper) UnitNamesToEntities(units []*model.UnitName) []*entity.UnitName {
	entities := make([]*entity.UnitName, len(units))
	for i, u := range units {
		entities[i] = m.UnitNameToEntity(u)
	}
	return entities
}

func (m *UnitMapper) WorkTypeToEntity(w *model.WorkType) *entity.WorkType {
	if w == nil {
		return nil
	}
	return &entity.WorkType{Id: w.Id, Name: w.Name, CreatedAt: w.CreatedAt}
}

func (m *UnitMapper) WorkTypeToModel(w *entity.WorkType) *model.WorkType {
	if w == nil {
		return nil
	}
	return &model.WorkType{Id: w.Id, Name: w.Name, CreatedAt: w.CreatedAt}
}

func (m *UnitMapper) WorkTypesToEntities(types []*model.WorkType) []*entity.WorkType {
	entities := make([]*entity.WorkType, len(types))
	for i, w := range types {
		entities[i] = m.WorkTypeToEntity(w)
	}
	return entities
}

func (m *UnitMapper) LinkToEntity(l *model.UnitWorkType) *entity.UnitWorkType {
	if l == nil {
		return nil
	}
	return &entity.UnitWorkType{Id: l.Id, UnitNameId: l.UnitNameId, WorkTypeId: l.WorkTypeId, CreatedAt: l.CreatedAt}
}

func (m *UnitMapper) LinkToModel(l *entity.UnitWorkType) *model.UnitWorkType {
	if l == nil {
		return nil
	}
	return &model.UnitWorkType{Id: l.Id, UnitNameId: l.UnitNameId, WorkTypeId: l.WorkTypeId, CreatedAt: l.CreatedAt}
}

func (m *UnitMapper) LinksToEntities(links []*model.UnitWorkType) []*entity.UnitWorkType {
	entities := make([]*entity.UnitWorkType, len(links))
	for i, l := range links {
		entities[i] = m.LinkToEntity(l)
	}
	return entities
}
