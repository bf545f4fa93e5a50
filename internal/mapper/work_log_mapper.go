package mapper

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/model"
)

type WorkLogMapper struct{}

func NewWorkLogMapper() *WorkLogMapper {
	return &WorkLogMapper{}
}

func (m *WorkLogMapper) ToEntity(w *model.WorkLog) *entity.WorkLog {
	if w == nil {
		return nil
	}

	return &entity.WorkLog{
		Id:           w.Id,
		EmployeeId:   w.EmployeeId,
		RowNumber:    w.RowNumber,
		Date:         w.Date,
		Model:        w.Model,
		SerialNumber: w.SerialNumber,
		WorkOrder:    w.WorkOrder,
		PartNumber:   w.PartNumber,
		OrderNumber:  w.OrderNumber,
		Quantity:     w.Quantity,
		UnitName:     w.UnitName,
		WorkType:     w.WorkType,
		Minutes:      w.Minutes,
		Remarks:      w.Remarks,
		Status:       entity.WorkStatus(w.Status),
		EditReason:   w.EditReason,
		OriginalId:   w.OriginalId,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func (m *WorkLogMapper) ToModel(w *entity.WorkLog) *model.WorkLog {
	if w == nil {
		return nil
	}

	return &model.WorkLog{
		Id:           w.Id,
		EmployeeId:   w.EmployeeId,
		RowNumber:    w.RowNumber,
		Date:         w.Date,
		Model:        w.Model,
		SerialNumber: w.SerialNumber,
		WorkOrder:    w.WorkOrder,
		PartNumber:   w.PartNumber,
		OrderNumber:  w.OrderNumber,
		Quantity:     w.Quantity,
		UnitName:     w.UnitName,
		WorkType:     w.WorkType,
		Minutes:      w.Minutes,
		Remarks:      w.Remarks,
		Status:       w.Status.String(),
		EditReason:   w.EditReason,
		OriginalId:   w.OriginalId,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func (m *WorkLogMapper) ToEntities(logs []*model.WorkLog) []*entity.WorkLog {
	entities := make([]*entity.WorkLog, len(logs))
	for i, w := range logs {
		entities[i] = m.ToEntity(w)
	}
	return entities
}

func (m *WorkLogMapper) ToModels(logs []*entity.WorkLog) []*model.WorkLog {
	models := make([]*model.WorkLog, len(logs))
	for i, w := range logs {
		models[i] = m.ToModel(w)
	}
	return models
}
