package dto

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type ApproveRequest struct {
	WorklogId uuid.UUID `json:"worklog_id" validate:"required"`
}

type RejectRequest struct {
	WorklogId    uuid.UUID `json:"worklog_id" validate:"required"`
	RejectReason string    `json:"reject_reason" validate:"required"`
}

// AdminWorkRow extends the history row with submitter identity so approvers
// see who filed each entry.
type AdminWorkRow struct {
	HistoryRow
	EmployeeId   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
	Position     string `json:"position"`
}

type AdminWorklogQuery struct {
	StartDate  string
	EndDate    string
	UnitName   string
	Department string
	EmployeeId string
	Status     string
	Page       int
	PerPage    int
	SortBy     string
	SortOrder  string
	CountOnly  bool
}

type AdminWorklogResponse struct {
	WorkRows    []AdminWorkRow `json:"workRows"`
	DefaultUnit *string        `json:"defaultUnit"`
	Pagination  *Pagination    `json:"pagination"`
}

type AdminWorklogCountResponse struct {
	Count int64 `json:"count"`
}

type PendingCountResponse = entity.PendingCounts

type SaveDefaultUnitRequest struct {
	UnitName string `json:"unit_name" validate:"required"`
}

type DefaultUnitResponse struct {
	DefaultUnit *string `json:"default_unit"`
}
