package entity

import (
	"time"

	"github.com/google/uuid"
)

// WorkStatus is the lifecycle status of a work entry. The wire values are
// fixed; clients and the database share them verbatim.
type WorkStatus string

const (
	StatusDraft          WorkStatus = "draft"
	StatusPendingAdd     WorkStatus = "pending_add"
	StatusPendingEdit    WorkStatus = "pending_edit"
	StatusPendingDelete  WorkStatus = "pending_delete"
	StatusApproved       WorkStatus = "approved"
	StatusRejectedAdd    WorkStatus = "rejected_add"
	StatusRejectedEdit   WorkStatus = "rejected_edit"
	StatusRejectedDelete WorkStatus = "rejected_delete"
)

func (s WorkStatus) String() string {
	return string(s)
}

// IsPending reports whether the entry is waiting on an administrator verdict.
func (s WorkStatus) IsPending() bool {
	switch s {
	case StatusPendingAdd, StatusPendingEdit, StatusPendingDelete:
		return true
	}
	return false
}

// IsRejected reports whether the entry carries an unresolved rejection.
func (s WorkStatus) IsRejected() bool {
	switch s {
	case StatusRejectedAdd, StatusRejectedEdit, StatusRejectedDelete:
		return true
	}
	return false
}

// WorkLog is a single work-hour entry. An edit request is represented as a
// second row (the shadow) whose OriginalId points at the row being edited;
// while the shadow exists both rows carry pending_edit.
type WorkLog struct {
	Id           uuid.UUID
	EmployeeId   string
	RowNumber    int
	Date         time.Time
	Model        string
	SerialNumber string
	WorkOrder    string
	PartNumber   string
	OrderNumber  string
	Quantity     *int
	UnitName     string
	WorkType     string
	Minutes      int
	Remarks      string
	Status       WorkStatus
	EditReason   *string
	OriginalId   *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsShadow reports whether the row is the edit-request copy of another row.
func (w *WorkLog) IsShadow() bool {
	return w.OriginalId != nil
}

// PendingCounts aggregates pending requests visible to an administrator.
// PendingEdit counts originals only; shadows never count twice.
type PendingCounts struct {
	PendingAdd    int64 `json:"pending_add"`
	PendingEdit   int64 `json:"pending_edit"`
	PendingDelete int64 `json:"pending_delete"`
	Total         int64 `json:"total"`
}

// RejectedCounts aggregates a submitter's unresolved rejections.
type RejectedCounts struct {
	RejectedAdd    int64 `json:"rejected_add"`
	RejectedEdit   int64 `json:"rejected_edit"`
	RejectedDelete int64 `json:"rejected_delete"`
	Total          int64 `json:"total"`
}
