package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEmployee struct {
	EmployeeId string
}

func (s ByEmployee) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_id = ?", s.EmployeeId)
}

type ByDate struct {
	Date time.Time
}

func (s ByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date = ?", s.Date.Format("2006-01-02"))
}

type FromDate struct {
	Start time.Time
}

func (s FromDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date >= ?", s.Start.Format("2006-01-02"))
}

type UntilDate struct {
	End time.Time
}

func (s UntilDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date <= ?", s.End.Format("2006-01-02"))
}

type ByEmployeeLike struct {
	Pattern string
}

func (s ByEmployeeLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("work_logs.employee_id LIKE ?", "%"+s.Pattern+"%")
}

// ByDepartment joins the owning user row to filter on department.
type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN users ON users.employee_id = work_logs.employee_id").
		Where("users.department_name = ?", s.Department)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

type ByUnitName struct {
	UnitName string
}

func (s ByUnitName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("unit_name = ?", s.UnitName)
}

// OriginalsOnly hides edit shadows: a pending_edit row is listed only when it
// is the original of the pair.
type OriginalsOnly struct{}

func (s OriginalsOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ? OR original_id IS NULL", "pending_edit")
}

// ShadowsOf selects the pending edit copies of an original row.
type ShadowsOf struct {
	OriginalID uuid.UUID
}

func (s ShadowsOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("original_id = ? AND status = ?", s.OriginalID, "pending_edit")
}

// PageWithShadows selects the rows of a page together with the edit shadows
// belonging to them.
type PageWithShadows struct {
	PageIDs []uuid.UUID
}

func (s PageWithShadows) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ? OR original_id IN ?", s.PageIDs, s.PageIDs)
}
