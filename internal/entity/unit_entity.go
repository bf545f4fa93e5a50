package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnitName is a production unit a work entry can be booked against.
type UnitName struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// WorkType is a category of work (assembly, inspection, rework, ...).
type WorkType struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// UnitWorkType links a unit to a work type it offers.
type UnitWorkType struct {
	Id         uuid.UUID
	UnitNameId uuid.UUID
	WorkTypeId uuid.UUID
	CreatedAt  time.Time
}

// UnitOption is the denormalized dictionary row served to entry forms.
type UnitOption struct {
	UnitName  string   `json:"unitName"`
	WorkTypes []string `json:"workTypes"`
}
