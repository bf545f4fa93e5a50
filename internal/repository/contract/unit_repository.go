package contract

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type UnitRepository interface {
	CreateUnitName(ctx context.Context, unit *entity.UnitName) error
	UpdateUnitName(ctx context.Context, unit *entity.UnitName) error
	DeleteUnitName(ctx context.Context, id uuid.UUID) error
	FindUnitNames(ctx context.Context) ([]*entity.UnitName, error)
	FindUnitNameByName(ctx context.Context, name string) (*entity.UnitName, error)

	CreateWorkType(ctx context.Context, workType *entity.WorkType) error
	UpdateWorkType(ctx context.Context, workType *entity.WorkType) error
	DeleteWorkType(ctx context.Context, id uuid.UUID) error
	FindWorkTypes(ctx context.Context) ([]*entity.WorkType, error)
	FindWorkTypeByName(ctx context.Context, name string) (*entity.WorkType, error)

	CreateLink(ctx context.Context, link *entity.UnitWorkType) error
	DeleteLinksByUnit(ctx context.Context, unitNameId uuid.UUID) error
	FindLinksByUnit(ctx context.Context, unitNameId uuid.UUID) ([]*entity.UnitWorkType, error)

	// FindOptions returns the denormalized unit to work-type dictionary.
	FindOptions(ctx context.Context) ([]*entity.UnitOption, error)
}
