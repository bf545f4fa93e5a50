package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type UnitRepository struct {
	mu        sync.Mutex
	units     map[uuid.UUID]*entity.UnitName
	workTypes map[uuid.UUID]*entity.WorkType
	links     map[uuid.UUID]*entity.UnitWorkType
}

func NewUnitRepository() *UnitRepository {
	return &UnitRepository{
		units:     map[uuid.UUID]*entity.UnitName{},
		workTypes: map[uuid.UUID]*entity.WorkType{},
		links:     map[uuid.UUID]*entity.UnitWorkType{},
	}
}

func (r *UnitRepository) CreateUnitName(ctx context.Context, unit *entity.UnitName) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if unit.Id == uuid.Nil {
		unit.Id = uuid.New()
	}
	if unit.CreatedAt.IsZero() {
		unit.CreatedAt = time.Now()
	}
	c := *unit
	r.units[unit.Id] = &c
	return nil
}

func (r *UnitRepository) UpdateUnitName(ctx context.Context, unit *entity.UnitName) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *unit
	r.units[unit.Id] = &c
	return nil
}

func (r *UnitRepository) DeleteUnitName(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.units, id)
	return nil
}

func (r *UnitRepository) FindUnitNames(ctx context.Context) ([]*entity.UnitName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UnitName
	for _, u := range r.units {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UnitRepository) FindUnitNameByName(ctx context.Context, name string) (*entity.UnitName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.units {
		if u.Name == name {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UnitRepository) CreateWorkType(ctx context.Context, workType *entity.WorkType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if workType.Id == uuid.Nil {
		workType.Id = uuid.New()
	}
	if workType.CreatedAt.IsZero() {
		workType.CreatedAt = time.Now()
	}
	c := *workType
	r.workTypes[workType.Id] = &c
	return nil
}

func (r *UnitRepository) UpdateWorkType(ctx context.Context, workType *entity.WorkType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *workType
	r.workTypes[workType.Id] = &c
	return nil
}

func (r *UnitRepository) DeleteWorkType(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workTypes, id)
	return nil
}

func (r *UnitRepository) FindWorkTypes(ctx context.Context) ([]*entity.WorkType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WorkType
	for _, w := range r.workTypes {
		c := *w
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UnitRepository) FindWorkTypeByName(ctx context.Context, name string) (*entity.WorkType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workTypes {
		if w.Name == name {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UnitRepository) CreateLink(ctx context.Context, link *entity.UnitWorkType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if link.Id == uuid.Nil {
		link.Id = uuid.New()
	}
	c := *link
	r.links[link.Id] = &c
	return nil
}

func (r *UnitRepository) DeleteLinksByUnit(ctx context.Context, unitNameId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.links {
		if l.UnitNameId == unitNameId {
			delete(r.links, id)
		}
	}
	return nil
}

func (r *UnitRepository) FindLinksByUnit(ctx context.Context, unitNameId uuid.UUID) ([]*entity.UnitWorkType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UnitWorkType
	for _, l := range r.links {
		if l.UnitNameId == unitNameId {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *UnitRepository) FindOptions(ctx context.Context) ([]*entity.UnitOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var units []*entity.UnitName
	for _, u := range r.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })

	var options []*entity.UnitOption
	for _, u := range units {
		option := &entity.UnitOption{UnitName: u.Name, WorkTypes: []string{}}
		for _, l := range r.links {
			if l.UnitNameId != u.Id {
				continue
			}
			if w, ok := r.workTypes[l.WorkTypeId]; ok {
				option.WorkTypes = append(option.WorkTypes, w.Name)
			}
		}
		sort.Strings(option.WorkTypes)
		options = append(options, option)
	}
	return options, nil
}
