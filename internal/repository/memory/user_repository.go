package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*entity.User
	tokens map[uuid.UUID]*entity.PasswordResetToken
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  map[uuid.UUID]*entity.User{},
		tokens: map[uuid.UUID]*entity.PasswordResetToken{},
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.Email != nil {
		e := *u.Email
		c.Email = &e
	}
	if u.DefaultUnit != nil {
		d := *u.DefaultUnit
		c.DefaultUnit = &d
	}
	if u.LastActivePage != nil {
		p := *u.LastActivePage
		c.LastActivePage = &p
	}
	return &c
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.Id] = cloneUser(user)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = cloneUser(user)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return cloneUser(user), nil
	}
	return nil, nil
}

func (r *UserRepository) FindByEmployeeId(ctx context.Context, employeeId string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.EmployeeId == employeeId {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, user := range r.users {
		out = append(out, cloneUser(user))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeId < out[j].EmployeeId })
	return out, nil
}

func (r *UserRepository) FindAdmins(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, user := range r.users {
		if user.IsAdmin() {
			out = append(out, cloneUser(user))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeId < out[j].EmployeeId })
	return out, nil
}

func (r *UserRepository) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.Id == uuid.Nil {
		token.Id = uuid.New()
	}
	c := *token
	r.tokens[token.Id] = &c
	return nil
}

func (r *UserRepository) FindPasswordResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Token == token {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) MarkPasswordResetTokenUsed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok {
		t.Used = true
	}
	return nil
}
