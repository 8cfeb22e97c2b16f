package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
	"github.com/felipe-lpz/piupiuwer/internal/repository"
)

// UserRepository is an in-memory implementation of repository.UserRepository.
// The primary map holds the records; one secondary map per unique field
// resolves a value to the owning id.
type UserRepository struct {
	mu    sync.RWMutex
	newID IDGenerator

	users map[uuid.UUID]*domain.User
	order []uuid.UUID

	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
	byCPF      map[string]uuid.UUID
	byPhone    map[string]uuid.UUID
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository(opts ...Option) repository.UserRepository {
	s := newSettings(opts)
	return &UserRepository{
		newID:      s.newID,
		users:      make(map[uuid.UUID]*domain.User),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
		byCPF:      make(map[string]uuid.UUID),
		byPhone:    make(map[string]uuid.UUID),
	}
}

// Create builds a new user record and inserts it into the primary map and
// all four unique indexes in one locked section.
func (r *UserRepository) Create(ctx context.Context, params repository.CreateUserParams) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user := &domain.User{
		ID:        r.newID(),
		Username:  params.Username,
		Email:     params.Email,
		Name:      params.Name,
		Birth:     params.Birth,
		CPF:       params.CPF,
		Phone:     params.Phone,
		About:     params.About,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	r.byUsername[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID
	r.byCPF[user.CPF] = user.ID
	r.byPhone[user.Phone] = user.ID

	out := *user
	return &out, nil
}

// GetAll returns all users in creation order.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		out := *r.users[id]
		result = append(result, &out)
	}
	return result, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	out := *user
	return &out, nil
}

// GetByUsername resolves a username through the secondary index.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByIndex(r.byUsername, username)
}

// GetByEmail resolves an email through the secondary index.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByIndex(r.byEmail, email)
}

// GetByCPF resolves a canonical CPF through the secondary index.
func (r *UserRepository) GetByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByIndex(r.byCPF, cpf)
}

// GetByPhone resolves a canonical phone through the secondary index.
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByIndex(r.byPhone, phone)
}

// caller must hold at least the read lock
func (r *UserRepository) getByIndex(index map[string]uuid.UUID, value string) (*domain.User, error) {
	id, exists := index[value]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	out := *r.users[id]
	return &out, nil
}

// UsernameExists reports whether any user holds the username.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.byUsername[username]
	return exists
}

// EmailExists reports whether any user holds the email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.byEmail[email]
	return exists
}

// CPFExists reports whether any user holds the canonical CPF.
func (r *UserRepository) CPFExists(ctx context.Context, cpf string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.byCPF[cpf]
	return exists
}

// PhoneExists reports whether any user holds the canonical phone.
func (r *UserRepository) PhoneExists(ctx context.Context, phone string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.byPhone[phone]
	return exists
}

// Update applies a partial update. For each indexed field that changes, the
// stale index entry is removed and the new one inserted before the record
// itself is replaced, so the indexes never disagree with the stored record.
// Returns domain.ErrUserNotFound without touching anything when the id is
// unknown.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, params repository.UpdateUserParams) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	updated := *current

	if params.Username != nil {
		if *params.Username != current.Username {
			delete(r.byUsername, current.Username)
			r.byUsername[*params.Username] = id
		}
		updated.Username = *params.Username
	}
	if params.Email != nil {
		if *params.Email != current.Email {
			delete(r.byEmail, current.Email)
			r.byEmail[*params.Email] = id
		}
		updated.Email = *params.Email
	}
	if params.CPF != nil {
		if *params.CPF != current.CPF {
			delete(r.byCPF, current.CPF)
			r.byCPF[*params.CPF] = id
		}
		updated.CPF = *params.CPF
	}
	if params.Phone != nil {
		if *params.Phone != current.Phone {
			delete(r.byPhone, current.Phone)
			r.byPhone[*params.Phone] = id
		}
		updated.Phone = *params.Phone
	}
	if params.Name != nil {
		updated.Name = *params.Name
	}
	if params.Birth != nil {
		updated.Birth = *params.Birth
	}
	if params.About != nil {
		updated.About = *params.About
	}
	updated.UpdatedAt = time.Now()

	r.users[id] = &updated

	out := updated
	return &out, nil
}

// Delete removes a user and its four index entries. Returns
// domain.ErrUserNotFound when the id is unknown.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return domain.ErrUserNotFound
	}

	delete(r.byUsername, user.Username)
	delete(r.byEmail, user.Email)
	delete(r.byCPF, user.CPF)
	delete(r.byPhone, user.Phone)
	delete(r.users, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
