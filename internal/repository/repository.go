package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
)

// CreateUserParams carries the field values for a new user. CPF and Phone
// are expected in canonical form; normalizing them is the service's job.
type CreateUserParams struct {
	Username string
	Email    string
	Name     string
	Birth    time.Time
	CPF      string
	Phone    string
	About    string
}

// UpdateUserParams describes a partial update. Nil fields are left
// unchanged; ID, CreatedAt and UpdatedAt are never settable by callers.
type UpdateUserParams struct {
	Username *string
	Email    *string
	Name     *string
	Birth    *time.Time
	CPF      *string
	Phone    *string
	About    *string
}

// CreatePiuParams carries the field values for a new piu.
type CreatePiuParams struct {
	UserID uuid.UUID
	Text   string
}

// UserRepository defines storage operations for users. Implementations keep
// username, email, CPF and phone uniquely indexed; the *Exists checks and
// the GetBy* lookups are O(1).
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByCPF(ctx context.Context, cpf string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) bool
	EmailExists(ctx context.Context, email string) bool
	CPFExists(ctx context.Context, cpf string) bool
	PhoneExists(ctx context.Context, phone string) bool
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PiuRepository defines storage operations for pius. Implementations keep a
// one-to-many index from owner id to piu ids so GetByUserID costs O(m) in
// the owner's piu count.
type PiuRepository interface {
	Create(ctx context.Context, params CreatePiuParams) (*domain.Piu, error)
	GetAll(ctx context.Context) ([]*domain.Piu, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Piu, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Piu, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
