package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
	"github.com/felipe-lpz/piupiuwer/internal/repository"
	"github.com/felipe-lpz/piupiuwer/internal/validation"
)

// UserService implements the business rules for account management:
// uniqueness of username, email, CPF and phone, CPF checksum validation,
// normalization to canonical forms, and the cascading delete of a
// user's pius.
type UserService struct {
	users  repository.UserRepository
	pius   repository.PiuRepository
	guard  *CascadeGuard
	logger *slog.Logger
}

// NewUserService creates a new user service. The piu repository is needed
// only by Delete, which removes every piu owned by the user before the
// user record itself. The guard must be the same instance handed to the
// piu service built on the same repositories.
func NewUserService(
	users repository.UserRepository,
	pius repository.PiuRepository,
	guard *CascadeGuard,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		pius:   pius,
		guard:  guard,
		logger: logger,
	}
}

// Create registers a new user. CPF and phone are accepted raw and stored in
// canonical form. Validation order is part of the API contract: missing
// fields, email in use, username in use, CPF checksum, phone format, CPF
// registered, phone registered.
func (s *UserService) Create(ctx context.Context, params repository.CreateUserParams) (*domain.User, error) {
	if params.Username == "" || params.Email == "" || params.Name == "" ||
		params.Birth.IsZero() || params.CPF == "" || params.Phone == "" {
		return nil, domain.ErrMissingFields
	}

	if s.users.EmailExists(ctx, params.Email) {
		return nil, domain.ErrEmailTaken
	}
	if s.users.UsernameExists(ctx, params.Username) {
		return nil, domain.ErrUsernameTaken
	}

	if !validation.ValidCPF(params.CPF) {
		return nil, domain.ErrInvalidCPF
	}
	params.CPF = validation.FormatCPF(params.CPF)

	if !validation.ValidPhone(params.Phone) {
		params.Phone = validation.FormatPhone(params.Phone)
	}
	if !validation.ValidPhone(params.Phone) {
		return nil, domain.ErrInvalidPhone
	}

	if s.users.CPFExists(ctx, params.CPF) {
		return nil, domain.ErrCPFTaken
	}
	if s.users.PhoneExists(ctx, params.Phone) {
		return nil, domain.ErrPhoneTaken
	}

	user, err := s.users.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// ListAll returns every user in creation order.
func (s *UserService) ListAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.GetAll(ctx)
}

// FindByID retrieves a user by id.
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies a partial update. The duplicate and format checks from
// Create run only for the fields actually supplied, and duplicate checks
// only when the new value differs from the current one. CPF and phone are
// normalized before they reach the repository.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, params repository.UpdateUserParams) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil && *params.Email != current.Email &&
		s.users.EmailExists(ctx, *params.Email) {
		return nil, domain.ErrEmailTaken
	}
	if params.Username != nil && *params.Username != current.Username &&
		s.users.UsernameExists(ctx, *params.Username) {
		return nil, domain.ErrUsernameTaken
	}

	if params.CPF != nil {
		if !validation.ValidCPF(*params.CPF) {
			return nil, domain.ErrInvalidCPF
		}
		cpf := validation.FormatCPF(*params.CPF)
		if cpf != current.CPF && s.users.CPFExists(ctx, cpf) {
			return nil, domain.ErrCPFTaken
		}
		params.CPF = &cpf
	}

	if params.Phone != nil {
		phone := *params.Phone
		if !validation.ValidPhone(phone) {
			phone = validation.FormatPhone(phone)
		}
		if !validation.ValidPhone(phone) {
			return nil, domain.ErrInvalidPhone
		}
		if phone != current.Phone && s.users.PhoneExists(ctx, phone) {
			return nil, domain.ErrPhoneTaken
		}
		params.Phone = &phone
	}

	return s.users.Update(ctx, id, params)
}

// Delete removes a user and cascades over its pius: every piu owned by the
// user is deleted first, then the user record, so no surviving piu ever
// references a missing owner. The whole cascade runs under the exclusive
// side of the guard, which keeps a concurrent piu create from slipping an
// insert between the owner snapshot and the user removal.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	s.guard.mu.Lock()
	defer s.guard.mu.Unlock()

	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	owned, err := s.pius.GetByUserID(ctx, id)
	if err != nil {
		return err
	}
	for _, piu := range owned {
		if err := s.pius.Delete(ctx, piu.ID); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id, "cascaded_pius", len(owned))
	return nil
}
