package service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
	"github.com/felipe-lpz/piupiuwer/internal/repository"
)

// DefaultTrendingCount is used when a trending request carries no usable
// count.
const DefaultTrendingCount = 5

// PiuService implements the business rules for pius. It holds a read-only
// reference to the user repository to enforce that a piu's owner exists at
// creation time; the piu repository itself does not know about users.
type PiuService struct {
	pius   repository.PiuRepository
	users  repository.UserRepository
	guard  *CascadeGuard
	logger *slog.Logger
}

// NewPiuService creates a new piu service. The guard must be the same
// instance handed to the user service built on the same repositories.
func NewPiuService(
	pius repository.PiuRepository,
	users repository.UserRepository,
	guard *CascadeGuard,
	logger *slog.Logger,
) *PiuService {
	return &PiuService{
		pius:   pius,
		users:  users,
		guard:  guard,
		logger: logger,
	}
}

// Create posts a new piu for userID. Text must be non-empty and at most
// domain.MaxPiuTextLength characters, and the owner must exist.
func (s *PiuService) Create(ctx context.Context, userID uuid.UUID, text string) (*domain.Piu, error) {
	if text == "" {
		return nil, domain.ErrPiuTextRequired
	}
	if utf8.RuneCountInString(text) > domain.MaxPiuTextLength {
		return nil, domain.ErrPiuTextTooLong
	}

	// The owner check and the insert touch two stores with independent
	// mutexes. The shared side of the guard keeps a cascade delete from
	// running between them, which would leave this piu orphaned.
	s.guard.mu.RLock()
	defer s.guard.mu.RUnlock()

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	piu, err := s.pius.Create(ctx, repository.CreatePiuParams{
		UserID: userID,
		Text:   text,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("piu created", "piu_id", piu.ID, "user_id", userID)
	return piu, nil
}

// ListAll returns every piu in creation order.
func (s *PiuService) ListAll(ctx context.Context) ([]*domain.Piu, error) {
	return s.pius.GetAll(ctx)
}

// FindByID retrieves a piu by id.
func (s *PiuService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Piu, error) {
	return s.pius.GetByID(ctx, id)
}

// ListByUser returns the pius owned by userID. An unknown user yields an
// empty slice, not an error.
func (s *PiuService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Piu, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return []*domain.Piu{}, nil
	}
	return s.pius.GetByUserID(ctx, userID)
}

// Delete removes a piu by id.
func (s *PiuService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.pius.Delete(ctx, id)
}

// Search returns the pius whose text contains query, case-insensitively.
// An empty query matches everything.
func (s *PiuService) Search(ctx context.Context, query string) ([]*domain.Piu, error) {
	all, err := s.pius.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]*domain.Piu, 0, len(all))
	for _, piu := range all {
		if strings.Contains(strings.ToLower(piu.Text), q) {
			matches = append(matches, piu)
		}
	}
	return matches, nil
}

// Trending returns count pius drawn uniformly at random, without
// duplicates. When the population is count or smaller the whole population
// is returned. Each call shuffles a fresh copy (Fisher-Yates via
// rand.Shuffle), so results are not reproducible.
func (s *PiuService) Trending(ctx context.Context, count int) ([]*domain.Piu, error) {
	all, err := s.pius.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if count < 0 {
		count = 0
	}
	if len(all) <= count {
		return all, nil
	}

	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all[:count], nil
}
