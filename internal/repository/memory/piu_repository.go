package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
	"github.com/felipe-lpz/piupiuwer/internal/repository"
)

// PiuRepository is an in-memory implementation of repository.PiuRepository.
// Besides the primary map it keeps a one-to-many index from owner id to that
// user's piu ids, in creation order, so owner listings cost only the owner's
// own pius.
type PiuRepository struct {
	mu    sync.RWMutex
	newID IDGenerator

	pius    map[uuid.UUID]*domain.Piu
	order   []uuid.UUID
	byOwner map[uuid.UUID][]uuid.UUID
}

// NewPiuRepository creates an empty in-memory piu repository.
func NewPiuRepository(opts ...Option) repository.PiuRepository {
	s := newSettings(opts)
	return &PiuRepository{
		newID:   s.newID,
		pius:    make(map[uuid.UUID]*domain.Piu),
		byOwner: make(map[uuid.UUID][]uuid.UUID),
	}
}

// Create builds a new piu record with zero likes and inserts it into the
// primary map and the owner index.
func (r *PiuRepository) Create(ctx context.Context, params repository.CreatePiuParams) (*domain.Piu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	piu := &domain.Piu{
		ID:        r.newID(),
		UserID:    params.UserID,
		Text:      params.Text,
		Likes:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.pius[piu.ID] = piu
	r.order = append(r.order, piu.ID)
	r.byOwner[piu.UserID] = append(r.byOwner[piu.UserID], piu.ID)

	out := *piu
	return &out, nil
}

// GetAll returns all pius in creation order.
func (r *PiuRepository) GetAll(ctx context.Context) ([]*domain.Piu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Piu, 0, len(r.order))
	for _, id := range r.order {
		out := *r.pius[id]
		result = append(result, &out)
	}
	return result, nil
}

// GetByID retrieves a piu by id.
func (r *PiuRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Piu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	piu, exists := r.pius[id]
	if !exists {
		return nil, domain.ErrPiuNotFound
	}

	out := *piu
	return &out, nil
}

// GetByUserID returns the pius owned by userID in creation order. An owner
// with no pius yields an empty slice, not an error.
func (r *PiuRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Piu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := r.byOwner[userID]
	result := make([]*domain.Piu, 0, len(owned))
	for _, id := range owned {
		out := *r.pius[id]
		result = append(result, &out)
	}
	return result, nil
}

// Delete removes a piu from the primary map and the owner index. Returns
// domain.ErrPiuNotFound when the id is unknown.
func (r *PiuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	piu, exists := r.pius[id]
	if !exists {
		return domain.ErrPiuNotFound
	}

	owned := r.byOwner[piu.UserID]
	for i, oid := range owned {
		if oid == id {
			r.byOwner[piu.UserID] = append(owned[:i], owned[i+1:]...)
			break
		}
	}
	if len(r.byOwner[piu.UserID]) == 0 {
		delete(r.byOwner, piu.UserID)
	}
	delete(r.pius, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
