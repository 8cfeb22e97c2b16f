package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxPiuTextLength is the maximum number of characters a piu may carry.
const MaxPiuTextLength = 140

// Piu represents a short text post owned by a user. The service layer
// guarantees UserID references an existing user at creation time.
type Piu struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
