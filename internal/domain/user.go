package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account on the platform. CPF and Phone are always
// stored in their canonical punctuated forms ("XXX.XXX.XXX-XX" and
// "(XX) XXXXX-XXXX"); normalization happens in the service layer before
// a record reaches a repository.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Birth     time.Time `json:"birth"`
	CPF       string    `json:"cpf"`
	Phone     string    `json:"phone"`
	About     string    `json:"about"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
