package domain

import "errors"

// Domain errors. The messages are the exact strings surfaced to API
// clients, so they are written in Portuguese and must not be reworded.
var (
	// ErrMissingFields indicates a required user field was not supplied
	ErrMissingFields = errors.New("Todos os campos são obrigatórios")

	// ErrEmailTaken indicates another user already registered the email
	ErrEmailTaken = errors.New("Este email já está em uso")

	// ErrUsernameTaken indicates another user already holds the username
	ErrUsernameTaken = errors.New("Este username já está em uso")

	// ErrInvalidCPF indicates the CPF failed check-digit validation
	ErrInvalidCPF = errors.New("O CPF informado não é válido")

	// ErrInvalidPhone indicates the phone is not in canonical form
	ErrInvalidPhone = errors.New("O telefone deve estar no formato (XX) XXXXX-XXXX")

	// ErrCPFTaken indicates another user already registered the CPF
	ErrCPFTaken = errors.New("Este CPF já está cadastrado")

	// ErrPhoneTaken indicates another user already registered the phone
	ErrPhoneTaken = errors.New("Este telefone já está cadastrado")

	// ErrUserNotFound indicates no user exists with the given id
	ErrUserNotFound = errors.New("Usuário não encontrado")

	// ErrPiuTextRequired indicates an empty piu text
	ErrPiuTextRequired = errors.New("O texto do piu é obrigatório")

	// ErrPiuTextTooLong indicates the piu text exceeds MaxPiuTextLength
	ErrPiuTextTooLong = errors.New("O piu não pode ter mais de 140 caracteres")

	// ErrPiuNotFound indicates no piu exists with the given id
	ErrPiuNotFound = errors.New("Piu não encontrado")
)
