package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Storage-level invariant violations. Services translate these into the
// request-facing error taxonomy.
var (
	ErrActiveSessionExists = errors.New("an active session already exists for this game")
	ErrSessionNotActive    = errors.New("no active session with this id")
	ErrMemberNotFound      = errors.New("member does not exist")
	ErrDuplicateWager      = errors.New("member already wagered on this session")
	ErrInsufficientBalance = errors.New("member balance is lower than the staked points")
	ErrAlreadySettled      = errors.New("session already has a recorded result")
)

// Repository holds the betting engine's persistence operations. Every
// multi-write operation runs inside a single transaction; single-statement
// conditional writes carry the check and the mutation together so no
// check-then-act window exists between round trips.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for read-only queries from services
// that do not need the engine's transactional methods.
func (r *Repository) DB() *gorm.DB {
	return r.db
}
