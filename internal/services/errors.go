package services

import "errors"

// Request-facing error taxonomy. Handlers map these to HTTP statuses with
// errors.Is; anything not listed here is a server error.
var (
	ErrValidation          = errors.New("missing or malformed input")
	ErrSystemDisabled      = errors.New("betting is currently disabled")
	ErrSessionNotFound     = errors.New("no active betting session found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrInsufficientBalance = errors.New("insufficient point balance")
	ErrDuplicateWager      = errors.New("already wagered on this session")
	ErrDuplicateSession    = errors.New("an active session already exists for this game")
	ErrAlreadySettled      = errors.New("session has already been settled")
	ErrSessionNotStopped   = errors.New("session must be stopped before settlement")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrNoticeNotFound      = errors.New("notice not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrDuplicateGame       = errors.New("a game already exists for this date and number")
	ErrResultNotFound      = errors.New("no result recorded for this session")
	ErrLoginIDTaken        = errors.New("login id is already in use")
	ErrNicknameTaken       = errors.New("nickname is already in use")
	ErrInvalidCredentials  = errors.New("invalid login id or password")
)
