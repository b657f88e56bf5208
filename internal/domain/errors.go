package domain

import "errors"

var (
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both unknown usernames and password mismatches.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound is returned when reading progress for an unknown account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrSessionNotFound is returned when a practice session has not been initialized.
	ErrSessionNotFound = errors.New("practice session not found")
	// ErrNoActiveQuestion is returned when submitting before any question was issued.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrAlreadyGraded is returned when the current question was already graded.
	// Callers treat it as a recoverable no-op, not a failure.
	ErrAlreadyGraded = errors.New("question already graded")
	// ErrNoWordAvailable indicates the content provider could not supply a word.
	ErrNoWordAvailable = errors.New("no word available")
	// ErrUnknownQuestionKind indicates an unsupported practice mode was requested.
	ErrUnknownQuestionKind = errors.New("unknown question kind")
)
