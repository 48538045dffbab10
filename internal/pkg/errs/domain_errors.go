package errs

import "errors"

// Domain-specific sentinel errors shared between usecase and handler layers
var (
	// Board errors
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotNotActive    = errors.New("slot not active")
	ErrSlotTaken        = errors.New("slot already taken")
	ErrHourExists       = errors.New("hour already exists")
	ErrInvalidTimeLabel = errors.New("invalid time label")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
