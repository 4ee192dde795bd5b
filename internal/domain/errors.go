package domain

import "errors"

var (
	ErrDreamTextRequired = errors.New("dream text is required")
	ErrDreamTextTooShort = errors.New("dream text must be at least 10 characters")
	ErrDreamTextTooLong  = errors.New("dream text must be at most 5000 characters")
	ErrInvalidEnergy     = errors.New("energy must be between 0 and 100")
	ErrUserIDRequired    = errors.New("userId is required")
	ErrDreamNotFound     = errors.New("dream not found")
	ErrStoreDisabled     = errors.New("dream store is not configured")
	ErrUpstreamProvider  = errors.New("upstream provider failure")
)
