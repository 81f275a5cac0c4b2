package contact

import "errors"

var (
	ErrMissingName     = errors.New("missing name")
	ErrMissingEmail    = errors.New("missing email")
	ErrContactNotFound = errors.New("contact not found")

	// Run-level and row-level failure kinds of an import run.
	ErrSourceUnavailable       = errors.New("source unavailable")
	ErrMalformedRow            = errors.New("malformed row")
	ErrStoreUnavailable        = errors.New("store unavailable")
	ErrNotificationUnavailable = errors.New("notification unavailable")
)
