package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSavedJobNotFound     = errors.New("saved job not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrForbidden            = errors.New("forbidden")
	ErrAccountSuspended     = errors.New("account suspended")
	ErrResumeRequired       = errors.New("resume required")
	ErrAlreadyApplied       = errors.New("already applied")
	ErrJobNotOpen           = errors.New("job not open")
	ErrInternal             = errors.New("internal error")
)
