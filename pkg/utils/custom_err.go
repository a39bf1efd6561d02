package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrChildNotFound   = errors.New("child not found")
	ErrNotOwner        = errors.New("child does not belong to this account")
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrCaregiverScope  = errors.New("caregiver mode is scoped to another child")

	ErrRequestNotFound        = errors.New("request not found")
	ErrPendingRequestExists   = errors.New("a pending request already exists")
	ErrRequestAlreadyResolved = errors.New("request already resolved")

	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardInactive     = errors.New("reward is not active")
	ErrInsufficientPoints = errors.New("insufficient points")

	ErrCaregiverNotFound = errors.New("caregiver not found")
	ErrLastCaregiver     = errors.New("cannot remove the last caregiver")

	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
)
