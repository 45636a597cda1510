package usecase

import "errors"

// Shared sentinels; handlers map these to HTTP statuses.
var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInternal              = errors.New("internal error")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrRefreshTokenExpired   = errors.New("refresh token expired")
	ErrNoJobsFound           = errors.New("no jobs found")
	ErrUserSkillProfileEmpty = errors.New("user skill profile empty")
)
