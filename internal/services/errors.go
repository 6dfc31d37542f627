package services

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrInvalidOrExpired = errors.New("invalid or expired otp")
	ErrSMSNotConfigured = errors.New("sms provider is not configured")
)
