package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Refresh token related errors
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")

	// Todo related errors
	ErrTodoNotFound = errors.New("todo not found")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
