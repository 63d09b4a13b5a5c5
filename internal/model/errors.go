package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidColour   = errors.New("colour must be a #rrggbb hex string")
	ErrInvalidPlayerID = errors.New("player id must not be empty")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)
