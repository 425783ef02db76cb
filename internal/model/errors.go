package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Arena errors
	ErrAlreadyJoined = errors.New("player has already joined the arena")
	ErrNotJoined     = errors.New("player has not joined the arena")
)
