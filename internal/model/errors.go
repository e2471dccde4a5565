package model

import "errors"

// Common errors used across the application
var (
	// Player record errors
	ErrRecordNotFound = errors.New("player record not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrBadSessionCookie = errors.New("malformed or tampered session cookie")
)
