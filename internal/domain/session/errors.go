package session

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidStatus     = errors.New("invalid session status")
	ErrInvalidTransition = errors.New("session status transition not allowed")
	ErrBoothUnavailable  = errors.New("photobooth is not available")
	ErrSessionNotActive  = errors.New("session is not active")
	ErrMaxPhotosReached  = errors.New("session photo limit reached")
)
