package photobooth

import "errors"

var (
	ErrBoothNotFound  = errors.New("photobooth not found")
	ErrNameExists     = errors.New("photobooth name already in use")
	ErrInvalidStatus  = errors.New("invalid photobooth status")
	ErrNoStuckSession = errors.New("photobooth has no session to clear")
)
