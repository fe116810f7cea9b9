package photo

import "errors"

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNoPhotoIDs    = errors.New("no photo IDs given")
)
