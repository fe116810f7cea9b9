package asset

import "errors"

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidType   = errors.New("invalid asset type")
)
