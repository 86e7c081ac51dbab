package domain

import "errors"

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrModelNotFound    = errors.New("model not found")
	ErrDuplicateEvent   = errors.New("feedback event already recorded")
)
