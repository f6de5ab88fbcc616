package domain

import "errors"

var (
	ErrInvalidPreferences = errors.New("invalid preferences")
)
