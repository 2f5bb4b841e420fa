package model

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidKind      = errors.New("invalid transaction type")
	ErrInvalidDirection = errors.New("invalid debt direction")
	ErrNotRegistered    = errors.New("user is not registered")
)
