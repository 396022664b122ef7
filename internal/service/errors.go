package service

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrUserNotFound      = errors.New("user not found")
	ErrMenuNotFound      = errors.New("weekly menu not found")
	ErrNoAlternativeDish = errors.New("no alternative dish available")
	ErrDishNotFound      = errors.New("dish not found")
)
