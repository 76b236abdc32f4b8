package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordPolicy     = errors.New("password policy violation")

	// Token related errors. Both collapse to a single unauthenticated
	// response at the HTTP boundary but stay distinct for logging.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	// Catalog related errors
	ErrVideoNotFound    = errors.New("video not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCatalogIntegrity = errors.New("catalog integrity violation")

	// Purchase related errors
	ErrDuplicatePurchase = errors.New("item already purchased")
	ErrInvalidItemType   = errors.New("invalid item type")

	// Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
