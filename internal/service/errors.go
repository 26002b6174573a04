package service

import "errors"

// Sentinels returned by services. Handlers map them to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
	ErrSessionSuperseded  = errors.New("session expired (logged in on another device)")

	ErrBrandNotFound    = errors.New("brand not found")
	ErrBrandExists      = errors.New("brand already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidDay       = errors.New("discount day must be between 1 and 365")

	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateCode   = errors.New("a catalog product with this code already exists")
	ErrNotOwner        = errors.New("product belongs to another user")
	ErrInvalidCode     = errors.New("invalid barcode")
)
