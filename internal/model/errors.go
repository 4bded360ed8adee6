package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email address already registered")
	ErrFirstNameTaken = errors.New("first name already registered")

	// Planet errors
	ErrPlanetNotFound  = errors.New("planet not found")
	ErrPlanetNameTaken = errors.New("planet name already exists")

	// Homestar errors
	ErrHomestarExists   = errors.New("homestar link already exists")
	ErrHomestarNotFound = errors.New("homestar link not found")

	// Password reset errors
	ErrResetNotFound = errors.New("password reset not found")
)
