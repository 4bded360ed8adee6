package model

import "time"

// UserID identifies a registered user
type UserID int64

// User represents a registered user account.
// PasswordHash holds the argon2id-encoded credential and must never be
// serialized into a response.
type User struct {
	ID           UserID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	HomePlanetID *PlanetID
	CreatedAt    time.Time
}

// PasswordReset is an outstanding password-recovery token.
// Only the SHA-256 hash of the token is stored; the plaintext token is
// delivered to the user out of band and never persisted.
type PasswordReset struct {
	TokenHash string
	UserID    UserID
	ExpiresAt time.Time
	CreatedAt time.Time
}
