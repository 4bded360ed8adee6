package storage

import (
	"context"

	"github.com/mkaran/planetary-api/internal/model"
)

// Store defines the interface for data persistence.
//
// Implementations are responsible for enforcing the uniqueness invariants
// (user email, user first name, planet name) at the storage level, not by
// a prior read, so that concurrent check-then-insert cannot produce
// duplicates. Multi-row mutations (planet delete, password reset
// completion) are atomic: on failure no partial write is visible.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	SetUserHomePlanet(ctx context.Context, id model.UserID, planetID model.PlanetID) error

	// Planet operations
	CreatePlanet(ctx context.Context, planet *model.Planet) error
	GetPlanet(ctx context.Context, id model.PlanetID) (*model.Planet, error)
	GetPlanetByName(ctx context.Context, name string) (*model.Planet, error)
	ListPlanets(ctx context.Context) ([]*model.Planet, error)
	UpdatePlanet(ctx context.Context, planet *model.Planet) error
	// DeletePlanet removes a planet and, in the same atomic unit of work,
	// nulls any user home references and drops any homestar links that
	// point at it.
	DeletePlanet(ctx context.Context, id model.PlanetID) error

	// Homestar operations
	AddHomestar(ctx context.Context, planetID, starID model.PlanetID) error
	ListHomestars(ctx context.Context, planetID model.PlanetID) ([]*model.Planet, error)
	RemoveHomestar(ctx context.Context, planetID, starID model.PlanetID) error

	// Password reset operations
	CreatePasswordReset(ctx context.Context, reset *model.PasswordReset) error
	GetPasswordReset(ctx context.Context, tokenHash string) (*model.PasswordReset, error)
	// CompletePasswordReset sets the user's credential and burns all of the
	// user's outstanding reset tokens in one atomic unit of work.
	CompletePasswordReset(ctx context.Context, id model.UserID, passwordHash string) error
}
