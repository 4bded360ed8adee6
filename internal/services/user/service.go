package user

import (
	"context"

	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/storage"
)

// Profile is the view of a user shaped by the access control rule.
// LastName and Email are populated only when the requester is the profile's
// subject; credential fields are never part of a profile.
type Profile struct {
	UserID     model.UserID
	FirstName  string
	LastName   string
	Email      string
	PlanetName *string
	IsSelf     bool
}

// Service provides user detail lookups and home planet migration
type Service struct {
	store storage.Store
}

// New creates a new user service
func New(store storage.Store) *Service {
	return &Service{store: store}
}

// Detail returns the target user's profile shaped for the requester:
// the full private profile for the subject itself, the non-sensitive
// subset (first name, id, home planet name) for anyone else. The rule is
// applied here, before serialization, on every detail path.
func (s *Service) Detail(ctx context.Context, requester, target model.UserID) (*Profile, error) {
	user, err := s.store.GetUser(ctx, target)
	if err != nil {
		return nil, err
	}

	var planetName *string
	if user.HomePlanetID != nil {
		planet, err := s.store.GetPlanet(ctx, *user.HomePlanetID)
		if err == nil {
			planetName = &planet.Name
		}
	}

	profile := &Profile{
		UserID:     user.ID,
		FirstName:  user.FirstName,
		PlanetName: planetName,
	}
	if requester == target {
		profile.LastName = user.LastName
		profile.Email = user.Email
		profile.IsSelf = true
	}
	return profile, nil
}

// Migrate reassigns the user's home planet. The target planet must exist;
// the moved-to planet is returned for the response message.
func (s *Service) Migrate(ctx context.Context, id model.UserID, planetID model.PlanetID) (*model.Planet, error) {
	planet, err := s.store.GetPlanet(ctx, planetID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetUserHomePlanet(ctx, id, planetID); err != nil {
		return nil, err
	}
	return planet, nil
}
