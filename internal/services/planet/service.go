package planet

import (
	"context"
	"errors"

	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/storage"
)

// ErrSelfOrbit is returned when linking a planet as its own home star
var ErrSelfOrbit = errors.New("planet cannot orbit itself")

// Attributes are the mutable fields of a planet
type Attributes struct {
	Name     string
	Class    string
	Mass     float64
	Radius   float64
	Distance float64
}

// Detail is a planet together with the star-planets it orbits
type Detail struct {
	Planet *model.Planet
	Stars  []*model.Planet
}

// Service executes planet CRUD intents against the store under its
// uniqueness and existence invariants.
type Service struct {
	store storage.Store
}

// New creates a new planet service
func New(store storage.Store) *Service {
	return &Service{store: store}
}

// List returns all planets
func (s *Service) List(ctx context.Context) ([]*model.Planet, error) {
	return s.store.ListPlanets(ctx)
}

// Get returns a planet and its home stars
func (s *Service) Get(ctx context.Context, id model.PlanetID) (*Detail, error) {
	planet, err := s.store.GetPlanet(ctx, id)
	if err != nil {
		return nil, err
	}
	stars, err := s.store.ListHomestars(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Planet: planet, Stars: stars}, nil
}

// Discover creates a planet owned by the discovering user. The store's
// uniqueness constraint on the name is the authoritative guard; a
// duplicate name yields model.ErrPlanetNameTaken.
func (s *Service) Discover(ctx context.Context, discoverer model.UserID, attrs Attributes) (*model.Planet, error) {
	planet := &model.Planet{
		Name:         attrs.Name,
		Class:        attrs.Class,
		Mass:         attrs.Mass,
		Radius:       attrs.Radius,
		Distance:     attrs.Distance,
		DiscoveredBy: &discoverer,
	}
	if err := s.store.CreatePlanet(ctx, planet); err != nil {
		return nil, err
	}
	return planet, nil
}

// Update replaces a planet's attributes, keeping its discoverer
func (s *Service) Update(ctx context.Context, id model.PlanetID, attrs Attributes) (*model.Planet, error) {
	planet, err := s.store.GetPlanet(ctx, id)
	if err != nil {
		return nil, err
	}

	planet.Name = attrs.Name
	planet.Class = attrs.Class
	planet.Mass = attrs.Mass
	planet.Radius = attrs.Radius
	planet.Distance = attrs.Distance

	if err := s.store.UpdatePlanet(ctx, planet); err != nil {
		return nil, err
	}
	return planet, nil
}

// Delete removes a planet; the store nulls dependent home references and
// homestar links in the same unit of work.
func (s *Service) Delete(ctx context.Context, id model.PlanetID) error {
	return s.store.DeletePlanet(ctx, id)
}

// LinkStar records that a planet orbits a star-planet
func (s *Service) LinkStar(ctx context.Context, planetID, starID model.PlanetID) error {
	if planetID == starID {
		return ErrSelfOrbit
	}
	return s.store.AddHomestar(ctx, planetID, starID)
}

// UnlinkStar removes a homestar link
func (s *Service) UnlinkStar(ctx context.Context, planetID, starID model.PlanetID) error {
	return s.store.RemoveHomestar(ctx, planetID, starID)
}
