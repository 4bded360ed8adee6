package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It enforces the same uniqueness and cascade semantics as the postgres
// backend so services can be tested against it without a database.
type Storage struct {
	mu sync.RWMutex

	users          map[model.UserID]*model.User
	emailIndex     map[string]model.UserID
	firstNameIndex map[string]model.UserID
	planets        map[model.PlanetID]*model.Planet
	planetNames    map[string]model.PlanetID
	homestars      map[homestarKey]struct{}
	resets         map[string]*model.PasswordReset

	nextUserID   model.UserID
	nextPlanetID model.PlanetID
}

type homestarKey struct {
	planetID model.PlanetID
	starID   model.PlanetID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:          make(map[model.UserID]*model.User),
		emailIndex:     make(map[string]model.UserID),
		firstNameIndex: make(map[string]model.UserID),
		planets:        make(map[model.PlanetID]*model.Planet),
		planetNames:    make(map[string]model.PlanetID),
		homestars:      make(map[homestarKey]struct{}),
		resets:         make(map[string]*model.PasswordReset),
		nextUserID:     1,
		nextPlanetID:   1,
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emailIndex[user.Email]; taken {
		return model.ErrEmailTaken
	}
	if _, taken := s.firstNameIndex[user.FirstName]; taken {
		return model.ErrFirstNameTaken
	}
	if user.HomePlanetID != nil {
		if _, ok := s.planets[*user.HomePlanetID]; !ok {
			return model.ErrPlanetNotFound
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++

	u := *user
	s.users[u.ID] = &u
	s.emailIndex[u.Email] = u.ID
	s.firstNameIndex[u.FirstName] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *Storage) SetUserHomePlanet(ctx context.Context, id model.UserID, planetID model.PlanetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	if _, ok := s.planets[planetID]; !ok {
		return model.ErrPlanetNotFound
	}
	pid := planetID
	user.HomePlanetID = &pid
	return nil
}

// Planet operations

func (s *Storage) CreatePlanet(ctx context.Context, planet *model.Planet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.planetNames[planet.Name]; taken {
		return model.ErrPlanetNameTaken
	}

	planet.ID = s.nextPlanetID
	s.nextPlanetID++

	p := *planet
	s.planets[p.ID] = &p
	s.planetNames[p.Name] = p.ID
	return nil
}

func (s *Storage) GetPlanet(ctx context.Context, id model.PlanetID) (*model.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	planet, ok := s.planets[id]
	if !ok {
		return nil, model.ErrPlanetNotFound
	}
	p := *planet
	return &p, nil
}

func (s *Storage) GetPlanetByName(ctx context.Context, name string) (*model.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.planetNames[name]
	if !ok {
		return nil, model.ErrPlanetNotFound
	}
	p := *s.planets[id]
	return &p, nil
}

func (s *Storage) ListPlanets(ctx context.Context) ([]*model.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	planets := make([]*model.Planet, 0, len(s.planets))
	for _, planet := range s.planets {
		p := *planet
		planets = append(planets, &p)
	}
	sort.Slice(planets, func(i, j int) bool { return planets[i].ID < planets[j].ID })
	return planets, nil
}

func (s *Storage) UpdatePlanet(ctx context.Context, planet *model.Planet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.planets[planet.ID]
	if !ok {
		return model.ErrPlanetNotFound
	}
	if id, taken := s.planetNames[planet.Name]; taken && id != planet.ID {
		return model.ErrPlanetNameTaken
	}

	delete(s.planetNames, existing.Name)
	p := *planet
	s.planets[p.ID] = &p
	s.planetNames[p.Name] = p.ID
	return nil
}

func (s *Storage) DeletePlanet(ctx context.Context, id model.PlanetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	planet, ok := s.planets[id]
	if !ok {
		return model.ErrPlanetNotFound
	}

	// Cascade: null dangling home references and drop homestar links.
	for _, user := range s.users {
		if user.HomePlanetID != nil && *user.HomePlanetID == id {
			user.HomePlanetID = nil
		}
	}
	for key := range s.homestars {
		if key.planetID == id || key.starID == id {
			delete(s.homestars, key)
		}
	}

	delete(s.planetNames, planet.Name)
	delete(s.planets, id)
	return nil
}

// Homestar operations

func (s *Storage) AddHomestar(ctx context.Context, planetID, starID model.PlanetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.planets[planetID]; !ok {
		return model.ErrPlanetNotFound
	}
	if _, ok := s.planets[starID]; !ok {
		return model.ErrPlanetNotFound
	}
	key := homestarKey{planetID: planetID, starID: starID}
	if _, exists := s.homestars[key]; exists {
		return model.ErrHomestarExists
	}
	s.homestars[key] = struct{}{}
	return nil
}

func (s *Storage) ListHomestars(ctx context.Context, planetID model.PlanetID) ([]*model.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.planets[planetID]; !ok {
		return nil, model.ErrPlanetNotFound
	}
	var stars []*model.Planet
	for key := range s.homestars {
		if key.planetID == planetID {
			p := *s.planets[key.starID]
			stars = append(stars, &p)
		}
	}
	sort.Slice(stars, func(i, j int) bool { return stars[i].ID < stars[j].ID })
	return stars, nil
}

func (s *Storage) RemoveHomestar(ctx context.Context, planetID, starID model.PlanetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := homestarKey{planetID: planetID, starID: starID}
	if _, exists := s.homestars[key]; !exists {
		return model.ErrHomestarNotFound
	}
	delete(s.homestars, key)
	return nil
}

// Password reset operations

func (s *Storage) CreatePasswordReset(ctx context.Context, reset *model.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[reset.UserID]; !ok {
		return model.ErrUserNotFound
	}
	r := *reset
	s.resets[r.TokenHash] = &r
	return nil
}

func (s *Storage) GetPasswordReset(ctx context.Context, tokenHash string) (*model.PasswordReset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reset, ok := s.resets[tokenHash]
	if !ok {
		return nil, model.ErrResetNotFound
	}
	r := *reset
	return &r, nil
}

func (s *Storage) CompletePasswordReset(ctx context.Context, id model.UserID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	for hash, reset := range s.resets {
		if reset.UserID == id {
			delete(s.resets, hash)
		}
	}
	return nil
}
