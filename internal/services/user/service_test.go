package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) createUser(firstName, email string) *model.User {
	user := &model.User{FirstName: firstName, LastName: "Tester", Email: email}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return user
}

func (s *ServiceSuite) createPlanet(name string) *model.Planet {
	planet := &model.Planet{Name: name, Class: "M", Mass: 1, Radius: 1, Distance: 1}
	s.Require().NoError(s.storage.CreatePlanet(s.ctx, planet))
	return planet
}

// Detail tests

func (s *ServiceSuite) TestDetailForSelfIncludesPrivateFields() {
	user := s.createUser("Alice", "alice@example.com")

	profile, err := s.service.Detail(s.ctx, user.ID, user.ID)
	s.Require().NoError(err)

	s.True(profile.IsSelf)
	s.Equal("Alice", profile.FirstName)
	s.Equal("Tester", profile.LastName)
	s.Equal("alice@example.com", profile.Email)
}

func (s *ServiceSuite) TestDetailForOthersOmitsPrivateFields() {
	alice := s.createUser("Alice", "alice@example.com")
	bob := s.createUser("Bob", "bob@example.com")

	profile, err := s.service.Detail(s.ctx, bob.ID, alice.ID)
	s.Require().NoError(err)

	s.False(profile.IsSelf)
	s.Equal("Alice", profile.FirstName)
	s.Empty(profile.LastName)
	s.Empty(profile.Email)
}

func (s *ServiceSuite) TestDetailResolvesHomePlanetName() {
	user := s.createUser("Alice", "alice@example.com")
	planet := s.createPlanet("Earth")
	s.Require().NoError(s.storage.SetUserHomePlanet(s.ctx, user.ID, planet.ID))

	profile, err := s.service.Detail(s.ctx, user.ID, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(profile.PlanetName)
	s.Equal("Earth", *profile.PlanetName)
}

func (s *ServiceSuite) TestDetailWithoutHomePlanet() {
	user := s.createUser("Alice", "alice@example.com")

	profile, err := s.service.Detail(s.ctx, user.ID, user.ID)
	s.Require().NoError(err)
	s.Nil(profile.PlanetName)
}

func (s *ServiceSuite) TestDetailNotFound() {
	user := s.createUser("Alice", "alice@example.com")

	_, err := s.service.Detail(s.ctx, user.ID, 999)
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Migrate tests

func (s *ServiceSuite) TestMigrateSetsHomePlanet() {
	user := s.createUser("Alice", "alice@example.com")
	planet := s.createPlanet("Mars")

	moved, err := s.service.Migrate(s.ctx, user.ID, planet.ID)
	s.Require().NoError(err)
	s.Equal("Mars", moved.Name)

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.HomePlanetID)
	s.Equal(planet.ID, *retrieved.HomePlanetID)
}

func (s *ServiceSuite) TestMigrateToMissingPlanet() {
	user := s.createUser("Alice", "alice@example.com")

	_, err := s.service.Migrate(s.ctx, user.ID, 999)
	s.ErrorIs(err, model.ErrPlanetNotFound)
}
