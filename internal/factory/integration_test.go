package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkaran/planetary-api/internal/services/planet"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a user registers, discovers a planet, settles on it, and the
// planet's removal cascades back onto their profile.
func (s *IntegrationSuite) TestDiscoveryLifecycle() {
	// Step 1: Register and log in
	user, err := s.app.AuthService.Register(s.ctx, "Tom", "John", "hello@hello.com", "paSSworD", nil)
	s.Require().NoError(err)

	token, _, err := s.app.AuthService.Login(s.ctx, "hello@hello.com", "paSSworD")
	s.Require().NoError(err)

	subject, err := s.app.AuthService.ResolveToken(token)
	s.Require().NoError(err)
	s.Equal(user.ID, subject)

	// Step 2: Discover a star and a planet orbiting it
	sol, err := s.app.PlanetService.Discover(s.ctx, user.ID, planet.Attributes{
		Name: "Sol", Class: "G", Mass: 1.989e30, Radius: 432690, Distance: 2.46e17,
	})
	s.Require().NoError(err)
	earth, err := s.app.PlanetService.Discover(s.ctx, user.ID, planet.Attributes{
		Name: "Earth", Class: "M", Mass: 5.972e24, Radius: 3969, Distance: 92.96e6,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.app.PlanetService.LinkStar(s.ctx, earth.ID, sol.ID))

	// Step 3: Settle on the planet
	_, err = s.app.UserService.Migrate(s.ctx, user.ID, earth.ID)
	s.Require().NoError(err)

	profile, err := s.app.UserService.Detail(s.ctx, user.ID, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(profile.PlanetName)
	s.Equal("Earth", *profile.PlanetName)

	// Step 4: Remove the planet; the profile's home reference is nulled
	s.Require().NoError(s.app.PlanetService.Delete(s.ctx, earth.ID))

	profile, err = s.app.UserService.Detail(s.ctx, user.ID, user.ID)
	s.Require().NoError(err)
	s.Nil(profile.PlanetName)
}

// Test: a forgotten credential is recovered through the reset flow
func (s *IntegrationSuite) TestPasswordRecoveryFlow() {
	user, err := s.app.AuthService.Register(s.ctx, "Tom", "John", "hello@hello.com", "paSSworD", nil)
	s.Require().NoError(err)

	email, err := s.app.AuthService.RequestPasswordReset(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("hello@hello.com", email)

	resetToken := s.app.MockNotifier.LastToken()
	s.Require().NotEmpty(resetToken)

	s.Require().NoError(s.app.AuthService.ResetPassword(s.ctx, resetToken, "newSecret"))

	_, _, err = s.app.AuthService.Login(s.ctx, "hello@hello.com", "paSSworD")
	s.Error(err)
	_, _, err = s.app.AuthService.Login(s.ctx, "hello@hello.com", "newSecret")
	s.NoError(err)
}

// Test: issued tokens expire with the clock
func (s *IntegrationSuite) TestTokenExpiry() {
	_, err := s.app.AuthService.Register(s.ctx, "Tom", "John", "hello@hello.com", "paSSworD", nil)
	s.Require().NoError(err)

	token, _, err := s.app.AuthService.Login(s.ctx, "hello@hello.com", "paSSworD")
	s.Require().NoError(err)

	s.app.MockClock.Advance(23 * time.Hour)
	_, err = s.app.AuthService.ResolveToken(token)
	s.NoError(err)

	s.app.MockClock.Advance(2 * time.Hour)
	_, err = s.app.AuthService.ResolveToken(token)
	s.Error(err)
}
