package response

import (
	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/services/user"
)

// Envelope is the uniform response shape: a message and optional data
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Planet represents a planet in API responses
type Planet struct {
	ID           int64    `json:"pid"`
	Name         string   `json:"name"`
	Class        string   `json:"class"`
	Mass         float64  `json:"mass"`
	Radius       float64  `json:"radius"`
	Distance     float64  `json:"distance"`
	DiscoveredBy *int64   `json:"discovered_by,omitempty"`
	Stars        []string `json:"stars,omitempty"`
}

// PlanetFromModel converts a model.Planet to a response Planet
func PlanetFromModel(p *model.Planet) Planet {
	var discoveredBy *int64
	if p.DiscoveredBy != nil {
		id := int64(*p.DiscoveredBy)
		discoveredBy = &id
	}
	return Planet{
		ID:           int64(p.ID),
		Name:         p.Name,
		Class:        p.Class,
		Mass:         p.Mass,
		Radius:       p.Radius,
		Distance:     p.Distance,
		DiscoveredBy: discoveredBy,
	}
}

// PlanetDetailFromModel converts a planet plus its home stars
func PlanetDetailFromModel(p *model.Planet, stars []*model.Planet) Planet {
	out := PlanetFromModel(p)
	for _, star := range stars {
		out.Stars = append(out.Stars, star.Name)
	}
	return out
}

// PlanetsFromModel converts a planet list
func PlanetsFromModel(planets []*model.Planet) []Planet {
	out := make([]Planet, len(planets))
	for i, p := range planets {
		out[i] = PlanetFromModel(p)
	}
	return out
}

// UserProfile represents a user detail response. Fields restricted to the
// profile's subject are already blanked by the service; omitempty keeps
// them out of third-party responses entirely.
type UserProfile struct {
	UserID    int64   `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name,omitempty"`
	Email     string  `json:"email,omitempty"`
	Planet    *string `json:"planet"`
}

// ProfileFromModel converts a user.Profile to a response UserProfile
func ProfileFromModel(p *user.Profile) UserProfile {
	return UserProfile{
		UserID:    int64(p.UserID),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Planet:    p.PlanetName,
	}
}

// CreatedUser is the data payload after registration
type CreatedUser struct {
	UserID int64 `json:"user_id"`
}

// Token is the data payload after login
type Token struct {
	AccessToken string `json:"access_token"`
}
