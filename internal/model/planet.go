package model

import "time"

// PlanetID identifies a planet
type PlanetID int64

// Planet represents a celestial resource in the directory. Stars are
// planets too: the homestar relation links a planet to the star-planets
// it orbits.
type Planet struct {
	ID       PlanetID
	Name     string
	Class    string
	Mass     float64
	Radius   float64
	Distance float64
	// DiscoveredBy is the user who registered the planet via the discovery
	// endpoint. Nil for seeded planets or when the discoverer was removed.
	DiscoveredBy *UserID
	CreatedAt    time.Time
}
