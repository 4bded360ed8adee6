// Package request defines the explicit schema for each endpoint's body.
// Bodies arrive either as JSON or as form fields; both decode into the
// same typed struct, and missing or malformed fields are rejected here
// rather than surfacing as zero values downstream.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// Register is the request body for registering a user
type Register struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PlanetID  *int64 `json:"planet_id,omitempty"`
}

// Login is the request body for logging in
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PlanetAttributes is the full planet attribute set used by the add and
// update endpoints
type PlanetAttributes struct {
	Name     string  `json:"name"`
	Class    string  `json:"class"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`
	Distance float64 `json:"distance"`
}

// UpdatePlanet is the request body for updating a planet
type UpdatePlanet struct {
	PlanetID int64 `json:"pid"`
	PlanetAttributes
}

// RemovePlanet is the request body for deleting a planet
type RemovePlanet struct {
	PlanetID int64 `json:"pid"`
}

// ResetPassword is the request body for completing a password reset
type ResetPassword struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func isJSON(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/json"
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func formValue(r *http.Request, field string) string {
	return r.PostFormValue(field)
}

func formFloat(r *http.Request, field string) (float64, error) {
	raw := formValue(r, field)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return v, nil
}

func formInt(r *http.Request, field string) (int64, error) {
	raw := formValue(r, field)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return v, nil
}

// ParseRegister decodes and validates a registration body
func ParseRegister(r *http.Request) (*Register, error) {
	var req Register
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
	} else {
		req.FirstName = formValue(r, "first_name")
		req.LastName = formValue(r, "last_name")
		req.Email = formValue(r, "email")
		req.Password = formValue(r, "password")
		if raw := formValue(r, "planet_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, errors.New("planet_id must be an integer")
			}
			req.PlanetID = &id
		}
	}

	switch {
	case req.FirstName == "":
		return nil, errors.New("first_name is required")
	case req.LastName == "":
		return nil, errors.New("last_name is required")
	case req.Email == "":
		return nil, errors.New("email is required")
	case req.Password == "":
		return nil, errors.New("password is required")
	}
	return &req, nil
}

// ParseLogin decodes and validates a login body
func ParseLogin(r *http.Request) (*Login, error) {
	var req Login
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
	} else {
		req.Email = formValue(r, "email")
		req.Password = formValue(r, "password")
	}

	if req.Email == "" {
		return nil, errors.New("email is required")
	}
	if req.Password == "" {
		return nil, errors.New("password is required")
	}
	return &req, nil
}

// ParsePlanetAttributes decodes and validates a planet attribute set
func ParsePlanetAttributes(r *http.Request) (*PlanetAttributes, error) {
	var req PlanetAttributes
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
	} else {
		var err error
		req.Name = formValue(r, "name")
		req.Class = formValue(r, "class")
		if req.Mass, err = formFloat(r, "mass"); err != nil {
			return nil, err
		}
		if req.Radius, err = formFloat(r, "radius"); err != nil {
			return nil, err
		}
		if req.Distance, err = formFloat(r, "distance"); err != nil {
			return nil, err
		}
	}
	return &req, req.validate()
}

func (a *PlanetAttributes) validate() error {
	switch {
	case a.Name == "":
		return errors.New("name is required")
	case a.Class == "":
		return errors.New("class is required")
	case len(a.Class) != 1:
		return errors.New("class must be a single character")
	case a.Mass <= 0:
		return errors.New("mass must be positive")
	case a.Radius <= 0:
		return errors.New("radius must be positive")
	case a.Distance <= 0:
		return errors.New("distance must be positive")
	}
	return nil
}

// ParseUpdatePlanet decodes and validates an update body (pid + attributes)
func ParseUpdatePlanet(r *http.Request) (*UpdatePlanet, error) {
	var req UpdatePlanet
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
	} else {
		var err error
		if req.PlanetID, err = formInt(r, "pid"); err != nil {
			return nil, err
		}
		req.Name = formValue(r, "name")
		req.Class = formValue(r, "class")
		if req.Mass, err = formFloat(r, "mass"); err != nil {
			return nil, err
		}
		if req.Radius, err = formFloat(r, "radius"); err != nil {
			return nil, err
		}
		if req.Distance, err = formFloat(r, "distance"); err != nil {
			return nil, err
		}
	}
	if req.PlanetID <= 0 {
		return nil, errors.New("pid must be a positive integer")
	}
	return &req, req.validate()
}

// ParseRemovePlanet decodes and validates a delete body
func ParseRemovePlanet(r *http.Request) (*RemovePlanet, error) {
	var req RemovePlanet
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
	} else {
		var err error
		if req.PlanetID, err = formInt(r, "pid"); err != nil {
			return nil, err
		}
	}
	if req.PlanetID <= 0 {
		return nil, errors.New("pid must be a positive integer")
	}
	return &req, nil
}

// ParseResetPassword decodes and validates a reset completion body
func ParseResetPassword(r *http.Request) (*ResetPassword, error) {
	var req ResetPassword
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
	} else {
		req.Token = formValue(r, "token")
		req.NewPassword = formValue(r, "new_password")
	}

	if req.Token == "" {
		return nil, errors.New("token is required")
	}
	if req.NewPassword == "" {
		return nil, errors.New("new_password is required")
	}
	return &req, nil
}
