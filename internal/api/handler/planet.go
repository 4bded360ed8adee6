package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mkaran/planetary-api/internal/api/apierr"
	"github.com/mkaran/planetary-api/internal/api/middleware"
	"github.com/mkaran/planetary-api/internal/api/request"
	"github.com/mkaran/planetary-api/internal/api/response"
	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/services/planet"
)

// PlanetHandler handles planet catalogue endpoints
type PlanetHandler struct {
	planetService *planet.Service
}

// NewPlanetHandler creates a new planet handler
func NewPlanetHandler(planetService *planet.Service) *PlanetHandler {
	return &PlanetHandler{planetService: planetService}
}

func planetIDVar(r *http.Request, name string) (model.PlanetID, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return model.PlanetID(id), nil
}

// List handles GET /planets
func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	planets, err := h.planetService.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Planets retrieved", response.PlanetsFromModel(planets))
}

// Detail handles GET /planet_detail/{pid}
func (h *PlanetHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := planetIDVar(r, "pid")
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	detail, err := h.planetService.Get(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Planet retrieved",
		response.PlanetDetailFromModel(detail.Planet, detail.Stars))
}

// Add handles POST /add_planet and POST /new_planet
func (h *PlanetHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParsePlanetAttributes(r)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	subject := middleware.MustGetSubject(r.Context())
	created, err := h.planetService.Discover(r.Context(), subject, planet.Attributes{
		Name:     req.Name,
		Class:    req.Class,
		Mass:     req.Mass,
		Radius:   req.Radius,
		Distance: req.Distance,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, "You added a planet!", response.PlanetFromModel(created))
}

// Update handles PUT /update_planet
func (h *PlanetHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseUpdatePlanet(r)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	updated, err := h.planetService.Update(r.Context(), model.PlanetID(req.PlanetID), planet.Attributes{
		Name:     req.Name,
		Class:    req.Class,
		Mass:     req.Mass,
		Radius:   req.Radius,
		Distance: req.Distance,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusAccepted, "You updated a planet", response.PlanetFromModel(updated))
}

// Remove handles DELETE /remove_planet
func (h *PlanetHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseRemovePlanet(r)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	if err := h.planetService.Delete(r.Context(), model.PlanetID(req.PlanetID)); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.Message(w, http.StatusAccepted, "You deleted a planet")
}

// LinkStar handles POST /planet_star/{pid}/{sid}
func (h *PlanetHandler) LinkStar(w http.ResponseWriter, r *http.Request) {
	planetID, err := planetIDVar(r, "pid")
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}
	starID, err := planetIDVar(r, "sid")
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	if err := h.planetService.LinkStar(r.Context(), planetID, starID); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.Message(w, http.StatusCreated, "Home star linked")
}

// UnlinkStar handles DELETE /planet_star/{pid}/{sid}
func (h *PlanetHandler) UnlinkStar(w http.ResponseWriter, r *http.Request) {
	planetID, err := planetIDVar(r, "pid")
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}
	starID, err := planetIDVar(r, "sid")
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	if err := h.planetService.UnlinkStar(r.Context(), planetID, starID); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.Message(w, http.StatusAccepted, "Home star unlinked")
}
