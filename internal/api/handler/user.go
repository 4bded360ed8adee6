package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mkaran/planetary-api/internal/api/apierr"
	"github.com/mkaran/planetary-api/internal/api/middleware"
	"github.com/mkaran/planetary-api/internal/api/response"
	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/services/user"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	userService *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// Detail handles GET /user_detail/{uid}
func (h *UserHandler) Detail(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["uid"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierr.WriteError(w, apierr.NewValidationError("uid must be a positive integer"))
		return
	}

	requester := middleware.MustGetSubject(r.Context())
	profile, err := h.userService.Detail(r.Context(), requester, model.UserID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "User retrieved", response.ProfileFromModel(profile))
}

// Migrate handles POST /user_migrate/{pid}
func (h *UserHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["pid"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierr.WriteError(w, apierr.NewValidationError("pid must be a positive integer"))
		return
	}

	subject := middleware.MustGetSubject(r.Context())
	planet, err := h.userService.Migrate(r.Context(), subject, model.PlanetID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.Message(w, http.StatusOK,
		fmt.Sprintf("You migrated to planet %s! (planet id: %d)", planet.Name, planet.ID))
}
