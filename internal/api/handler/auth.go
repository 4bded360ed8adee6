package handler

import (
	"fmt"
	"net/http"

	"github.com/mkaran/planetary-api/internal/api/apierr"
	"github.com/mkaran/planetary-api/internal/api/middleware"
	"github.com/mkaran/planetary-api/internal/api/request"
	"github.com/mkaran/planetary-api/internal/api/response"
	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/services/auth"
)

// AuthHandler handles registration, login, and password recovery
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseRegister(r)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	var homePlanetID *model.PlanetID
	if req.PlanetID != nil {
		id := model.PlanetID(*req.PlanetID)
		homePlanetID = &id
	}

	user, err := h.authService.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password, homePlanetID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, "User created successfully",
		response.CreatedUser{UserID: int64(user.ID)})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseLogin(r)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	token, _, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, "Login succeeded", response.Token{AccessToken: token})
}

// GetPassword handles GET /get_pw. Instead of mailing the stored
// credential, it issues a time-bounded reset token delivered out of band;
// the reset is completed via POST /reset_password.
func (h *AuthHandler) GetPassword(w http.ResponseWriter, r *http.Request) {
	subject := middleware.MustGetSubject(r.Context())

	email, err := h.authService.RequestPasswordReset(r.Context(), subject)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, fmt.Sprintf("Password reset instructions sent to %s", email))
}

// ResetPassword handles POST /reset_password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseResetPassword(r)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError(err.Error()))
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Password updated successfully")
}
