package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mkaran/planetary-api/internal/api/apierr"
	"github.com/mkaran/planetary-api/internal/api/response"
)

// DemoHandler serves the static demo endpoints
type DemoHandler struct{}

// NewDemoHandler creates a new demo handler
func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

// Home handles GET /
func (h *DemoHandler) Home(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, "Hello World!")
}

// SuperSimple handles GET /super_simple
func (h *DemoHandler) SuperSimple(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, "Hello from the Planetary API.")
}

// NotFound handles GET /not_found
func (h *DemoHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusNotFound, "That resource was not found")
}

// Parameters handles GET /parameters?name=...&age=...
func (h *DemoHandler) Parameters(w http.ResponseWriter, r *http.Request) {
	h.ageGate(w, r.URL.Query().Get("name"), r.URL.Query().Get("age"))
}

// URLVariables handles GET /url_variables/{name}/{age}
func (h *DemoHandler) URLVariables(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.ageGate(w, vars["name"], vars["age"])
}

func (h *DemoHandler) ageGate(w http.ResponseWriter, name, rawAge string) {
	age, err := strconv.Atoi(rawAge)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError("age must be an integer"))
		return
	}

	if age < 18 {
		response.Message(w, http.StatusUnauthorized, fmt.Sprintf("Sorry %s, you are not old enough.", name))
		return
	}
	response.Message(w, http.StatusOK, fmt.Sprintf("Welcome %s, you are old enough!", name))
}
