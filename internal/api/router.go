package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkaran/planetary-api/internal/api/handler"
	"github.com/mkaran/planetary-api/internal/api/middleware"
	"github.com/mkaran/planetary-api/internal/services/auth"
	"github.com/mkaran/planetary-api/internal/services/planet"
	"github.com/mkaran/planetary-api/internal/services/user"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	PlanetService *planet.Service
	UserService   *user.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	demoHandler := handler.NewDemoHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	planetHandler := handler.NewPlanetHandler(cfg.PlanetService)
	userHandler := handler.NewUserHandler(cfg.UserService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Demo routes
	r.HandleFunc("/", demoHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/super_simple", demoHandler.SuperSimple).Methods(http.MethodGet)
	r.HandleFunc("/not_found", demoHandler.NotFound).Methods(http.MethodGet)
	r.HandleFunc("/parameters", demoHandler.Parameters).Methods(http.MethodGet)
	r.HandleFunc("/url_variables/{name}/{age}", demoHandler.URLVariables).Methods(http.MethodGet)

	// Public catalogue and account routes
	r.HandleFunc("/planets", planetHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/planet_detail/{pid}", planetHandler.Detail).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/reset_password", authHandler.ResetPassword).Methods(http.MethodPost)

	// Protected routes
	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/get_pw", authHandler.GetPassword).Methods(http.MethodGet)
	protected.HandleFunc("/add_planet", planetHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/new_planet", planetHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/update_planet", planetHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/remove_planet", planetHandler.Remove).Methods(http.MethodDelete)
	protected.HandleFunc("/user_detail/{uid}", userHandler.Detail).Methods(http.MethodGet)
	protected.HandleFunc("/user_migrate/{pid}", userHandler.Migrate).Methods(http.MethodPost)
	protected.HandleFunc("/planet_star/{pid}/{sid}", planetHandler.LinkStar).Methods(http.MethodPost)
	protected.HandleFunc("/planet_star/{pid}/{sid}", planetHandler.UnlinkStar).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
