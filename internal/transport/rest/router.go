package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"careercompass/internal/cache"
	"careercompass/internal/config"
	"careercompass/internal/logger"
	"careercompass/internal/service"
	"careercompass/internal/transport/rest/handler"
	"careercompass/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	Throttle       cache.ThrottleCache
	CatalogSize    int
	Config         *config.Config
	Logger         *logger.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.CatalogSize)
	resultHandler := handler.NewResultHandler(c.SessionService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)
	rateMW := middleware.NewRateLimiter(c.Throttle, c.Config.AnswerRateLimit, c.Config.AnswerRateWindow, c.Logger)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/token", authHandler.Token).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Participant routes
	participantRoutes := v1.NewRoute().Subrouter()
	participantRoutes.Use(authMW.RequireParticipant)

	participantRoutes.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{sessionId}/question", sessionHandler.CurrentQuestion).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{sessionId}/abandon", sessionHandler.Abandon).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{sessionId}/result", resultHandler.Get).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/results", resultHandler.History).Methods("GET", "OPTIONS")

	// Answer submission additionally runs through the throttle
	answerRoutes := participantRoutes.NewRoute().Subrouter()
	answerRoutes.Use(rateMW.Limit)
	answerRoutes.HandleFunc("/sessions/{sessionId}/answers", sessionHandler.SubmitAnswer).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
