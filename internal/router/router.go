package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/auth"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/lookup"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/nearby"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/profile"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/qa"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.HandlerImpl
	ProfileHandler         *profile.HandlerImpl
	LookupHandler          *lookup.HandlerImpl
	NearbyHandler          *nearby.HandlerImpl
	QAHandler              *qa.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
	// QARateLimit is the number of submissions per minute per client IP.
	QARateLimit int
	Logger      *slog.Logger
}

// SetupRouter initializes and configures the application routes.
// Server-wide middleware (logger, requestID, recoverer) are applied in
// main.go before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	// --- Public Routes ---
	r.Group(func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.SignUp)
		r.Post("/signin", cfg.AuthHandler.SignIn)

		r.Get("/qa_picture", cfg.LookupHandler.Pictures())
		r.Get("/qa_activity", cfg.LookupHandler.Activities())
		r.Get("/qa_traveling", cfg.LookupHandler.TravelTypes())
		r.Get("/qa_distance", cfg.LookupHandler.DistanceBands())
		r.Get("/qa_value", cfg.LookupHandler.ValueTiers())
		r.Get("/qa_emotional", cfg.LookupHandler.EmotionalStates())
		r.Get("/province/{id}", cfg.LookupHandler.Provinces)

		r.Get("/search_nearby", cfg.NearbyHandler.SearchNearby)

		r.Get("/qa_transaction", cfg.QAHandler.ListTransactions)
		r.Get("/qa_results", cfg.QAHandler.ListResults)

		limit := cfg.QARateLimit
		if limit <= 0 {
			limit = 20
		}
		r.With(httprate.LimitByIP(limit, time.Minute)).Post("/qa_transaction", cfg.QAHandler.SubmitAnswer)
	})

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)
		r.Use(auth.RequireSelf(cfg.Logger, "id"))

		r.Get("/profile/{id}", cfg.ProfileHandler.GetProfile)
		r.Put("/profile/{id}", cfg.ProfileHandler.UpdateProfile)
		r.Post("/profile_location/{id}", cfg.ProfileHandler.SetLocation)
	})

	return r
}
